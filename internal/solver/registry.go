package solver

import (
	"log/slog"

	"github.com/bitdittowit/autoduo/internal/challenge"
)

// Registry holds the solver chain in priority order and dispatches
// snapshots to the first solver whose predicate accepts.
type Registry struct {
	solvers []Solver
	logger  *slog.Logger
}

// NewRegistry builds the chain in its curated priority order. The order
// is a contract: predicates are narrow but not globally disjoint, so
// several placements below carry hard constraints (noted inline and
// covered by registry tests).
func NewRegistry(opts Options, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	cal := opts.Calibration

	return &Registry{
		logger: logger,
		solvers: []Solver{
			// Pairs first: pairs exercises expose tokens as choices, so
			// every choice solver below would misclaim them.
			&pairsMatching{cal: cal, delay: opts.PairClickDelay},

			// Select-all before any single-select or text solver: its
			// exercises carry an equation container too, and a
			// first-match single click would leave them incomplete.
			&selectAll{cal: cal, delay: opts.PairClickDelay},

			// Rounding before typeAnswer and the generic choice solvers:
			// a rounding exercise has both an equation and a text input
			// or choices, which is exactly typeAnswer's and
			// matchValueChoice's signature.
			&roundToNearest{cal: cal},

			// Interactive widgets. lineGraph's markup signature contains
			// pointPlot's, so the line check runs first.
			&lineGraph{},
			&pointPlot{},
			&slider{},
			&spinner{},
			&expressionBuilder{cal: cal},
			&factorTree{},
			&tableFill{},

			// Factor family. Visual variants before text: same header
			// keywords, distinguished only by diagram-bearing choices.
			&factorsChoice{},
			newLCMVisual(cal),
			newGCFVisual(cal),
			newLCMText(cal),
			newGCFText(cal),

			// Comparison family. compareFractions before operatorPick:
			// operator choice sets can include '=' and would otherwise
			// be claimed as comparisons. The reverse is safe because the
			// operator predicate requires an arithmetic operator.
			&compareFractions{cal: cal},
			&operatorPick{},
			&equivalentFraction{cal: cal},

			// Diagram answers and rates. gridFraction before blockCount:
			// a grid's markup also classifies as a block diagram, and only
			// the grid solver checks the header's fraction wording.
			&pieFraction{cal: cal},
			&gridFraction{cal: cal},
			&blockCount{cal: cal},
			&percentOf{cal: cal},
			&unitRate{cal: cal},

			// Generic fallbacks last: their predicates are supersets of
			// almost everything above.
			&matchValueChoice{cal: cal},
			&typeAnswer{},
		},
	}
}

// Solvers returns the chain in dispatch order.
func (r *Registry) Solvers() []Solver {
	return r.solvers
}

// Find returns the first solver accepting the snapshot, or nil.
func (r *Registry) Find(c *challenge.Context) Solver {
	for _, s := range r.solvers {
		if s.CanSolve(c) {
			return s
		}
	}
	return nil
}

// Solve dispatches the snapshot. Returns false when no solver matches or
// the matched solver panicked; a panic is logged and contained here so an
// internal fault can never crash the polling loop.
func (r *Registry) Solve(c *challenge.Context) (result challenge.Result, ok bool) {
	s := r.Find(c)
	if s == nil {
		r.logger.Debug("no solver matched", "header", c.HeaderText)
		return challenge.Result{}, false
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("solver panicked", "solver", s.Name(), "panic", rec)
			result, ok = challenge.Result{}, false
		}
	}()

	result = s.Solve(c)
	if result.Success {
		r.logger.Info("solved", "solver", s.Name(), "result", result.String())
	} else {
		r.logger.Warn("solve failed", "solver", s.Name(), "reason", result.Err)
	}
	return result, true
}
