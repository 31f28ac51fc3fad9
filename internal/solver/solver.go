// Package solver implements the challenge-classification and
// answer-derivation engine: a chain of specialized solvers, each pairing a
// recognition predicate with an answer algorithm for one exercise variant.
//
// Dispatch is strict first-match over a manually curated priority order.
// Predicates are narrow but not globally disjoint, so the order carries
// real constraints; see NewRegistry for the documented ones.
package solver

import (
	"time"

	"github.com/bitdittowit/autoduo/internal/challenge"
	"github.com/bitdittowit/autoduo/internal/diagram"
)

// Solver recognizes and solves one exercise variant.
type Solver interface {
	// Name is a short identifier for logs and Result.Type.
	Name() string

	// CanSolve is a fast, side-effect-free predicate over the snapshot.
	CanSolve(c *challenge.Context) bool

	// Solve extracts, computes, and performs the answer's UI actions.
	// Failures are returned as Results, never panics.
	Solve(c *challenge.Context) challenge.Result
}

// Options tunes solver behavior shared across the chain.
type Options struct {
	// Calibration carries the vendor-markup thresholds for the diagram
	// decoders.
	Calibration diagram.Calibration

	// PairClickDelay is the base stagger between clicks when a solver
	// selects multiple elements; each subsequent click waits one more
	// multiple so the page settles between interactions. Zero disables
	// staggering (tests).
	PairClickDelay time.Duration
}

// DefaultOptions returns production settings.
func DefaultOptions() Options {
	return Options{
		Calibration:    diagram.DefaultCalibration(),
		PairClickDelay: 300 * time.Millisecond,
	}
}

// clickStaggered clicks the elements at the given indexes, waiting an
// increasing delay before each subsequent click.
func clickStaggered(c *challenge.Context, indexes []int, base time.Duration) error {
	for i, idx := range indexes {
		if idx < 0 || idx >= len(c.Choices) {
			continue
		}
		if i > 0 && base > 0 {
			time.Sleep(base * time.Duration(i))
		}
		if err := c.Choices[idx].Click(); err != nil {
			return err
		}
	}
	return nil
}
