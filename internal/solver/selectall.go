package solver

import (
	"time"

	"github.com/bitdittowit/autoduo/internal/challenge"
	"github.com/bitdittowit/autoduo/internal/diagram"
	"github.com/bitdittowit/autoduo/internal/mathtext"
)

// selectAll clicks every choice whose value matches the target. It is
// the only solver with a one-to-many selection contract.
//
// Must be registered before the single-select choice solvers and before
// typeAnswer: its exercises also carry an equation container, and stopping
// at the first match would leave the exercise incomplete.
type selectAll struct {
	cal   diagram.Calibration
	delay time.Duration
}

func (s *selectAll) Name() string { return "select-all" }

func (s *selectAll) CanSolve(c *challenge.Context) bool {
	if len(c.Choices) == 0 || equationText(c) == "" {
		return false
	}
	return c.HeaderContainsAny("select all", "all that", "every expression")
}

func (s *selectAll) Solve(c *challenge.Context) challenge.Result {
	target, ok := evaluateEquationSide(equationText(c))
	if !ok {
		return challenge.Failuref(s.Name(), "cannot evaluate %q", equationText(c))
	}

	var matched []int
	for i, el := range c.Choices {
		if v, ok := choiceValue(el, s.cal); ok && mathtext.AlmostEqual(v, target) {
			matched = append(matched, i)
		}
	}
	if len(matched) == 0 {
		return challenge.Failuref(s.Name(), "no choice equals %v", target)
	}

	if err := clickStaggered(c, matched, s.delay); err != nil {
		return challenge.Failuref(s.Name(), "click failed: %v", err)
	}
	return challenge.Success(s.Name()).WithSelected(matched...).WithDetail("target %v", target)
}
