package solver

import (
	"strings"

	"github.com/bitdittowit/autoduo/internal/challenge"
	"github.com/bitdittowit/autoduo/internal/diagram"
	"github.com/bitdittowit/autoduo/internal/equation"
	"github.com/bitdittowit/autoduo/internal/mathtext"
)

// equivalentFraction picks the choice whose value equals the fraction or
// expression shown in the equation container. Narrower than
// matchValueChoice only through its header keywords.
type equivalentFraction struct {
	cal diagram.Calibration
}

func (s *equivalentFraction) Name() string { return "equivalent-fraction" }

func (s *equivalentFraction) CanSolve(c *challenge.Context) bool {
	if len(c.Choices) == 0 || equationText(c) == "" {
		return false
	}
	return c.HeaderContainsAny("equivalent", "equal to", "same as", "which fraction")
}

func (s *equivalentFraction) Solve(c *challenge.Context) challenge.Result {
	target, ok := evaluateEquationSide(equationText(c))
	if !ok {
		return challenge.Failuref(s.Name(), "cannot evaluate %q", equationText(c))
	}
	idx := findChoice(c, s.cal, target)
	if idx < 0 {
		return challenge.Failuref(s.Name(), "no choice equals %v", target)
	}
	if err := c.Choices[idx].Click(); err != nil {
		return challenge.Failuref(s.Name(), "click failed: %v", err)
	}
	return challenge.Success(s.Name()).WithSelected(idx)
}

// matchValueChoice is the generic single-select fallback: the equation
// evaluates to a value and exactly one choice carries it.
//
// Registered after every specific choice solver; its predicate accepts
// nearly any choice exercise with an equation.
type matchValueChoice struct {
	cal diagram.Calibration
}

func (s *matchValueChoice) Name() string { return "match-value-choice" }

func (s *matchValueChoice) CanSolve(c *challenge.Context) bool {
	return len(c.Choices) > 0 && c.TextInput == nil && equationText(c) != ""
}

func (s *matchValueChoice) Solve(c *challenge.Context) challenge.Result {
	target, ok := evaluateEquationSide(equationText(c))
	if !ok {
		return challenge.Failuref(s.Name(), "cannot evaluate %q", equationText(c))
	}
	idx := findChoice(c, s.cal, target)
	if idx < 0 {
		return challenge.Failuref(s.Name(), "no choice equals %v", target)
	}
	if err := c.Choices[idx].Click(); err != nil {
		return challenge.Failuref(s.Name(), "click failed: %v", err)
	}
	return challenge.Success(s.Name()).WithSelected(idx).WithDetail("target %v", target)
}

// evaluateEquationSide evaluates equation text that may be a bare
// expression, "X = expr", or "expr = blank": the evaluable side wins.
func evaluateEquationSide(text string) (float64, bool) {
	replaced, _ := equation.ReplaceBlank(text)
	norm := mathtext.Normalize(replaced)

	eq := strings.Index(norm, "=")
	if eq < 0 {
		return mathtext.Evaluate(norm)
	}
	left, right := norm[:eq], norm[eq+1:]
	if !strings.Contains(left, "X") {
		if v, ok := mathtext.Evaluate(left); ok {
			return v, true
		}
	}
	if !strings.Contains(right, "X") {
		if v, ok := mathtext.Evaluate(right); ok {
			return v, true
		}
	}
	return 0, false
}
