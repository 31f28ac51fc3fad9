package solver

import (
	"strings"

	"github.com/bitdittowit/autoduo/internal/challenge"
	"github.com/bitdittowit/autoduo/internal/diagram"
	"github.com/bitdittowit/autoduo/internal/equation"
	"github.com/bitdittowit/autoduo/internal/fraction"
	"github.com/bitdittowit/autoduo/internal/mathtext"
)

// comparisonRunes are the choice texts of a compare exercise.
var comparisonRunes = map[string]int{
	"<": -1,
	">": 1,
	"=": 0,
}

// compareFractions handles "compare: a/b ? c/d" where the blank between
// the operands is filled by picking the <, > or = choice.
//
// Must be registered before operatorPick: operator choice sets are a
// superset that can include '=' alongside the arithmetic operators.
type compareFractions struct {
	cal diagram.Calibration
}

func (s *compareFractions) Name() string { return "compare-fractions" }

func (s *compareFractions) CanSolve(c *challenge.Context) bool {
	if len(c.Choices) == 0 || !equation.HasBlank(equationText(c)) {
		return false
	}
	// Every choice must be a comparison rune, and at least one present.
	seen := false
	for _, el := range c.Choices {
		if _, ok := comparisonRunes[choiceText(el)]; !ok {
			return false
		}
		seen = true
	}
	return seen
}

func (s *compareFractions) Solve(c *challenge.Context) challenge.Result {
	left, right, ok := splitOnBlank(equationText(c))
	if !ok {
		return challenge.Failure(s.Name(), "no blank splits the operands")
	}

	ln, ld, lok := mathtext.ParseFraction(left)
	rn, rd, rok := mathtext.ParseFraction(right)

	var cmp int
	if lok && rok {
		cmp = fraction.Compare(ln, ld, rn, rd)
	} else {
		lv, lok := mathtext.Evaluate(left)
		rv, rok := mathtext.Evaluate(right)
		if !lok || !rok {
			return challenge.Failuref(s.Name(), "cannot evaluate operands %q, %q", left, right)
		}
		switch {
		case mathtext.AlmostEqual(lv, rv):
			cmp = 0
		case lv < rv:
			cmp = -1
		default:
			cmp = 1
		}
	}

	for i, el := range c.Choices {
		if comparisonRunes[choiceText(el)] == cmp {
			if err := el.Click(); err != nil {
				return challenge.Failuref(s.Name(), "click failed: %v", err)
			}
			return challenge.Success(s.Name()).WithSelected(i)
		}
	}
	return challenge.Failuref(s.Name(), "no choice carries comparison %d", cmp)
}

// arithmeticOps maps operator choice text to the ASCII operator.
var arithmeticOps = map[string]string{
	"+": "+", "-": "-", "*": "*", "/": "/",
	"×": "*", "÷": "/", "−": "-", "⋅": "*",
}

// operatorPick handles "3 ? 4 = 12": the blank is filled by picking the
// arithmetic operator that makes the equation true.
type operatorPick struct{}

func (s *operatorPick) Name() string { return "operator-pick" }

func (s *operatorPick) CanSolve(c *challenge.Context) bool {
	text := equationText(c)
	if len(c.Choices) == 0 || !equation.HasBlank(text) {
		return false
	}
	if !strings.Contains(mathtext.Normalize(text), "=") {
		return false
	}
	arith := false
	for _, el := range c.Choices {
		t := choiceText(el)
		if _, ok := arithmeticOps[t]; ok {
			arith = true
			continue
		}
		if _, ok := comparisonRunes[t]; !ok {
			return false
		}
	}
	return arith
}

func (s *operatorPick) Solve(c *challenge.Context) challenge.Result {
	raw, _ := equation.ReplaceBlank(equationText(c))
	norm := mathtext.Normalize(raw)

	eq := strings.Index(norm, "=")
	if eq < 0 {
		return challenge.Failure(s.Name(), "no equals sign")
	}
	left, right := norm[:eq], norm[eq+1:]

	holder, other := left, right
	if strings.Contains(right, "X") {
		holder, other = right, left
	}
	if !strings.Contains(holder, "X") {
		return challenge.Failure(s.Name(), "no operator slot found")
	}

	target, ok := mathtext.Evaluate(other)
	if !ok {
		return challenge.Failuref(s.Name(), "cannot evaluate %q", other)
	}

	for i, el := range c.Choices {
		op, ok := arithmeticOps[choiceText(el)]
		if !ok {
			continue
		}
		candidate := strings.Replace(holder, "X", op, 1)
		if v, ok := mathtext.Evaluate(candidate); ok && mathtext.AlmostEqual(v, target) {
			if err := el.Click(); err != nil {
				return challenge.Failuref(s.Name(), "click failed: %v", err)
			}
			return challenge.Success(s.Name()).WithSelected(i).WithDetail("%s = %v", candidate, target)
		}
	}
	return challenge.Failure(s.Name(), "no operator satisfies the equation")
}

// splitOnBlank splits normalized equation text at the blank placeholder.
func splitOnBlank(text string) (left, right string, ok bool) {
	replaced, found := equation.ReplaceBlank(text)
	if !found {
		return "", "", false
	}
	norm := mathtext.Normalize(replaced)
	parts := strings.SplitN(norm, "X", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}
