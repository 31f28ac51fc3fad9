package solver

import (
	"strings"

	"github.com/bitdittowit/autoduo/internal/challenge"
	"github.com/bitdittowit/autoduo/internal/equation"
	"github.com/bitdittowit/autoduo/internal/fraction"
	"github.com/bitdittowit/autoduo/internal/mathtext"
)

// typeAnswer is the catch-all for exercises answered in the text field.
// It tries, in order: simplify-a-fraction, inequality-with-blank, then
// equation-with-blank. The first branch producing an answer wins.
//
// Registered last: its predicate (a text input plus any equation text) is
// a superset of several specific solvers' signatures.
type typeAnswer struct{}

func (s *typeAnswer) Name() string { return "type-answer" }

func (s *typeAnswer) CanSolve(c *challenge.Context) bool {
	return c.TextInput != nil && equationText(c) != ""
}

func (s *typeAnswer) Solve(c *challenge.Context) challenge.Result {
	text := equationText(c)

	if answer, ok := s.trySimplify(text); ok {
		return s.typeIt(c, answer)
	}
	if answer, ok := s.tryInequality(text); ok {
		return s.typeIt(c, answer)
	}
	if v, ok := equation.SolveBlank(text); ok {
		return s.typeIt(c, mathtext.FormatNumber(v))
	}
	return challenge.Failuref(s.Name(), "no branch solved %q", text)
}

// trySimplify handles "write 4/8 in simplest form": a fraction with no
// equals sign and no blank marker.
func (s *typeAnswer) trySimplify(text string) (string, bool) {
	if equation.HasBlank(text) {
		return "", false
	}
	if strings.Contains(mathtext.Normalize(text), "=") {
		return "", false
	}
	num, den, ok := mathtext.ParseFraction(text)
	if !ok || den == 0 || den == 1 {
		return "", false
	}
	f, err := fraction.Simplify(num, den)
	if err != nil {
		return "", false
	}
	return f.String(), true
}

// tryInequality handles a blank inside a comparison. A bare '=' defers to
// the equation branch unless an inequality operator is also present.
func (s *typeAnswer) tryInequality(text string) (string, bool) {
	if !equation.HasBlank(text) || !equation.HasInequality(text) {
		return "", false
	}
	return equation.SolveInequality(text)
}

func (s *typeAnswer) typeIt(c *challenge.Context, answer string) challenge.Result {
	if err := c.TextInput.Type(answer); err != nil {
		return challenge.Failuref(s.Name(), "type failed: %v", err)
	}
	return challenge.Success(s.Name()).WithAnswer(answer)
}
