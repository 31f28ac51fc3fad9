package solver

import (
	"strings"

	"github.com/bitdittowit/autoduo/internal/challenge"
	"github.com/bitdittowit/autoduo/internal/diagram"
	"github.com/bitdittowit/autoduo/internal/fraction"
	"github.com/bitdittowit/autoduo/internal/mathtext"
)

// factorList returns the factors of n in ascending order via trial
// division. Empty for n < 1.
func factorList(n int64) []int64 {
	if n < 1 {
		return nil
	}
	var out []int64
	for d := int64(1); d <= n; d++ {
		if n%d == 0 {
			out = append(out, d)
		}
	}
	return out
}

// questionPair extracts the two numbers of the row marked with a literal
// '?' in the worked-table the LCM/GCF exercises show. Falls back to the
// first two numbers of the equation text.
func questionPair(c *challenge.Context) (int64, int64, bool) {
	text := ""
	if c.Container != nil {
		text = c.Container.Text()
	}
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "?") {
			continue
		}
		nums := mathtext.AllNumbers(line)
		if len(nums) >= 2 {
			return int64(nums[0]), int64(nums[1]), true
		}
	}
	nums := mathtext.AllNumbers(equationText(c))
	if len(nums) >= 2 {
		return int64(nums[0]), int64(nums[1]), true
	}
	return 0, 0, false
}

// factorsChoice handles "Which lists the factors of N?": computes the
// factor list and picks the choice whose comma-separated numbers match.
type factorsChoice struct{}

func (s *factorsChoice) Name() string { return "factors-choice" }

func (s *factorsChoice) CanSolve(c *challenge.Context) bool {
	return len(c.Choices) > 0 && c.HeaderContains("factors")
}

func (s *factorsChoice) Solve(c *challenge.Context) challenge.Result {
	n, ok := sourceNumber(c)
	if !ok {
		return challenge.Failure(s.Name(), "no source number")
	}
	want := factorList(n)
	if want == nil {
		return challenge.Failuref(s.Name(), "no factors for %d", n)
	}

	for i, el := range c.Choices {
		if sameIntList(mathtext.AllNumbers(el.Text()), want) {
			if err := el.Click(); err != nil {
				return challenge.Failuref(s.Name(), "click failed: %v", err)
			}
			return challenge.Success(s.Name()).WithSelected(i)
		}
	}
	return challenge.Failuref(s.Name(), "no choice lists the factors of %d", n)
}

// sourceNumber extracts the exercise's subject number from the equation
// or, failing that, the header.
func sourceNumber(c *challenge.Context) (int64, bool) {
	if v, ok := mathtext.ParseNumber(equationText(c)); ok {
		return int64(v), true
	}
	if v, ok := mathtext.FirstNumber(c.HeaderText); ok {
		return int64(v), true
	}
	return 0, false
}

func sameIntList(got []float64, want []int64) bool {
	if len(got) != len(want) {
		return false
	}
	for i, v := range got {
		if int64(v) != want[i] {
			return false
		}
	}
	return true
}

// lcmGCF is the shared machinery of the four LCM/GCF solvers: find the
// '?' pair, compute, then match the answer against choices either as
// parsed numerals or as decoded block diagrams.
type lcmGCF struct {
	name    string
	keyword []string
	visual  bool
	compute func(a, b int64) int64
	cal     diagram.Calibration
}

func (s *lcmGCF) Name() string { return s.name }

func (s *lcmGCF) CanSolve(c *challenge.Context) bool {
	if len(c.Choices) == 0 || !c.HeaderContainsAny(s.keyword...) {
		return false
	}
	if _, _, ok := questionPair(c); !ok {
		return false
	}
	// Visual variants claim the exercise when any choice renders as a
	// block diagram; text variants when none does.
	return s.visual == s.hasDiagramChoice(c)
}

func (s *lcmGCF) hasDiagramChoice(c *challenge.Context) bool {
	for _, el := range c.Choices {
		if diagram.IsBlockDiagram(el.Markup(), s.cal) {
			return true
		}
	}
	return false
}

func (s *lcmGCF) Solve(c *challenge.Context) challenge.Result {
	a, b, ok := questionPair(c)
	if !ok {
		return challenge.Failure(s.Name(), "no question pair in table")
	}
	want := s.compute(a, b)

	idx := findChoice(c, s.cal, float64(want))
	if idx < 0 {
		return challenge.Failuref(s.Name(), "no choice equals %d", want)
	}
	if err := c.Choices[idx].Click(); err != nil {
		return challenge.Failuref(s.Name(), "click failed: %v", err)
	}
	return challenge.Success(s.Name()).WithSelected(idx).WithDetail("(%d, %d) -> %d", a, b, want)
}

func newLCMText(cal diagram.Calibration) *lcmGCF {
	return &lcmGCF{
		name:    "lcm-text",
		keyword: []string{"least common multiple", "lcm"},
		compute: fraction.LCM,
		cal:     cal,
	}
}

func newGCFText(cal diagram.Calibration) *lcmGCF {
	return &lcmGCF{
		name:    "gcf-text",
		keyword: []string{"greatest common factor", "gcf"},
		compute: fraction.GCD,
		cal:     cal,
	}
}

func newLCMVisual(cal diagram.Calibration) *lcmGCF {
	return &lcmGCF{
		name:    "lcm-visual",
		keyword: []string{"least common multiple", "lcm"},
		visual:  true,
		compute: fraction.LCM,
		cal:     cal,
	}
}

func newGCFVisual(cal diagram.Calibration) *lcmGCF {
	return &lcmGCF{
		name:    "gcf-visual",
		keyword: []string{"greatest common factor", "gcf"},
		visual:  true,
		compute: fraction.GCD,
		cal:     cal,
	}
}
