package solver

import (
	"math"
	"regexp"
	"strconv"

	"github.com/bitdittowit/autoduo/internal/challenge"
	"github.com/bitdittowit/autoduo/internal/diagram"
	"github.com/bitdittowit/autoduo/internal/mathtext"
)

var nearestRe = regexp.MustCompile(`nearest\s*(\d+)`)

// roundToNearest handles "Round N to the nearest B" in both answer
// modalities: typing the rounded numeral, or picking the choice whose
// decoded value equals it.
type roundToNearest struct {
	cal diagram.Calibration
}

func (s *roundToNearest) Name() string { return "round-to-nearest" }

func (s *roundToNearest) CanSolve(c *challenge.Context) bool {
	if !c.HeaderContains("round") || !nearestRe.MatchString(c.HeaderText) {
		return false
	}
	if c.TextInput == nil && len(c.Choices) == 0 {
		return false
	}
	return equationText(c) != ""
}

func (s *roundToNearest) Solve(c *challenge.Context) challenge.Result {
	m := nearestRe.FindStringSubmatch(c.HeaderText)
	if m == nil {
		return challenge.Failure(s.Name(), "no rounding base in header")
	}
	base, err := strconv.ParseFloat(m[1], 64)
	if err != nil || base == 0 {
		return challenge.Failuref(s.Name(), "bad rounding base %q", m[1])
	}

	src, ok := mathtext.ParseNumber(equationText(c))
	if !ok {
		return challenge.Failure(s.Name(), "no source number in equation")
	}

	rounded := roundHalfUp(src, base)

	if c.TextInput != nil {
		answer := mathtext.FormatNumber(rounded)
		if err := c.TextInput.Type(answer); err != nil {
			return challenge.Failuref(s.Name(), "type failed: %v", err)
		}
		return challenge.Success(s.Name()).WithAnswer(answer)
	}

	idx := findChoice(c, s.cal, rounded)
	if idx < 0 {
		return challenge.Failuref(s.Name(), "no choice equals %v", rounded)
	}
	if err := c.Choices[idx].Click(); err != nil {
		return challenge.Failuref(s.Name(), "click failed: %v", err)
	}
	return challenge.Success(s.Name()).WithSelected(idx).WithDetail("%v -> %v", src, rounded)
}

// roundHalfUp rounds v to the nearest multiple of base, halves away from
// zero (standard school rounding).
func roundHalfUp(v, base float64) float64 {
	return math.Round(v/base) * base
}
