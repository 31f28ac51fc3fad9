package solver

import (
	"regexp"
	"strconv"

	"github.com/bitdittowit/autoduo/internal/challenge"
	"github.com/bitdittowit/autoduo/internal/diagram"
	"github.com/bitdittowit/autoduo/internal/mathtext"
)

var percentOfRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%\s*of\s*(\d+(?:\.\d+)?)`)

// percentOf handles "What is P% of N?" in both modalities.
type percentOf struct {
	cal diagram.Calibration
}

func (s *percentOf) Name() string { return "percent-of" }

func (s *percentOf) CanSolve(c *challenge.Context) bool {
	if c.TextInput == nil && len(c.Choices) == 0 {
		return false
	}
	return percentOfRe.MatchString(c.HeaderText) || percentOfRe.MatchString(equationText(c))
}

func (s *percentOf) Solve(c *challenge.Context) challenge.Result {
	m := percentOfRe.FindStringSubmatch(c.HeaderText)
	if m == nil {
		m = percentOfRe.FindStringSubmatch(equationText(c))
	}
	if m == nil {
		return challenge.Failure(s.Name(), "no percent expression")
	}
	p, _ := strconv.ParseFloat(m[1], 64)
	n, _ := strconv.ParseFloat(m[2], 64)
	answer := p / 100 * n

	if c.TextInput != nil {
		formatted := mathtext.FormatNumber(answer)
		if err := c.TextInput.Type(formatted); err != nil {
			return challenge.Failuref(s.Name(), "type failed: %v", err)
		}
		return challenge.Success(s.Name()).WithAnswer(formatted)
	}

	idx := findChoice(c, s.cal, answer)
	if idx < 0 {
		return challenge.Failuref(s.Name(), "no choice equals %v", answer)
	}
	if err := c.Choices[idx].Click(); err != nil {
		return challenge.Failuref(s.Name(), "click failed: %v", err)
	}
	return challenge.Success(s.Name()).WithSelected(idx)
}

// unitRate handles "N units cost M, what is the rate per unit": divides
// the two quantities from the rate sentence in header order.
type unitRate struct {
	cal diagram.Calibration
}

func (s *unitRate) Name() string { return "unit-rate" }

func (s *unitRate) CanSolve(c *challenge.Context) bool {
	if c.TextInput == nil && len(c.Choices) == 0 {
		return false
	}
	if !c.HeaderContainsAny("per ", "unit rate", "each") {
		return false
	}
	return len(mathtext.AllNumbers(c.HeaderText))+len(mathtext.AllNumbers(equationText(c))) >= 2
}

func (s *unitRate) Solve(c *challenge.Context) challenge.Result {
	nums := mathtext.AllNumbers(c.HeaderText)
	if len(nums) < 2 {
		nums = append(nums, mathtext.AllNumbers(equationText(c))...)
	}
	if len(nums) < 2 || nums[1] == 0 {
		return challenge.Failure(s.Name(), "no rate pair found")
	}
	rate := nums[0] / nums[1]

	if c.TextInput != nil {
		formatted := mathtext.FormatNumber(rate)
		if err := c.TextInput.Type(formatted); err != nil {
			return challenge.Failuref(s.Name(), "type failed: %v", err)
		}
		return challenge.Success(s.Name()).WithAnswer(formatted)
	}

	idx := findChoice(c, s.cal, rate)
	if idx < 0 {
		return challenge.Failuref(s.Name(), "no choice equals %v", rate)
	}
	if err := c.Choices[idx].Click(); err != nil {
		return challenge.Failuref(s.Name(), "click failed: %v", err)
	}
	return challenge.Success(s.Name()).WithSelected(idx)
}
