package solver

import (
	"github.com/bitdittowit/autoduo/internal/challenge"
	"github.com/bitdittowit/autoduo/internal/diagram"
	"github.com/bitdittowit/autoduo/internal/mathtext"
)

// blockCount answers block-diagram exercises in either direction: type the
// number a diagram shows, or pick the diagram showing a given number.
type blockCount struct {
	cal diagram.Calibration
}

func (s *blockCount) Name() string { return "block-count" }

func (s *blockCount) CanSolve(c *challenge.Context) bool {
	if c.TextInput != nil {
		w := c.PrimaryWidget()
		return w != nil && diagram.IsBlockDiagram(w.Markup(), s.cal)
	}
	if len(c.Choices) == 0 {
		return false
	}
	if _, ok := mathtext.ParseNumber(equationText(c)); !ok {
		return false
	}
	for _, el := range c.Choices {
		if diagram.IsBlockDiagram(el.Markup(), s.cal) {
			return true
		}
	}
	return false
}

func (s *blockCount) Solve(c *challenge.Context) challenge.Result {
	if c.TextInput != nil {
		w := c.PrimaryWidget()
		n, ok := diagram.DecodeBlocks(w.Markup(), s.cal)
		if !ok {
			return challenge.Failure(s.Name(), "cannot decode block diagram")
		}
		answer := mathtext.FormatNumber(float64(n))
		if err := c.TextInput.Type(answer); err != nil {
			return challenge.Failuref(s.Name(), "type failed: %v", err)
		}
		return challenge.Success(s.Name()).WithAnswer(answer)
	}

	want, ok := mathtext.ParseNumber(equationText(c))
	if !ok {
		return challenge.Failure(s.Name(), "no target number")
	}
	for i, el := range c.Choices {
		n, ok := diagram.DecodeBlocks(el.Markup(), s.cal)
		if !ok {
			continue
		}
		if mathtext.AlmostEqual(float64(n), want) {
			if err := el.Click(); err != nil {
				return challenge.Failuref(s.Name(), "click failed: %v", err)
			}
			return challenge.Success(s.Name()).WithSelected(i)
		}
	}
	return challenge.Failuref(s.Name(), "no diagram shows %v", want)
}

// pieFraction types the fraction a pie-chart widget shows.
type pieFraction struct {
	cal diagram.Calibration
}

func (s *pieFraction) Name() string { return "pie-fraction" }

func (s *pieFraction) CanSolve(c *challenge.Context) bool {
	if c.TextInput == nil {
		return false
	}
	w := c.PrimaryWidget()
	return w != nil && diagram.IsPieChart(w.Markup(), s.cal)
}

func (s *pieFraction) Solve(c *challenge.Context) challenge.Result {
	w := c.PrimaryWidget()
	f, ok := diagram.DecodePie(w.Markup(), s.cal)
	if !ok {
		return challenge.Failure(s.Name(), "cannot decode pie chart")
	}
	if err := c.TextInput.Type(f.String()); err != nil {
		return challenge.Failuref(s.Name(), "type failed: %v", err)
	}
	return challenge.Success(s.Name()).WithAnswer(f.String()).WithFraction(f.Num, f.Den)
}

// gridFraction types the fraction a colored cell grid shows.
type gridFraction struct {
	cal diagram.Calibration
}

func (s *gridFraction) Name() string { return "grid-fraction" }

func (s *gridFraction) CanSolve(c *challenge.Context) bool {
	if c.TextInput == nil {
		return false
	}
	// A fully colored grid and a block diagram render identically, so the
	// header's fraction wording is part of the signature.
	if !c.HeaderContainsAny("fraction", "shaded", "part of") {
		return false
	}
	w := c.PrimaryWidget()
	return w != nil && diagram.IsGridDiagram(w.Markup(), s.cal)
}

func (s *gridFraction) Solve(c *challenge.Context) challenge.Result {
	w := c.PrimaryWidget()
	f, ok := diagram.DecodeGrid(w.Markup(), s.cal)
	if !ok {
		return challenge.Failure(s.Name(), "cannot decode grid")
	}
	if err := c.TextInput.Type(f.String()); err != nil {
		return challenge.Failuref(s.Name(), "type failed: %v", err)
	}
	return challenge.Success(s.Name()).WithAnswer(f.String()).WithFraction(f.Num, f.Den)
}
