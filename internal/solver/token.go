package solver

import (
	"strings"

	"github.com/bitdittowit/autoduo/internal/challenge"
	"github.com/bitdittowit/autoduo/internal/diagram"
	"github.com/bitdittowit/autoduo/internal/mathtext"
)

// Token is a classified reading of one draggable/choice element. Tokens
// are produced fresh each solve and never cached across exercises.
type Token struct {
	Index int
	El    challenge.Element
	Raw   string

	// Value is the numeric reading, meaningful when HasValue.
	Value    float64
	HasValue bool

	// Kind flags route the token to a matching strategy. The set is
	// open: unflagged tokens are plain numbers or expressions.
	IsPieChart       bool
	IsBlockDiagram   bool
	IsRoundingTarget bool
	IsFactorsList    bool
	IsEquation       bool
	IsUnitRate       bool

	// RoundBase is the base of a rounding-target token.
	RoundBase float64

	// Factors is the parsed list of a factors-list token.
	Factors []int64

	used bool
}

// classifyTokens reads every choice element into a Token.
func classifyTokens(c *challenge.Context, cal diagram.Calibration) []*Token {
	tokens := make([]*Token, 0, len(c.Choices))
	for i, el := range c.Choices {
		tokens = append(tokens, classifyToken(i, el, cal))
	}
	return tokens
}

func classifyToken(i int, el challenge.Element, cal diagram.Calibration) *Token {
	t := &Token{Index: i, El: el, Raw: strings.TrimSpace(el.Text())}
	markup := el.Markup()

	if diagram.IsPieChart(markup, cal) {
		if f, ok := diagram.DecodePie(markup, cal); ok {
			t.IsPieChart = true
			t.Value, t.HasValue = f.Value(), true
			return t
		}
	}
	if diagram.IsBlockDiagram(markup, cal) {
		if n, ok := diagram.DecodeBlocks(markup, cal); ok {
			t.IsBlockDiagram = true
			t.Value, t.HasValue = float64(n), true
			return t
		}
	}

	lower := strings.ToLower(t.Raw)

	if m := nearestRe.FindStringSubmatch(lower); m != nil {
		t.IsRoundingTarget = true
		if base, ok := mathtext.FirstNumber(m[1]); ok {
			t.RoundBase = base
		}
		// The target value is the number that is not the base.
		for _, v := range mathtext.AllNumbers(lower) {
			if v != t.RoundBase {
				t.Value, t.HasValue = v, true
				break
			}
		}
		return t
	}

	if nums := commaSeparated(t.Raw); len(nums) >= 3 {
		t.IsFactorsList = true
		t.Factors = nums
		return t
	}

	if strings.Contains(lower, "x") && strings.Contains(lower, "=") {
		if k, _, ok := linearCoefficients(t.Raw); ok {
			t.IsEquation = true
			t.Value, t.HasValue = k, true
			return t
		}
	}

	if strings.Contains(lower, "per") || strings.Contains(lower, "each") {
		t.IsUnitRate = true
		nums := mathtext.AllNumbers(lower)
		switch {
		case len(nums) >= 2 && nums[1] != 0:
			t.Value, t.HasValue = nums[0]/nums[1], true
		case len(nums) == 1:
			t.Value, t.HasValue = nums[0], true
		}
		return t
	}

	if ann := AnnotationText(markup); ann != "" {
		if v, ok := mathtext.Evaluate(ann); ok {
			t.Value, t.HasValue = v, true
			return t
		}
	}
	if v, ok := mathtext.Evaluate(t.Raw); ok {
		t.Value, t.HasValue = v, true
	}
	return t
}

// commaSeparated parses "1, 2, 4, 8" style lists. Returns nil unless the
// text is exactly a comma list of integers.
func commaSeparated(s string) []int64 {
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return nil
	}
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		v, ok := mathtext.FirstNumber(strings.TrimSpace(p))
		if !ok || v != float64(int64(v)) {
			return nil
		}
		out = append(out, int64(v))
	}
	return out
}
