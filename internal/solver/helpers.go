package solver

import (
	"html"
	"regexp"
	"strings"

	"github.com/bitdittowit/autoduo/internal/challenge"
	"github.com/bitdittowit/autoduo/internal/diagram"
	"github.com/bitdittowit/autoduo/internal/mathtext"
)

// KaTeX embeds the original TeX source of a rendered formula in an
// annotation node. That source, not the rendered spans, is what the
// parsers consume.
var annotationRe = regexp.MustCompile(`(?s)<annotation[^>]*>(.*?)</annotation>`)

// AnnotationText extracts the first KaTeX annotation payload from markup,
// HTML-unescaped. Empty when none is present.
func AnnotationText(markup string) string {
	m := annotationRe.FindStringSubmatch(markup)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(m[1]))
}

// equationText returns the best available formula text for the snapshot:
// the captured annotation markup, falling back to the equation element's
// own annotation, then its visible text.
func equationText(c *challenge.Context) string {
	if c.EquationMarkup != "" {
		if ann := AnnotationText(c.EquationMarkup); ann != "" {
			return ann
		}
		return c.EquationMarkup
	}
	if c.Equation != nil {
		if ann := AnnotationText(c.Equation.Markup()); ann != "" {
			return ann
		}
		return c.Equation.Text()
	}
	return ""
}

// choiceValue decodes the value a choice element displays, in fallback
// order: KaTeX annotation, visual diagram (block count, pie or grid
// fraction), then plain text.
func choiceValue(el challenge.Element, cal diagram.Calibration) (float64, bool) {
	markup := el.Markup()

	if ann := AnnotationText(markup); ann != "" {
		if v, ok := mathtext.Evaluate(ann); ok {
			return v, true
		}
		if v, ok := mathtext.ParseNumber(ann); ok {
			return v, true
		}
	}

	if diagram.IsBlockDiagram(markup, cal) {
		if n, ok := diagram.DecodeBlocks(markup, cal); ok {
			return float64(n), true
		}
	}
	if diagram.IsPieChart(markup, cal) {
		if f, ok := diagram.DecodePie(markup, cal); ok {
			return f.Value(), true
		}
	}
	if diagram.IsGridDiagram(markup, cal) {
		if f, ok := diagram.DecodeGrid(markup, cal); ok {
			return f.Value(), true
		}
	}

	if v, ok := mathtext.Evaluate(el.Text()); ok {
		return v, true
	}
	return mathtext.ParseNumber(el.Text())
}

// findChoice returns the index of the first choice whose decoded value is
// within epsilon of want, or -1.
func findChoice(c *challenge.Context, cal diagram.Calibration, want float64) int {
	for i, el := range c.Choices {
		if v, ok := choiceValue(el, cal); ok && mathtext.AlmostEqual(v, want) {
			return i
		}
	}
	return -1
}

// choiceText returns the trimmed visible text of a choice.
func choiceText(el challenge.Element) string {
	return strings.TrimSpace(el.Text())
}
