package solver

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/bitdittowit/autoduo/internal/challenge"
	"github.com/bitdittowit/autoduo/internal/diagram"
	"github.com/bitdittowit/autoduo/internal/equation"
	"github.com/bitdittowit/autoduo/internal/mathtext"
)

// Widget-internal structure changes across vendor releases, so state is
// located through a fixed fallback order: the exposed state object first,
// then each known assignment pattern in the embedded script source. The
// first hit is authoritative.
var stateMarkers = []string{
	"window.challenge=",
	"window.challenge =",
	"window.__duoState=",
	"window.__duoState =",
	"var challenge=",
	"var challenge =",
}

// widgetState returns the widget's state JSON, or "" when unreachable.
func widgetState(w challenge.Widget) string {
	if s, err := w.State(); err == nil && strings.TrimSpace(s) != "" {
		return s
	}
	src := w.ScriptSource()
	for _, marker := range stateMarkers {
		if idx := strings.Index(src, marker); idx >= 0 {
			if blob := balancedJSON(src[idx+len(marker):]); blob != "" {
				return blob
			}
		}
	}
	return ""
}

// balancedJSON extracts the leading {...} object from s by brace depth
// counting, skipping string literals.
func balancedJSON(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s[0] != '{' {
		return ""
	}
	depth := 0
	inString := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			if ch == '\\' {
				i++
			} else if ch == '"' {
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}

// statePath reads the first present path from the state blob.
func statePath(state string, paths ...string) gjson.Result {
	for _, p := range paths {
		if r := gjson.Get(state, p); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}

// Write-back script templates. These are the only scripts ever executed in
// a widget context; the single verb is fixed and only numeric or array
// literals are interpolated.
const (
	setValueScript = `(function(){var s=window.challenge||window.__duoState;if(!s)return;s.learnerInput=%s;if(typeof s.notify==='function')s.notify();if(typeof window.duoNotify==='function')window.duoNotify();})()`
	setArrayScript = `(function(){var s=window.challenge||window.__duoState;if(!s)return;s.learnerInputs=%s;if(typeof s.notify==='function')s.notify();if(typeof window.duoNotify==='function')window.duoNotify();})()`
)

// writeValue delivers a numeric value to the widget: direct script first,
// cross-window message as the fallback.
func writeValue(w challenge.Widget, v float64) error {
	lit := strconv.FormatFloat(v, 'f', -1, 64)
	if err := w.Exec(fmt.Sprintf(setValueScript, lit)); err == nil {
		return nil
	}
	return w.Post(fmt.Sprintf(`{"type":"setInput","value":%s}`, lit))
}

// writeArray delivers an array payload the same way. values must already
// be JSON-marshalable literals (numbers or number arrays).
func writeArray(w challenge.Widget, values any) error {
	blob, err := json.Marshal(values)
	if err != nil {
		return err
	}
	if err := w.Exec(fmt.Sprintf(setArrayScript, blob)); err == nil {
		return nil
	}
	return w.Post(fmt.Sprintf(`{"type":"setInputs","values":%s}`, blob))
}

// widgetTarget derives the value the widget must be set to: the equation
// with a blank, a bare expression, or the first number in the header.
func widgetTarget(c *challenge.Context) (float64, bool) {
	text := equationText(c)
	if text != "" {
		if v, ok := equation.SolveBlank(text); ok {
			return v, true
		}
		if v, ok := evaluateEquationSide(text); ok {
			return v, true
		}
	}
	return mathtext.FirstNumber(c.HeaderText)
}

// slider sets a slider widget to the target value, snapped to the
// widget's step.
type slider struct{}

func (s *slider) Name() string { return "slider" }

func (s *slider) CanSolve(c *challenge.Context) bool {
	return c.FindWidget("slider") != nil
}

func (s *slider) Solve(c *challenge.Context) challenge.Result {
	w := c.FindWidget("slider")
	target, ok := widgetTarget(c)
	if !ok {
		return challenge.Failure(s.Name(), "no target value")
	}

	state := widgetState(w)
	if step := statePath(state, "step", "slider.step").Float(); step > 0 {
		target = roundHalfUp(target, step)
	}
	if min := statePath(state, "min", "slider.min"); min.Exists() && target < min.Float() {
		return challenge.Failuref(s.Name(), "target %v below slider range", target)
	}
	if max := statePath(state, "max", "slider.max"); max.Exists() && target > max.Float() {
		return challenge.Failuref(s.Name(), "target %v above slider range", target)
	}

	if err := writeValue(w, target); err != nil {
		return challenge.Failuref(s.Name(), "write failed: %v", err)
	}
	return challenge.Success(s.Name()).WithAnswer(mathtext.FormatNumber(target))
}

// spinner sets a numeric stepper widget to the target integer.
type spinner struct{}

func (s *spinner) Name() string { return "spinner" }

func (s *spinner) CanSolve(c *challenge.Context) bool {
	return c.FindWidget("spinner") != nil || c.FindWidget("stepper") != nil
}

func (s *spinner) Solve(c *challenge.Context) challenge.Result {
	w := c.FindWidget("spinner")
	if w == nil {
		w = c.FindWidget("stepper")
	}
	target, ok := widgetTarget(c)
	if !ok {
		return challenge.Failure(s.Name(), "no target value")
	}
	if err := writeValue(w, target); err != nil {
		return challenge.Failuref(s.Name(), "write failed: %v", err)
	}
	return challenge.Success(s.Name()).WithAnswer(mathtext.FormatNumber(target))
}

// expressionBuilder taps the tokens whose values build the target. With a
// single entry slot this degenerates to picking the one token equal to
// the target.
type expressionBuilder struct {
	cal diagram.Calibration
}

func (s *expressionBuilder) Name() string { return "expression-builder" }

func (s *expressionBuilder) CanSolve(c *challenge.Context) bool {
	return c.FindWidget("expression-builder") != nil || c.FindWidget("expressionBuilder") != nil
}

func (s *expressionBuilder) Solve(c *challenge.Context) challenge.Result {
	w := c.FindWidget("expression-builder")
	if w == nil {
		w = c.FindWidget("expressionBuilder")
	}

	target, ok := widgetTarget(c)
	if !ok {
		return challenge.Failure(s.Name(), "no target value")
	}

	values, fromState := tokenValues(w, c, s.cal)
	if len(values) == 0 {
		return challenge.Failure(s.Name(), "no tokens to build from")
	}

	slots := int(statePath(widgetState(w), "slots", "entryCount").Int())
	if slots == 0 {
		slots = 1
	}

	if slots == 1 {
		for i, v := range values {
			if mathtext.AlmostEqual(v, target) {
				return s.deliver(c, w, fromState, []int{i})
			}
		}
		return challenge.Failuref(s.Name(), "no token equals %v", target)
	}

	// Multi-slot: find a pair summing to the target; the vendor ships
	// two-term builds only.
	for i := range values {
		for j := range values {
			if i == j {
				continue
			}
			if mathtext.AlmostEqual(values[i]+values[j], target) {
				return s.deliver(c, w, fromState, []int{i, j})
			}
		}
	}
	return challenge.Failuref(s.Name(), "no token pair builds %v", target)
}

// tokenValues reads the buildable token values, from widget state when
// available, otherwise from the decoded choice elements.
func tokenValues(w challenge.Widget, c *challenge.Context, cal diagram.Calibration) ([]float64, bool) {
	state := widgetState(w)
	arr := statePath(state, "tokens", "learnerTokens", "options")
	if arr.IsArray() {
		var out []float64
		for _, r := range arr.Array() {
			if r.IsObject() {
				out = append(out, r.Get("value").Float())
			} else {
				out = append(out, r.Float())
			}
		}
		if len(out) > 0 {
			return out, true
		}
	}
	var out []float64
	for _, el := range c.Choices {
		v, ok := choiceValue(el, cal)
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, false
}

// deliver performs the selection: state-sourced tokens are written back
// through the widget, choice-sourced ones are clicked in order.
func (s *expressionBuilder) deliver(c *challenge.Context, w challenge.Widget, fromState bool, idxs []int) challenge.Result {
	if fromState {
		if err := writeArray(w, idxs); err != nil {
			return challenge.Failuref(s.Name(), "write failed: %v", err)
		}
		return challenge.Success(s.Name()).WithSelected(idxs...)
	}
	for _, i := range idxs {
		if err := c.Choices[i].Click(); err != nil {
			return challenge.Failuref(s.Name(), "click failed: %v", err)
		}
	}
	return challenge.Success(s.Name()).WithSelected(idxs...)
}

// factorTree fills a prime-factorization tree widget.
type factorTree struct{}

func (s *factorTree) Name() string { return "factor-tree" }

func (s *factorTree) CanSolve(c *challenge.Context) bool {
	return c.FindWidget("factor-tree") != nil || c.FindWidget("factorTree") != nil
}

func (s *factorTree) Solve(c *challenge.Context) challenge.Result {
	w := c.FindWidget("factor-tree")
	if w == nil {
		w = c.FindWidget("factorTree")
	}

	n, ok := sourceNumber(c)
	if !ok || n < 2 {
		root := statePath(widgetState(w), "root", "value").Int()
		if root < 2 {
			return challenge.Failure(s.Name(), "no number to factor")
		}
		n = root
	}

	primes := primeFactors(n)
	if len(primes) == 0 {
		return challenge.Failuref(s.Name(), "%d has no prime factorization", n)
	}
	if err := writeArray(w, primes); err != nil {
		return challenge.Failuref(s.Name(), "write failed: %v", err)
	}
	return challenge.Success(s.Name()).WithDetail("%d = %v", n, primes)
}

// primeFactors returns the prime factorization of n in ascending order.
func primeFactors(n int64) []int64 {
	var out []int64
	for d := int64(2); d*d <= n; d++ {
		for n%d == 0 {
			out = append(out, d)
			n /= d
		}
	}
	if n > 1 {
		out = append(out, n)
	}
	return out
}

// tableFill completes the blank cells of an in/out table widget by
// inferring the rule from its completed rows.
type tableFill struct{}

func (s *tableFill) Name() string { return "table-fill" }

func (s *tableFill) CanSolve(c *challenge.Context) bool {
	w := c.FindWidget("table")
	if w == nil {
		return false
	}
	return statePath(widgetState(w), "rows").IsArray()
}

func (s *tableFill) Solve(c *challenge.Context) challenge.Result {
	w := c.FindWidget("table")
	state := widgetState(w)
	rows := statePath(state, "rows").Array()
	if len(rows) == 0 {
		return challenge.Failure(s.Name(), "no table rows")
	}

	// Infer the rule out = in * k from the first complete row.
	k := 0.0
	found := false
	for _, r := range rows {
		in := r.Get("in")
		out := r.Get("out")
		if in.Exists() && out.Exists() && out.Type != gjson.Null && in.Float() != 0 {
			k = out.Float() / in.Float()
			found = true
			break
		}
	}
	if !found {
		return challenge.Failure(s.Name(), "no complete row to infer the rule from")
	}

	var fills []float64
	for _, r := range rows {
		out := r.Get("out")
		if !out.Exists() || out.Type == gjson.Null {
			fills = append(fills, r.Get("in").Float()*k)
		}
	}
	if len(fills) == 0 {
		return challenge.Failure(s.Name(), "no blank cells")
	}
	if err := writeArray(w, fills); err != nil {
		return challenge.Failuref(s.Name(), "write failed: %v", err)
	}
	return challenge.Success(s.Name()).WithDetail("rule x%v, filled %d cells", k, len(fills))
}

// pointPlot places a single point on a coordinate-plane widget.
type pointPlot struct{}

func (s *pointPlot) Name() string { return "point-plot" }

func (s *pointPlot) CanSolve(c *challenge.Context) bool {
	if c.FindWidget("plot-point") != nil {
		return true
	}
	// A plane widget without the line signature plots a point.
	return c.FindWidget("coordinate-plane") != nil && c.FindWidget("plot-line") == nil
}

func (s *pointPlot) Solve(c *challenge.Context) challenge.Result {
	w := c.FindWidget("plot-point")
	if w == nil {
		w = c.FindWidget("coordinate-plane")
	}

	// The point arrives either literally, "(3, 4)", or as y = f(x) with a
	// given x in the widget state.
	nums := mathtext.AllNumbers(equationText(c))
	var x, y float64
	switch {
	case len(nums) >= 2:
		x, y = nums[0], nums[1]
	default:
		k, b, ok := linearCoefficients(equationText(c))
		if !ok {
			return challenge.Failure(s.Name(), "no point to plot")
		}
		x = statePath(widgetState(w), "x", "givenX").Float()
		y = k*x + b
	}

	if err := writeArray(w, []float64{x, y}); err != nil {
		return challenge.Failuref(s.Name(), "write failed: %v", err)
	}
	return challenge.Success(s.Name()).WithDetail("(%v, %v)", x, y)
}

// lineGraph draws y = kx + b by writing two points on the line.
//
// Must be registered before pointPlot: a line widget's markup contains
// the point markup too, so the narrower line signature has to win first.
type lineGraph struct{}

func (s *lineGraph) Name() string { return "line-graph" }

func (s *lineGraph) CanSolve(c *challenge.Context) bool {
	return c.FindWidget("plot-line") != nil
}

func (s *lineGraph) Solve(c *challenge.Context) challenge.Result {
	w := c.FindWidget("plot-line")
	k, b, ok := linearCoefficients(equationText(c))
	if !ok {
		return challenge.Failuref(s.Name(), "no linear equation in %q", equationText(c))
	}
	points := [][]float64{{0, b}, {1, k + b}}
	if err := writeArray(w, points); err != nil {
		return challenge.Failuref(s.Name(), "write failed: %v", err)
	}
	return challenge.Success(s.Name()).WithDetail("y=%vx%+v", k, b)
}

var linearRe = regexp.MustCompile(`^(-?\d*\.?\d*)\*?x(([+-])(\d+(?:\.\d+)?))?$`)

// linearCoefficients parses "y = kx + b" (and the bare "kx+b" right side)
// into k and b. A missing coefficient reads as 1, a bare "-x" as -1.
func linearCoefficients(text string) (k, b float64, ok bool) {
	norm := strings.ToLower(mathtext.Normalize(text))
	if idx := strings.Index(norm, "y="); idx >= 0 {
		norm = norm[idx+2:]
	}
	m := linearRe.FindStringSubmatch(norm)
	if m == nil {
		return 0, 0, false
	}
	switch m[1] {
	case "", "+":
		k = 1
	case "-":
		k = -1
	default:
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, 0, false
		}
		k = v
	}
	if m[2] != "" {
		v, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return 0, 0, false
		}
		if m[3] == "-" {
			v = -v
		}
		b = v
	}
	return k, b, true
}
