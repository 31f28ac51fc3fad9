package solver

import (
	"strings"
	"testing"

	"github.com/bitdittowit/autoduo/internal/challenge"
)

func requireExecContaining(t *testing.T, w *challenge.StaticWidget, want string) {
	t.Helper()
	execs := w.Execs()
	if len(execs) != 1 {
		t.Fatalf("execs = %d, want 1", len(execs))
	}
	if !strings.Contains(execs[0], want) {
		t.Fatalf("exec %q does not contain %q", execs[0], want)
	}
	if len(w.Posts()) != 0 {
		t.Error("posted despite successful exec")
	}
}

func TestWidgetState_FromScriptSource(t *testing.T) {
	w := &challenge.StaticWidget{
		Scripts: `var x=1;window.challenge={"min":0,"max":100,"nested":{"a":"b}"}};render();`,
	}
	got := widgetState(w)
	want := `{"min":0,"max":100,"nested":{"a":"b}"}}`
	if got != want {
		t.Errorf("widgetState = %q, want %q", got, want)
	}
}

func TestWidgetState_PrefersStateObject(t *testing.T) {
	w := &challenge.StaticWidget{
		StateJS: `{"min":5}`,
		Scripts: `window.challenge={"min":0}`,
	}
	if got := widgetState(w); got != `{"min":5}` {
		t.Errorf("widgetState = %q, want the exposed state object", got)
	}
}

func TestSlider(t *testing.T) {
	w := &challenge.StaticWidget{
		Doc:     `<div class="slider-widget"></div>`,
		StateJS: `{"step":5,"min":0,"max":100}`,
	}
	c := withWidget(staticContext("move the slider to 35.", ""), w)
	s := &slider{}

	if !s.CanSolve(c) {
		t.Fatal("CanSolve = false")
	}
	res := s.Solve(c)
	if !res.Success || res.Answer != "35" {
		t.Fatalf("Solve = %v", res)
	}
	requireExecContaining(t, w, "35")
}

func TestSlider_SnapsToStep(t *testing.T) {
	w := &challenge.StaticWidget{
		Doc:     `<div class="slider-widget"></div>`,
		StateJS: `{"step":10}`,
	}
	c := withWidget(staticContext("move the slider to 37.", ""), w)

	res := (&slider{}).Solve(c)
	if !res.Success || res.Answer != "40" {
		t.Fatalf("Solve = %v, want snap to 40", res)
	}
}

func TestSlider_RejectsOutOfRange(t *testing.T) {
	w := &challenge.StaticWidget{
		Doc:     `<div class="slider-widget"></div>`,
		StateJS: `{"min":0,"max":100}`,
	}
	c := withWidget(staticContext("move the slider to 120.", ""), w)

	res := (&slider{}).Solve(c)
	if res.Success {
		t.Fatal("Solve succeeded on an out-of-range target")
	}
	if len(w.Execs()) != 0 {
		t.Error("wrote to the widget despite range failure")
	}
}

func TestSpinner(t *testing.T) {
	w := &challenge.StaticWidget{Doc: `<div class="spinner"></div>`}
	c := withWidget(staticContext("set the counter.", `\duoblank{1}+40=75`), w)
	s := &spinner{}

	if !s.CanSolve(c) {
		t.Fatal("CanSolve = false")
	}
	res := s.Solve(c)
	if !res.Success || res.Answer != "35" {
		t.Fatalf("Solve = %v", res)
	}
	requireExecContaining(t, w, "35")
}

func TestExpressionBuilder_SingleSlot(t *testing.T) {
	w := &challenge.StaticWidget{
		Doc:     `<div class="expression-builder"></div>`,
		StateJS: `{"slots":1,"tokens":[3,-10,-4]}`,
	}
	c := withWidget(staticContext("build the expression.", "-10"), w)
	s := &expressionBuilder{cal: testCal}

	if !s.CanSolve(c) {
		t.Fatal("CanSolve = false")
	}
	res := s.Solve(c)
	if !res.Success || len(res.Selected) != 1 || res.Selected[0] != 1 {
		t.Fatalf("Solve = %v, want selected [1]", res)
	}
	requireExecContaining(t, w, "[1]")
}

func TestExpressionBuilder_PairSum(t *testing.T) {
	w := &challenge.StaticWidget{
		Doc:     `<div class="expression-builder"></div>`,
		StateJS: `{"slots":2,"tokens":[3,7,5]}`,
	}
	c := withWidget(staticContext("build the sum.", "10"), w)

	res := (&expressionBuilder{cal: testCal}).Solve(c)
	if !res.Success || len(res.Selected) != 2 {
		t.Fatalf("Solve = %v, want two selected tokens", res)
	}
	requireExecContaining(t, w, "[0,1]")
}

func TestFactorTree(t *testing.T) {
	w := &challenge.StaticWidget{Doc: `<div class="factor-tree"></div>`}
	c := withWidget(staticContext("complete the factor tree.", "12"), w)
	s := &factorTree{}

	if !s.CanSolve(c) {
		t.Fatal("CanSolve = false")
	}
	res := s.Solve(c)
	if !res.Success {
		t.Fatalf("Solve failed: %s", res.Err)
	}
	requireExecContaining(t, w, "[2,2,3]")
}

func TestTableFill(t *testing.T) {
	w := &challenge.StaticWidget{
		Doc:     `<div class="table-widget"></div>`,
		StateJS: `{"rows":[{"in":2,"out":6},{"in":3,"out":null},{"in":5,"out":null}]}`,
	}
	c := withWidget(staticContext("complete the table.", ""), w)
	s := &tableFill{}

	if !s.CanSolve(c) {
		t.Fatal("CanSolve = false")
	}
	res := s.Solve(c)
	if !res.Success {
		t.Fatalf("Solve failed: %s", res.Err)
	}
	requireExecContaining(t, w, "[9,15]")
}

func TestPointPlot_LiteralPoint(t *testing.T) {
	w := &challenge.StaticWidget{Doc: `<div class="coordinate-plane"></div>`}
	c := withWidget(staticContext("plot the point.", "(3, 4)"), w)
	s := &pointPlot{}

	if !s.CanSolve(c) {
		t.Fatal("CanSolve = false")
	}
	res := s.Solve(c)
	if !res.Success {
		t.Fatalf("Solve failed: %s", res.Err)
	}
	requireExecContaining(t, w, "[3,4]")
}

func TestPointPlot_FromEquation(t *testing.T) {
	w := &challenge.StaticWidget{
		Doc:     `<div class="coordinate-plane"></div>`,
		StateJS: `{"x":2}`,
	}
	c := withWidget(staticContext("plot the point on the line.", "y = 3x"), w)

	res := (&pointPlot{}).Solve(c)
	if !res.Success {
		t.Fatalf("Solve failed: %s", res.Err)
	}
	requireExecContaining(t, w, "[2,6]")
}

func TestLineGraph(t *testing.T) {
	w := &challenge.StaticWidget{Doc: `<div class="coordinate-plane plot-line"></div>`}
	c := withWidget(staticContext("draw the line.", "y = 2x + 1"), w)
	s := &lineGraph{}

	if !s.CanSolve(c) {
		t.Fatal("CanSolve = false")
	}
	if (&pointPlot{}).CanSolve(c) {
		t.Error("point solver claimed a line widget")
	}
	res := s.Solve(c)
	if !res.Success {
		t.Fatalf("Solve failed: %s", res.Err)
	}
	requireExecContaining(t, w, "[[0,1],[1,3]]")
}

func TestLinearCoefficients(t *testing.T) {
	tests := []struct {
		in   string
		k, b float64
		ok   bool
	}{
		{"y = 2x + 1", 2, 1, true},
		{"y = x", 1, 0, true},
		{"y = -x + 3", -1, 3, true},
		{"y = 0.5x - 2", 0.5, -2, true},
		{"3x", 3, 0, true},
		{"not a line", 0, 0, false},
	}
	for _, tt := range tests {
		k, b, ok := linearCoefficients(tt.in)
		if ok != tt.ok || k != tt.k || b != tt.b {
			t.Errorf("linearCoefficients(%q) = %v, %v, %v; want %v, %v, %v",
				tt.in, k, b, ok, tt.k, tt.b, tt.ok)
		}
	}
}
