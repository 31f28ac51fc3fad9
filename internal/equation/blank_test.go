package equation

import (
	"math"
	"testing"

	"github.com/bitdittowit/autoduo/internal/mathtext"
)

func TestSolveBlank(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{`3+\duoblank{1}=7`, 4},
		{`\duoblank{1}+3=7`, 4},
		{"X*5=25", 5},
		{"5*X=25", 5},
		{"X-3=4", 7},
		{"10-X=4", 6},
		{"X/4=3", 12},
		{"12/X=4", 3},
		{"X=9", 9},
		{"9=X", 9},
		{"X=3+4", 7},
		{`\duoblank{2}=\frac{1}{2}+\frac{1}{2}`, 1},
		{"(X)*3=12", 4},
		{"2*X+1=9", 4}, // no shape matches; brute force
		{"X*X=49", 7},  // brute force, first match from the low end is -7
	}

	for _, tc := range tests {
		got, ok := SolveBlank(tc.in)
		if !ok {
			t.Errorf("SolveBlank(%q) failed, want %v", tc.in, tc.want)
			continue
		}
		if tc.in == "X*X=49" {
			// Either root is a valid substitution.
			if math.Abs(got-7) > mathtext.Epsilon && math.Abs(got+7) > mathtext.Epsilon {
				t.Errorf("SolveBlank(%q) = %v, want ±7", tc.in, got)
			}
			continue
		}
		if math.Abs(got-tc.want) > mathtext.Epsilon {
			t.Errorf("SolveBlank(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSolveBlank_Decimal(t *testing.T) {
	got, ok := SolveBlank("X+(-1.95)=0")
	if !ok {
		t.Fatal("SolveBlank decimal case failed")
	}
	if math.Abs(got-1.95) > mathtext.Epsilon {
		t.Errorf("SolveBlank(X+(-1.95)=0) = %v, want 1.95", got)
	}
}

func TestSolveBlank_Failures(t *testing.T) {
	tests := []string{
		"3+4",   // no equals
		"X+X=X", // unknown on both sides
		"3+4=7", // no unknown
		"X=abc", // other side not evaluable
	}

	for _, in := range tests {
		if v, ok := SolveBlank(in); ok {
			t.Errorf("SolveBlank(%q) = %v, want failure", in, v)
		}
	}
}

func TestReplaceBlank(t *testing.T) {
	s, found := ReplaceBlank(`3+\duoblank{1}=7`)
	if !found || s != "3+X=7" {
		t.Errorf("ReplaceBlank = %q found=%v, want 3+X=7", s, found)
	}
	if _, found := ReplaceBlank("3+4=7"); found {
		t.Error("ReplaceBlank reported a blank where none exists")
	}
}

func TestSolveInequality(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`\duoblank{1}>3`, "4"},
		{`\duoblank{1}\geq3`, "3"},
		{`\duoblank{1}<5`, "4"},
		{`3<\duoblank{1}`, "4"},
		{`\frac{\duoblank{1}}{4}>\frac{1}{4}`, "2/4"},
		{`\frac{X}{8}\geq\frac{3}{8}`, "3/8"},
		{`\duoblank{1}<1`, "1"}, // clamped to at least 1
	}

	for _, tc := range tests {
		got, ok := SolveInequality(tc.in)
		if !ok {
			t.Errorf("SolveInequality(%q) failed, want %q", tc.in, tc.want)
			continue
		}
		if got != tc.want {
			t.Errorf("SolveInequality(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSolveInequality_NoOperator(t *testing.T) {
	if v, ok := SolveInequality("X=3"); ok {
		t.Errorf("SolveInequality without operator = %q, want failure", v)
	}
}
