package mathtext

import "testing"

func TestNormalize_Wrappers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`\mathbf{42}`, "42"},
		{`\text{7}`, "7"},
		{`\boxed{3+4}`, "3+4"},
		{`\mathbf{\text{5}}`, "5"}, // nested wrappers fully unwrap
		{"42", "42"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_Operators(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`3\times4`, "3*4"},
		{`8\div2`, "8/2"},
		{`2\cdot5`, "2*5"},
		{"3×4", "3*4"},
		{"8÷2", "8/2"},
		{"5−3", "5-3"},
		{"2⋅5", "2*5"},
		{`x\geq3`, "x≥3"},
		{`x\le7`, "x≤7"},
	}

	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_Fractions(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`\frac{1}{2}`, "(1/2)"},
		{`\frac{1}{2}+\frac{1}{3}`, "(1/2)+(1/3)"},
		{`\frac{\frac{1}{2}}{3}`, "((1/2)/3)"}, // nested resolves on a later pass
		{`\frac{3}{4`, `\frac{3}{4`},           // unbalanced left unexpanded
	}

	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_Negation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`\neg(3+4)`, "-(3+4)"},
		{`\neg7`, "7"}, // no parenthesis: blind strip
		{`\left(1+2\right)`, "(1+2)"},
	}

	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_Whitespace(t *testing.T) {
	if got := Normalize("3 + 4"); got != "3+4" {
		t.Errorf("Normalize(%q) = %q, want %q", "3 + 4", got, "3+4")
	}
}
