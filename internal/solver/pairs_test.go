package solver

import (
	"strings"
	"testing"

	"github.com/bitdittowit/autoduo/internal/challenge"
)

func pairsContext(texts ...string) (*challenge.Context, []*challenge.StaticElement) {
	return withChoices(staticContext("tap the matching pairs.", ""), texts...)
}

func requireAllClickedOnce(t *testing.T, els []*challenge.StaticElement) {
	t.Helper()
	for i, el := range els {
		if el.Clicks() != 1 {
			t.Errorf("choice %d clicks = %d, want 1", i, el.Clicks())
		}
	}
}

func TestPairs_Rounding(t *testing.T) {
	c, els := pairsContext(
		"round 41 to the nearest 10", "40",
		"round 17 to the nearest 5", "15")
	s := &pairsMatching{cal: testCal}

	if !s.CanSolve(c) {
		t.Fatal("CanSolve = false")
	}
	res := s.Solve(c)
	if !res.Success {
		t.Fatalf("Solve failed: %s", res.Err)
	}
	if !strings.Contains(res.Detail, "rounding") {
		t.Errorf("strategy = %q, want rounding", res.Detail)
	}
	requireAllClickedOnce(t, els)
}

func TestPairs_RoundingTargetCarriesRoundedValue(t *testing.T) {
	// Target tokens hold the rounded result; the plain tokens hold the
	// unrounded source values.
	c, els := pairsContext(
		"nearest 10: 40", "41",
		"nearest 10: 20", "24")
	s := &pairsMatching{cal: testCal}

	res := s.Solve(c)
	if !res.Success {
		t.Fatalf("Solve failed: %s", res.Err)
	}
	if !strings.Contains(res.Detail, "rounding") {
		t.Errorf("strategy = %q, want rounding", res.Detail)
	}
	requireAllClickedOnce(t, els)
}

func TestRoundingMatchDirections(t *testing.T) {
	match := pairStrategies[0].match

	tests := []struct {
		name   string
		target Token
		plain  Token
		want   bool
	}{
		{"rounded target, source plain", Token{IsRoundingTarget: true, RoundBase: 10, Value: 40, HasValue: true}, Token{Value: 41, HasValue: true, Index: 1}, true},
		{"source target, rounded plain", Token{IsRoundingTarget: true, RoundBase: 10, Value: 41, HasValue: true}, Token{Value: 40, HasValue: true, Index: 1}, true},
		{"unrelated values", Token{IsRoundingTarget: true, RoundBase: 10, Value: 40, HasValue: true}, Token{Value: 15, HasValue: true, Index: 1}, false},
		{"missing base", Token{IsRoundingTarget: true, Value: 40, HasValue: true}, Token{Value: 40, HasValue: true, Index: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := match(&tt.target, &tt.plain, testCal); got != tt.want {
				t.Errorf("match = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPairs_FactorsToNumber(t *testing.T) {
	c, els := pairsContext(
		"1, 2, 3, 6", "6",
		"1, 2, 4, 8", "8")
	s := &pairsMatching{cal: testCal}

	res := s.Solve(c)
	if !res.Success {
		t.Fatalf("Solve failed: %s", res.Err)
	}
	if !strings.Contains(res.Detail, "factors-to-number") {
		t.Errorf("strategy = %q, want factors-to-number", res.Detail)
	}
	requireAllClickedOnce(t, els)
}

func TestPairs_ExpressionToNumber(t *testing.T) {
	c, els := pairsContext("3*4", "12", "20/4", "5")
	s := &pairsMatching{cal: testCal}

	res := s.Solve(c)
	if !res.Success {
		t.Fatalf("Solve failed: %s", res.Err)
	}
	requireAllClickedOnce(t, els)
}

func TestPairs_BlockToNumber(t *testing.T) {
	c := staticContext("match each model to its number.", "")
	blocks := []*challenge.StaticElement{
		{OuterHTML: blockSVG(7)},
		{OuterHTML: blockSVG(3)},
	}
	numbers := []*challenge.StaticElement{
		{TextContent: "3"},
		{TextContent: "7"},
	}
	c.Choices = []challenge.Element{blocks[0], blocks[1], numbers[0], numbers[1]}
	s := &pairsMatching{cal: testCal}

	if !s.CanSolve(c) {
		t.Fatal("CanSolve = false")
	}
	res := s.Solve(c)
	if !res.Success {
		t.Fatalf("Solve failed: %s", res.Err)
	}
	if !strings.Contains(res.Detail, "block-to-number") {
		t.Errorf("strategy = %q, want block-to-number", res.Detail)
	}
	for i, el := range append(blocks, numbers...) {
		if el.Clicks() != 1 {
			t.Errorf("element %d clicks = %d, want 1", i, el.Clicks())
		}
	}
}

func TestPairs_RejectsOddOrSmallSets(t *testing.T) {
	s := &pairsMatching{cal: testCal}

	odd, _ := withChoices(staticContext("tap the matching pairs.", ""), "1", "2", "3")
	if s.CanSolve(odd) {
		t.Error("CanSolve accepted an odd choice count")
	}

	small, _ := withChoices(staticContext("tap the matching pairs.", ""), "1", "2")
	if s.CanSolve(small) {
		t.Error("CanSolve accepted fewer than 4 choices")
	}

	wrongHeader, _ := withChoices(staticContext("choose the answer.", ""), "1", "2", "3", "4")
	if s.CanSolve(wrongHeader) {
		t.Error("CanSolve accepted a non-pairs header")
	}
}

func TestBlockMatches_ScaleFallbacks(t *testing.T) {
	tests := []struct {
		count, value float64
		want         bool
	}{
		{40, 40, true},  // literal
		{40, 0.4, true}, // decimal scaled by 100
		{40, 4, true},   // columns of ten
		{40, 3, false},
	}
	for _, tt := range tests {
		l := &Token{Value: tt.count, HasValue: true}
		r := &Token{Value: tt.value, HasValue: true, Index: 1}
		if got := blockMatches(l, r, testCal); got != tt.want {
			t.Errorf("blockMatches(%v, %v) = %v, want %v", tt.count, tt.value, got, tt.want)
		}
	}
}

func TestClassifyToken(t *testing.T) {
	el := &challenge.StaticElement{TextContent: "round 30 to the nearest 10"}
	tok := classifyToken(0, el, testCal)
	if !tok.IsRoundingTarget || tok.RoundBase != 10 || tok.Value != 30 {
		t.Errorf("rounding token = %+v", tok)
	}

	el = &challenge.StaticElement{TextContent: "1, 2, 4, 8"}
	tok = classifyToken(0, el, testCal)
	if !tok.IsFactorsList || len(tok.Factors) != 4 {
		t.Errorf("factors token = %+v", tok)
	}

	el = &challenge.StaticElement{TextContent: "12/4"}
	tok = classifyToken(0, el, testCal)
	if tok.IsFactorsList || !tok.HasValue || tok.Value != 3 {
		t.Errorf("expression token = %+v", tok)
	}

	el = &challenge.StaticElement{TextContent: "60 miles per hour"}
	tok = classifyToken(0, el, testCal)
	if !tok.IsUnitRate || tok.Value != 60 {
		t.Errorf("unit rate token = %+v", tok)
	}
}
