package solver

import (
	"time"

	"github.com/bitdittowit/autoduo/internal/challenge"
	"github.com/bitdittowit/autoduo/internal/diagram"
	"github.com/bitdittowit/autoduo/internal/mathtext"
)

// pairsMatching pairs draggable tokens. Strategies are tried in priority
// order and the first one whose input token populations are both
// non-empty handles the whole exercise; within a strategy tokens are
// consumed greedily and marked used so nothing pairs twice.
//
// Must be registered first in the chain: pairs exercises expose their
// tokens as choices, so any choice-based solver would otherwise claim
// them.
type pairsMatching struct {
	cal   diagram.Calibration
	delay time.Duration
}

func (s *pairsMatching) Name() string { return "pairs-matching" }

func (s *pairsMatching) CanSolve(c *challenge.Context) bool {
	if c.TextInput != nil || len(c.Choices) < 4 || len(c.Choices)%2 != 0 {
		return false
	}
	return c.HeaderContainsAny("match", "pair")
}

// pairStrategy pairs tokens from two populations. left/right select the
// populations; match decides whether two tokens belong together.
type pairStrategy struct {
	name  string
	left  func(*Token) bool
	right func(*Token) bool
	match func(left, right *Token, cal diagram.Calibration) bool
}

// Strategy order is part of the contract: earlier strategies encode
// stronger structural signals. The block-to-number scale heuristics are
// inherently ambiguous near integer/100 boundaries; their fallback order
// is preserved from observed vendor behavior, not derived.
var pairStrategies = []pairStrategy{
	{
		name:  "rounding",
		left:  func(t *Token) bool { return t.IsRoundingTarget },
		right: func(t *Token) bool { return plainNumber(t) },
		match: func(l, r *Token, _ diagram.Calibration) bool {
			if l.RoundBase == 0 || !l.HasValue || !r.HasValue {
				return false
			}
			// A target token carries either side of the rounding: the
			// source value still to be rounded, or the rounded result
			// awaiting its source. Accept both shapes.
			return mathtext.AlmostEqual(roundHalfUp(l.Value, l.RoundBase), r.Value) ||
				mathtext.AlmostEqual(roundHalfUp(r.Value, l.RoundBase), l.Value)
		},
	},
	{
		name:  "equation-to-unit-rate",
		left:  func(t *Token) bool { return t.IsEquation },
		right: func(t *Token) bool { return t.IsUnitRate },
		match: func(l, r *Token, _ diagram.Calibration) bool {
			return l.HasValue && r.HasValue && mathtext.AlmostEqual(l.Value, r.Value)
		},
	},
	{
		name:  "block-to-number",
		left:  func(t *Token) bool { return t.IsBlockDiagram },
		right: func(t *Token) bool { return plainNumber(t) },
		match: blockMatches,
	},
	{
		name:  "factors-to-number",
		left:  func(t *Token) bool { return t.IsFactorsList },
		right: func(t *Token) bool { return plainNumber(t) },
		match: func(l, r *Token, _ diagram.Calibration) bool {
			return factorsBelongTo(l.Factors, int64(r.Value))
		},
	},
	{
		name:  "pie-to-number",
		left:  func(t *Token) bool { return t.IsPieChart },
		right: func(t *Token) bool { return plainNumber(t) },
		match: func(l, r *Token, _ diagram.Calibration) bool {
			if mathtext.AlmostEqual(l.Value, r.Value) {
				return true
			}
			// Percent reading of the same sector.
			return mathtext.AlmostEqual(l.Value*100, r.Value)
		},
	},
	{
		name:  "expression-to-number",
		left:  func(t *Token) bool { return plainNumber(t) },
		right: func(t *Token) bool { return plainNumber(t) },
		match: func(l, r *Token, _ diagram.Calibration) bool {
			return l.Index != r.Index && mathtext.AlmostEqual(l.Value, r.Value)
		},
	},
	{
		name:  "any-to-any",
		left:  func(t *Token) bool { return t.HasValue },
		right: func(t *Token) bool { return t.HasValue },
		match: func(l, r *Token, _ diagram.Calibration) bool {
			return l.Index != r.Index && mathtext.AlmostEqual(l.Value, r.Value)
		},
	},
}

func plainNumber(t *Token) bool {
	return t.HasValue && !t.IsPieChart && !t.IsBlockDiagram && !t.IsRoundingTarget &&
		!t.IsFactorsList && !t.IsEquation && !t.IsUnitRate
}

// blockMatches applies the block-count scale heuristics in their fixed
// fallback order: literal count, count as a decimal scaled by 100, count
// as columns of ten.
func blockMatches(l, r *Token, cal diagram.Calibration) bool {
	count := l.Value
	v := r.Value
	if mathtext.AlmostEqual(count, v) {
		return true
	}
	if diff := count/100 - v; diff < cal.PercentScaleTolerance && diff > -cal.PercentScaleTolerance {
		return true
	}
	return mathtext.AlmostEqual(count/10, v)
}

// factorsBelongTo reports whether the list is the factor list of n:
// every entry divides n and the largest entry is n itself.
func factorsBelongTo(factors []int64, n int64) bool {
	if n == 0 || len(factors) == 0 {
		return false
	}
	max := factors[0]
	for _, f := range factors {
		if f == 0 || n%f != 0 {
			return false
		}
		if f > max {
			max = f
		}
	}
	return max == n
}

func (s *pairsMatching) Solve(c *challenge.Context) challenge.Result {
	tokens := classifyTokens(c, s.cal)

	for _, strat := range pairStrategies {
		lefts := filterTokens(tokens, strat.left)
		rights := filterTokens(tokens, strat.right)
		if len(lefts) == 0 || len(rights) == 0 {
			continue
		}

		pairs := s.pairGreedy(lefts, rights, strat)
		if len(pairs) == 0 {
			continue
		}

		var clicked []int
		for _, p := range pairs {
			clicked = append(clicked, p[0], p[1])
		}
		if err := clickStaggered(c, clicked, s.delay); err != nil {
			return challenge.Failuref(s.Name(), "click failed: %v", err)
		}
		return challenge.Success(s.Name()).
			WithSelected(clicked...).
			WithDetail("strategy %s, %d pairs", strat.name, len(pairs))
	}
	return challenge.Failure(s.Name(), "no strategy paired the tokens")
}

func filterTokens(tokens []*Token, keep func(*Token) bool) []*Token {
	var out []*Token
	for _, t := range tokens {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// pairGreedy consumes tokens left to right, marking both sides used so
// nothing pairs twice.
func (s *pairsMatching) pairGreedy(lefts, rights []*Token, strat pairStrategy) [][2]int {
	var pairs [][2]int
	for _, l := range lefts {
		if l.used {
			continue
		}
		for _, r := range rights {
			if r.used || r.Index == l.Index {
				continue
			}
			if strat.match(l, r, s.cal) {
				l.used, r.used = true, true
				pairs = append(pairs, [2]int{l.Index, r.Index})
				break
			}
		}
	}
	return pairs
}
