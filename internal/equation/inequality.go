package equation

import (
	"strings"

	"github.com/bitdittowit/autoduo/internal/fraction"
	"github.com/bitdittowit/autoduo/internal/mathtext"
)

// Comparison operators in detection order. Two-character forms and their
// normalized single-rune equivalents come first so ">=" is never split as
// ">" followed by a stray "=".
var inequalityOps = []string{"≥", "≤", ">=", "<=", ">", "<"}

// HasInequality reports whether normalized markup contains a comparison
// operator.
func HasInequality(raw string) bool {
	s := mathtext.Normalize(raw)
	for _, op := range inequalityOps {
		if strings.Contains(s, op) {
			return true
		}
	}
	return false
}

// SolveInequality finds the tightest integer numerator satisfying an
// inequality with a blank on one side. The known side is read as an integer
// or a fraction; the answer is returned as "n/d" over the known
// denominator (denominator 1 renders as a plain integer) and is clamped to
// be at least 1.
func SolveInequality(text string) (string, bool) {
	replaced, _ := ReplaceBlank(text)
	s := mathtext.Normalize(replaced)

	var op string
	var opIdx int = -1
	for _, candidate := range inequalityOps {
		if idx := strings.Index(s, candidate); idx >= 0 {
			op, opIdx = candidate, idx
			break
		}
	}
	if opIdx < 0 {
		return "", false
	}

	left := s[:opIdx]
	right := s[opIdx+len(op):]

	leftHas := strings.Contains(left, unknown)
	rightHas := strings.Contains(right, unknown)
	if leftHas == rightHas {
		return "", false
	}

	known := right
	if rightHas {
		known = left
	}

	kn, kd, ok := mathtext.ParseFraction(known)
	if !ok || kd == 0 {
		return "", false
	}

	// Reduce to a numerator comparison over the known denominator.
	// strict: the unknown side must differ from the known numerator.
	greater, strict := direction(op, leftHas)

	var n int64
	switch {
	case greater && strict:
		n = kn + 1
	case greater:
		n = kn
	case strict:
		n = kn - 1
	default:
		n = kn
	}
	if n < 1 {
		n = 1
	}

	return fraction.Fraction{Num: n, Den: kd}.String(), true
}

// direction resolves which way the unknown must move. greater means the
// unknown side must be the larger one; strict means equality fails.
func direction(op string, unknownOnLeft bool) (greater, strict bool) {
	switch op {
	case ">", ">=":
		greater = unknownOnLeft
	case "<", "<=":
		greater = !unknownOnLeft
	case "≥":
		greater = unknownOnLeft
	case "≤":
		greater = !unknownOnLeft
	}
	strict = op == ">" || op == "<"
	return greater, strict
}
