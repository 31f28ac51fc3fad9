// Package equation solves exercise equations containing a blank
// placeholder: an algebraic fast path over a fixed set of shapes, then a
// bounded brute-force search.
package equation

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/bitdittowit/autoduo/internal/mathtext"
)

// The blank placeholder as it appears in raw vendor markup. The trailing
// brace argument is an opaque slot id.
var blankRe = regexp.MustCompile(`\\duoblank\{[^{}]*\}|\\duoblank|\\blank`)

// unknown is the single-letter token the placeholder is rewritten to.
const unknown = "X"

// ReplaceBlank rewrites every blank placeholder in raw markup with the
// unknown token and reports whether one was present.
func ReplaceBlank(raw string) (string, bool) {
	if !blankRe.MatchString(raw) {
		return raw, false
	}
	return blankRe.ReplaceAllString(raw, unknown), true
}

// HasBlank reports whether raw markup contains a blank placeholder.
func HasBlank(raw string) bool { return blankRe.MatchString(raw) }

// SolveBlank solves an equation whose markup contains a blank placeholder
// (or a bare X), returning the value of the unknown. Returns false when the
// text does not split on '=', the unknown appears on both or neither side,
// or no solution is found within the search bounds.
func SolveBlank(text string) (float64, bool) {
	replaced, _ := ReplaceBlank(text)
	s := mathtext.Normalize(replaced)

	eq := strings.Index(s, "=")
	if eq < 0 {
		return 0, false
	}
	left, right := s[:eq], s[eq+1:]

	leftHas := strings.Contains(left, unknown)
	rightHas := strings.Contains(right, unknown)
	if leftHas == rightHas {
		return 0, false
	}

	holder, other := left, right
	if rightHas {
		holder, other = right, left
	}

	target, ok := mathtext.Evaluate(other)
	if !ok {
		return 0, false
	}

	// Fast path: the unknown stands alone.
	if holder == unknown || holder == "("+unknown+")" {
		return target, true
	}

	if v, ok := solveAlgebraic(holder, target); ok {
		return v, true
	}
	return solveBruteForce(holder, target)
}

// shapePattern inverts one arithmetic shape analytically. n is the parsed
// coefficient; invert returns the unknown's value and false when the shape
// has no solution for this coefficient (division by zero).
type shapePattern struct {
	re     *regexp.Regexp
	invert func(n, target float64) (float64, bool)
}

const num = `(-?\d+(?:\.\d+)?)`

// Ordered shape list; first match wins. Decimal coefficients are allowed.
var shapePatterns = []shapePattern{
	{regexp.MustCompile(`^X\+` + num + `$`), func(n, t float64) (float64, bool) { return t - n, true }},
	{regexp.MustCompile(`^X-` + num + `$`), func(n, t float64) (float64, bool) { return t + n, true }},
	{regexp.MustCompile(`^` + num + `\+X$`), func(n, t float64) (float64, bool) { return t - n, true }},
	{regexp.MustCompile(`^` + num + `-X$`), func(n, t float64) (float64, bool) { return n - t, true }},
	{regexp.MustCompile(`^X\*` + num + `$`), func(n, t float64) (float64, bool) { return safeDiv(t, n) }},
	{regexp.MustCompile(`^` + num + `\*X$`), func(n, t float64) (float64, bool) { return safeDiv(t, n) }},
	{regexp.MustCompile(`^X/` + num + `$`), func(n, t float64) (float64, bool) { return t * n, true }},
	{regexp.MustCompile(`^` + num + `/X$`), func(n, t float64) (float64, bool) { return safeDiv(n, t) }},
}

func safeDiv(a, b float64) (float64, bool) {
	if b == 0 {
		return 0, false
	}
	return a / b, true
}

var parenNumRe = regexp.MustCompile(`\((-?\d+(?:\.\d+)?)\)`)

// solveAlgebraic matches the unknown-bearing side against the shape list.
// A parenthesized unknown is unwrapped first so (X)+n matches X+n, and a
// parenthesized numeric coefficient unwraps so X+(-1.95) matches X+n.
func solveAlgebraic(holder string, target float64) (float64, bool) {
	holder = strings.ReplaceAll(holder, "("+unknown+")", unknown)
	holder = parenNumRe.ReplaceAllString(holder, "$1")
	for _, p := range shapePatterns {
		m := p.re.FindStringSubmatch(holder)
		if m == nil {
			continue
		}
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return p.invert(n, target)
	}
	return 0, false
}

// Brute-force search bounds. Integers first, then a 0.01-step pass.
// Both passes are fixed-size so a solve always terminates quickly.
const bruteForceRange = 10000

// solveBruteForce substitutes candidates into the unknown-bearing
// expression until one evaluates within epsilon of the target.
func solveBruteForce(holder string, target float64) (float64, bool) {
	for i := -bruteForceRange; i <= bruteForceRange; i++ {
		if v, ok := trySubstitute(holder, float64(i)); ok && mathtext.AlmostEqual(v, target) {
			return float64(i), true
		}
	}
	// Decimal pass only when no integer fits. Each candidate is rounded to
	// 2 decimals to keep the accumulating step from drifting.
	for i := -bruteForceRange * 100; i <= bruteForceRange*100; i++ {
		c := math.Round(float64(i)) / 100
		if c == math.Trunc(c) {
			continue // integers already tried
		}
		if v, ok := trySubstitute(holder, c); ok && mathtext.AlmostEqual(v, target) {
			return c, true
		}
	}
	return 0, false
}

func trySubstitute(holder string, candidate float64) (float64, bool) {
	sub := strings.ReplaceAll(holder, unknown, "("+mathtext.FormatNumber(candidate)+")")
	return mathtext.Evaluate(sub)
}
