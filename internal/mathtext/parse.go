package mathtext

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	numberRe   = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	fractionRe = regexp.MustCompile(`(-?\d+)\s*/\s*(-?\d+)`)
)

// ParseNumber extracts a single numeric value from a piece of markup or
// text. The input is normalized first so "\mathbf{42}" reads as 42.
// Returns false when no number is present or more markup than one number
// remains (e.g. an expression, which callers should Evaluate instead).
func ParseNumber(s string) (float64, bool) {
	clean := Normalize(s)
	m := numberRe.FindString(clean)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FirstNumber returns the first number appearing in raw text without
// normalization. Used on header text where markup never occurs.
func FirstNumber(s string) (float64, bool) {
	m := numberRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	return v, err == nil
}

// AllNumbers returns every number in the string, in order.
func AllNumbers(s string) []float64 {
	var out []float64
	for _, m := range numberRe.FindAllString(s, -1) {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// ParseFraction reads a fraction from markup: "3/4", "(3/4)" or
// "\frac{3}{4}". A bare integer parses as n/1. Returns false when nothing
// numeric is found.
func ParseFraction(s string) (num, den int64, ok bool) {
	clean := Normalize(s)
	if m := fractionRe.FindStringSubmatch(clean); m != nil {
		n, err1 := strconv.ParseInt(m[1], 10, 64)
		d, err2 := strconv.ParseInt(m[2], 10, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, 0, false
		}
		return n, d, true
	}
	if m := numberRe.FindString(clean); m != "" && !strings.Contains(m, ".") {
		n, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return 0, 0, false
		}
		return n, 1, true
	}
	return 0, 0, false
}

// FormatNumber renders a value the way answer fields expect: integers as
// plain digits, decimals with trailing zeros trimmed.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
