// Package fraction implements exact integer fraction arithmetic.
//
// All operations work on int64 numerator/denominator pairs and keep results
// in lowest terms with the sign on the numerator. Inputs are assumed small
// (exercise-sized numbers), so no overflow guarding beyond int64 range.
package fraction

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is returned when a denominator (or a divisor's
// numerator) is zero. Callers feeding untrusted markup must either guard
// for zero before calling or check for this error explicitly.
var ErrDivisionByZero = errors.New("fraction: division by zero")

// Fraction is a reduced fraction. Den is always > 0 after normalization;
// the sign lives on Num.
type Fraction struct {
	Num int64
	Den int64
}

// Value returns the fraction as a float64.
func (f Fraction) Value() float64 {
	return float64(f.Num) / float64(f.Den)
}

// String renders the fraction as "n/d", or as a plain integer when the
// denominator is 1. This is the format typed into answer fields.
func (f Fraction) String() string {
	if f.Den == 1 {
		return fmt.Sprintf("%d", f.Num)
	}
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// GCD returns the greatest common divisor of a and b.
// Absolute values are taken first, so negative inputs are fine.
func GCD(a, b int64) int64 {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of a and b. LCM(0, n) is 0.
func LCM(a, b int64) int64 {
	a, b = abs(a), abs(b)
	if a == 0 || b == 0 {
		return 0
	}
	return a / GCD(a, b) * b
}

// Simplify reduces num/den to lowest terms and normalizes the sign onto
// the numerator.
func Simplify(num, den int64) (Fraction, error) {
	if den == 0 {
		return Fraction{}, ErrDivisionByZero
	}
	// Normalize sign: negative sign on numerator only.
	if den < 0 {
		num = -num
		den = -den
	}
	if num == 0 {
		return Fraction{Num: 0, Den: 1}, nil
	}
	g := GCD(num, den)
	return Fraction{Num: num / g, Den: den / g}, nil
}

// Compare compares a/b against c/d by cross multiplication, avoiding
// floating-point division. Returns -1, 0 or 1. Denominators must be
// nonzero; the sign of a negative denominator is folded into the comparison.
func Compare(a, b, c, d int64) int {
	// Fold denominator signs so both cross products compare consistently.
	if b < 0 {
		a, b = -a, -b
	}
	if d < 0 {
		c, d = -c, -d
	}
	left := a * d
	right := c * b
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}

// Add returns a/b + c/d in lowest terms, scaling via the LCM of the
// denominators the way the operation is taught.
func Add(a, b, c, d int64) (Fraction, error) {
	if b == 0 || d == 0 {
		return Fraction{}, ErrDivisionByZero
	}
	l := LCM(b, d)
	return Simplify(a*(l/b)+c*(l/d), l)
}

// Sub returns a/b - c/d in lowest terms.
func Sub(a, b, c, d int64) (Fraction, error) {
	return Add(a, b, -c, d)
}

// Mul returns (a/b) * (c/d) in lowest terms.
func Mul(a, b, c, d int64) (Fraction, error) {
	if b == 0 || d == 0 {
		return Fraction{}, ErrDivisionByZero
	}
	return Simplify(a*c, b*d)
}

// Div returns (a/b) / (c/d) in lowest terms. Fails when the divisor's
// numerator is zero.
func Div(a, b, c, d int64) (Fraction, error) {
	if b == 0 || d == 0 || c == 0 {
		return Fraction{}, ErrDivisionByZero
	}
	return Simplify(a*d, b*c)
}

// abs returns the absolute value of n.
func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
