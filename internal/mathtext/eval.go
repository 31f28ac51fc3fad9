package mathtext

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Power notation arrives in several surface forms depending on how the
// vendor rendered it: {a}^{b}, a^{b}, {a}^b, and plain a^b. Operands are
// reduced to their digit/decimal characters, discarding residual markup
// inside the braces.
var (
	powBothBraced = regexp.MustCompile(`\{([^{}]*)\}\^\{([^{}]*)\}`)
	powExpBraced  = regexp.MustCompile(`([0-9.]+)\^\{([^{}]*)\}`)
	powBaseBraced = regexp.MustCompile(`\{([^{}]*)\}\^([0-9.]+)`)
	powPlain      = regexp.MustCompile(`([0-9.]+)\^([0-9.]+)`)
	nonArithmetic = regexp.MustCompile(`[^0-9+\-*/().]`)
	validExpr     = regexp.MustCompile(`^[0-9+\-*/().]+$`)
	digitsAndDots = regexp.MustCompile(`[^0-9.]`)
)

// Evaluate normalizes expr and evaluates it as plain arithmetic
// (+, -, *, /, ** and parentheses). Returns false for anything that is not
// pure arithmetic: empty input, leftover symbols, malformed syntax, or a
// non-finite result. It is a deliberately small calculator, never a general
// interpreter.
func Evaluate(expr string) (float64, bool) {
	s := Normalize(expr)
	s = rewritePowers(s)
	s = strings.ReplaceAll(s, "{", "")
	s = strings.ReplaceAll(s, "}", "")
	// Drop everything that is not arithmetic. This also removes stray
	// unary plus markup and LaTeX spacing commands left by Normalize.
	// The power marker is protected because '*' survives the filter.
	s = nonArithmetic.ReplaceAllString(s, "")

	if s == "" || s == "()" || !validExpr.MatchString(s) {
		return 0, false
	}

	p := parser{input: s}
	v, err := p.parseExpr()
	if err != nil || !p.atEnd() {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// rewritePowers converts every ^ surface form to the ** operator with
// digit-only operands.
func rewritePowers(s string) string {
	digits := func(op string) string { return digitsAndDots.ReplaceAllString(op, "") }
	rewrite := func(re *regexp.Regexp) {
		s = re.ReplaceAllStringFunc(s, func(m string) string {
			parts := re.FindStringSubmatch(m)
			return digits(parts[1]) + "**" + digits(parts[2])
		})
	}
	rewrite(powBothBraced)
	rewrite(powExpBraced)
	rewrite(powBaseBraced)
	rewrite(powPlain)
	return s
}

// parser is a recursive-descent evaluator over the filtered expression.
// Grammar, loosest binding first:
//
//	expr   = term   (('+' | '-') term)*
//	term   = power  (('*' | '/') power)*
//	power  = unary  ('**' power)?          // right-associative
//	unary  = '-' unary | atom
//	atom   = number | '(' expr ')'
type parser struct {
	input string
	pos   int
}

type parseError struct{ msg string }

func (e *parseError) Error() string { return e.msg }

func errAt(msg string) error { return &parseError{msg: msg} }

func (p *parser) atEnd() bool { return p.pos >= len(p.input) }

func (p *parser) peek() byte {
	if p.atEnd() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v += rhs
		case '-':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	v, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	for {
		// '**' binds tighter and is consumed inside parsePower.
		if p.peek() == '*' && !p.lookingAtPow() {
			p.pos++
			rhs, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			v *= rhs
		} else if p.peek() == '/' {
			p.pos++
			rhs, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			v /= rhs
		} else {
			return v, nil
		}
	}
}

func (p *parser) lookingAtPow() bool {
	return p.pos+1 < len(p.input) && p.input[p.pos] == '*' && p.input[p.pos+1] == '*'
}

func (p *parser) parsePower() (float64, error) {
	v, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	if p.lookingAtPow() {
		p.pos += 2
		exp, err := p.parsePower()
		if err != nil {
			return 0, err
		}
		return math.Pow(v, exp), nil
	}
	return v, nil
}

func (p *parser) parseUnary() (float64, error) {
	if p.peek() == '-' {
		p.pos++
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (float64, error) {
	if p.peek() == '(' {
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, errAt("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	}

	start := p.pos
	for !p.atEnd() {
		c := p.input[p.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			p.pos++
		} else {
			break
		}
	}
	if p.pos == start {
		return 0, errAt("expected number")
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, errAt("bad number")
	}
	return v, nil
}

// AlmostEqual reports whether a and b are within Epsilon of each other.
func AlmostEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}
