// Package mathtext converts vendor math markup (a KaTeX/LaTeX dialect) into
// plain ASCII arithmetic and evaluates it.
//
// The normalizer is lossy on purpose: it keeps only what the expression
// evaluator and the equation solver need. Markup it does not recognize is
// left in place for the evaluator's character filter to discard.
package mathtext

import "strings"

// Epsilon is the tolerance used for every floating-point equality check in
// the solver core.
const Epsilon = 0.0001

// wrapperCommands are formatting-only commands whose single brace argument
// replaces the whole command. Stripped repeatedly so nested wrappers unwrap.
var wrapperCommands = []string{
	`\mathbf`,
	`\textbf`,
	`\boxed`,
	`\text`,
	`\mathrm`,
}

// operatorReplacements maps named operator commands and unicode operators to
// their ASCII form. Applied after wrapper stripping so commands inside
// wrappers are seen.
var operatorReplacements = [][2]string{
	{`\times`, "*"},
	{`\cdot`, "*"},
	{`\centerdot`, "*"},
	{`\div`, "/"},
	{"×", "*"}, // ×
	{"⋅", "*"}, // ⋅
	{"÷", "/"}, // ÷
	{"−", "-"}, // unicode minus
}

// comparisonReplacements normalizes comparison commands to single runes the
// inequality solver matches on.
var comparisonReplacements = [][2]string{
	{`\geq`, "≥"},
	{`\ge`, "≥"},
	{`\leq`, "≤"},
	{`\le`, "≤"},
	{`\pm`, "±"},
	{`\gt`, ">"},
	{`\lt`, "<"},
}

// Normalize converts raw math markup into an ASCII arithmetic expression:
// formatting wrappers are unwrapped, bracket and operator commands are
// replaced, \frac becomes (a/b), and whitespace is removed. Input that is
// already plain arithmetic passes through unchanged.
func Normalize(raw string) string {
	s := raw

	for _, cmd := range wrapperCommands {
		s = stripWrapper(s, cmd)
	}

	// Directional bracket commands become plain brackets.
	s = strings.ReplaceAll(s, `\left`, "")
	s = strings.ReplaceAll(s, `\right`, "")

	s = resolveNegation(s)

	for _, r := range operatorReplacements {
		s = strings.ReplaceAll(s, r[0], r[1])
	}
	for _, r := range comparisonReplacements {
		s = strings.ReplaceAll(s, r[0], r[1])
	}

	s = ConvertFractions(s)

	// Whitespace last, so command names were still intact above.
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)

	return s
}

// stripWrapper removes every occurrence of cmd{arg}, replacing it with arg.
// The argument is found by brace depth counting, so nested braces survive.
// A wrapper with unbalanced braces is left unexpanded.
func stripWrapper(s, cmd string) string {
	for {
		idx := strings.Index(s, cmd+"{")
		if idx < 0 {
			return s
		}
		open := idx + len(cmd)
		closing := matchBrace(s, open)
		if closing < 0 {
			// Unbalanced: leave as-is rather than loop forever.
			return s
		}
		arg := s[open+1 : closing]
		s = s[:idx] + arg + s[closing+1:]
	}
}

// matchBrace returns the index of the '}' matching the '{' at open,
// or -1 if the braces are unbalanced.
func matchBrace(s string, open int) int {
	if open >= len(s) || s[open] != '{' {
		return -1
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// matchParen returns the index of the ')' matching the '(' at open,
// or -1 if unbalanced.
func matchParen(s string, open int) int {
	if open >= len(s) || s[open] != '(' {
		return -1
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// maxNegationPasses bounds the rewrite loop; malformed markup must not spin.
const maxNegationPasses = 16

// resolveNegation rewrites the unary negation command applied to a
// parenthesized sub-expression, \neg(...), as a leading minus sign. If no
// parenthesis follows, the command is stripped blindly.
func resolveNegation(s string) string {
	const cmd = `\neg`
	for pass := 0; pass < maxNegationPasses; pass++ {
		idx := strings.Index(s, cmd)
		if idx < 0 {
			return s
		}
		rest := idx + len(cmd)
		if rest < len(s) && s[rest] == '(' {
			closing := matchParen(s, rest)
			if closing >= 0 {
				s = s[:idx] + "-" + s[rest:]
				continue
			}
		}
		// No parenthesized argument found: strip the bare command.
		s = s[:idx] + s[rest:]
	}
	return s
}

// ConvertFractions rewrites every \frac{a}{b} as (a/b). Each pass resolves
// one occurrence's outer braces; nested fractions resolve on later passes
// once the outer braces are consumed.
func ConvertFractions(s string) string {
	const cmd = `\frac`
	for {
		idx := strings.Index(s, cmd+"{")
		if idx < 0 {
			return s
		}
		numOpen := idx + len(cmd)
		numClose := matchBrace(s, numOpen)
		if numClose < 0 {
			return s
		}
		denOpen := numClose + 1
		denClose := matchBrace(s, denOpen)
		if denClose < 0 {
			return s
		}
		num := s[numOpen+1 : numClose]
		den := s[denOpen+1 : denClose]
		s = s[:idx] + "(" + num + "/" + den + ")" + s[denClose+1:]
	}
}
