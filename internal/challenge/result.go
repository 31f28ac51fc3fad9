package challenge

import "fmt"

// Result is the outcome of one solve attempt. Type discriminates the
// exercise kind; the payload fields are populated per kind.
type Result struct {
	// Type names the solver that produced the result.
	Type string

	// Success reports whether an answer was derived and acted on.
	Success bool

	// Err is the human-readable failure reason. Always non-empty when
	// Success is false.
	Err string

	// Answer is the typed answer, when the modality was text entry.
	Answer string

	// Num/Den carry a fraction answer when the exercise asked for one.
	Num, Den int64

	// Selected are the clicked choice indexes, when the modality was
	// choice selection. Order is click order.
	Selected []int

	// Detail is optional extra context for the log line.
	Detail string
}

// Success constructs a successful result.
func Success(typ string) Result {
	return Result{Type: typ, Success: true}
}

// Failure constructs a failed result with a reason.
func Failure(typ, reason string) Result {
	return Result{Type: typ, Success: false, Err: reason}
}

// Failuref constructs a failed result with a formatted reason.
func Failuref(typ, format string, args ...any) Result {
	return Failure(typ, fmt.Sprintf(format, args...))
}

// WithAnswer returns a copy carrying a typed answer.
func (r Result) WithAnswer(answer string) Result {
	r.Answer = answer
	return r
}

// WithFraction returns a copy carrying a fraction payload.
func (r Result) WithFraction(num, den int64) Result {
	r.Num, r.Den = num, den
	return r
}

// WithSelected returns a copy carrying clicked choice indexes.
func (r Result) WithSelected(indexes ...int) Result {
	r.Selected = indexes
	return r
}

// WithDetail returns a copy carrying extra log context.
func (r Result) WithDetail(format string, args ...any) Result {
	r.Detail = fmt.Sprintf(format, args...)
	return r
}

// String renders the result for log output.
func (r Result) String() string {
	if !r.Success {
		return fmt.Sprintf("%s: failed: %s", r.Type, r.Err)
	}
	switch {
	case r.Answer != "":
		return fmt.Sprintf("%s: answer %q", r.Type, r.Answer)
	case len(r.Selected) > 0:
		return fmt.Sprintf("%s: selected %v", r.Type, r.Selected)
	case r.Den != 0:
		return fmt.Sprintf("%s: %d/%d", r.Type, r.Num, r.Den)
	default:
		return fmt.Sprintf("%s: ok", r.Type)
	}
}
