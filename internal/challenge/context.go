// Package challenge defines the exercise snapshot solvers consume and the
// result they produce.
//
// A Context is built fresh from the live page once per polling cycle, is
// never mutated, and is discarded after one solve attempt. Solvers see the
// page only through the Element and Widget interfaces, so the whole solver
// core runs identically against a live browser or a parsed HTML fixture.
package challenge

import "strings"

// Element is one interactive node of the exercise DOM.
type Element interface {
	// Text returns the element's visible text.
	Text() string

	// Markup returns the element's outer HTML.
	Markup() string

	// Attr returns an attribute value, empty when absent.
	Attr(name string) string

	// Click simulates a pointer click on the element.
	Click() error

	// Type sets the element's value and fires the input notification
	// event. Only meaningful for text inputs.
	Type(text string) error
}

// Widget is a sandboxed interactive sub-document (an iframe with its own
// script execution context).
type Widget interface {
	// Markup returns the widget's document markup (the srcdoc payload).
	Markup() string

	// ScriptSource returns the concatenated inline script source of the
	// widget document, for textual state extraction.
	ScriptSource() string

	// State reads the widget's exposed state object as a JSON string.
	// Returns an empty string when no state object is reachable.
	State() (string, error)

	// Exec runs a fixed script template inside the widget's execution
	// context. Templates are enumerated by the solvers; nothing
	// solver-computed is spliced in except numeric and array literals.
	Exec(script string) error

	// Post delivers a message to the widget window. Last-resort delivery
	// when direct state mutation is unavailable.
	Post(message string) error
}

// Context is the immutable snapshot of one exercise.
type Context struct {
	// Container is the exercise root element.
	Container Element

	// Header is the instruction element, nil when absent.
	Header Element

	// HeaderText is the lower-cased instruction text.
	HeaderText string

	// Equation is the element holding the primary formula markup, nil
	// when the exercise has none.
	Equation Element

	// EquationMarkup is the raw annotation/markup text of Equation,
	// captured at snapshot time.
	EquationMarkup string

	// TextInput is the free-text answer field, nil when absent.
	TextInput Element

	// Choices are the selectable answer elements in DOM order. The index
	// is the selection target.
	Choices []Element

	// Widgets are the sandboxed iframes found in the container, in DOM
	// order. The first one is the primary widget.
	Widgets []Widget
}

// PrimaryWidget returns the first widget, or nil.
func (c *Context) PrimaryWidget() Widget {
	if len(c.Widgets) == 0 {
		return nil
	}
	return c.Widgets[0]
}

// HeaderContains reports whether the lower-cased header text contains all
// of the given keywords.
func (c *Context) HeaderContains(keywords ...string) bool {
	for _, k := range keywords {
		if !strings.Contains(c.HeaderText, k) {
			return false
		}
	}
	return true
}

// HeaderContainsAny reports whether the header text contains at least one
// of the keywords.
func (c *Context) HeaderContainsAny(keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(c.HeaderText, k) {
			return true
		}
	}
	return false
}

// AnyWidgetMarkup reports whether any widget's markup contains the given
// signature string.
func (c *Context) AnyWidgetMarkup(signature string) bool {
	for _, w := range c.Widgets {
		if strings.Contains(w.Markup(), signature) || strings.Contains(w.ScriptSource(), signature) {
			return true
		}
	}
	return false
}

// FindWidget returns the first widget whose markup or script source
// contains the signature, or nil.
func (c *Context) FindWidget(signature string) Widget {
	for _, w := range c.Widgets {
		if strings.Contains(w.Markup(), signature) || strings.Contains(w.ScriptSource(), signature) {
			return w
		}
	}
	return nil
}
