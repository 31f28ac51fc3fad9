package browser

import (
	"fmt"
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// pageElement adapts a rod element to challenge.Element. Text and markup
// are captured at snapshot time so the solver core reads stable data even
// while the page keeps rendering; only the actions go back to the live
// DOM. In dry-run mode actions are logged and skipped.
type pageElement struct {
	el     *rod.Element
	text   string
	markup string
	logger *slog.Logger
	dryRun bool
}

func newPageElement(el *rod.Element, logger *slog.Logger, dryRun bool) *pageElement {
	text, err := el.Text()
	if err != nil {
		text = ""
	}
	markup, err := el.HTML()
	if err != nil {
		markup = ""
	}
	return &pageElement{el: el, text: text, markup: markup, logger: logger, dryRun: dryRun}
}

func (e *pageElement) Text() string   { return e.text }
func (e *pageElement) Markup() string { return e.markup }

func (e *pageElement) Attr(name string) string {
	v, err := e.el.Attribute(name)
	if err != nil || v == nil {
		return ""
	}
	return *v
}

func (e *pageElement) Click() error {
	if e.dryRun {
		e.logger.Info("dry-run: would click", "text", e.text)
		return nil
	}
	if err := e.el.ScrollIntoView(); err != nil {
		return fmt.Errorf("browser: scroll: %w", err)
	}
	if err := e.el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("browser: click: %w", err)
	}
	return nil
}

// Type sets the input's value directly and fires the input and change
// events the page's framework listens for. Keystroke simulation is not
// needed for these fields.
func (e *pageElement) Type(text string) error {
	if e.dryRun {
		e.logger.Info("dry-run: would type", "value", text)
		return nil
	}
	_, err := e.el.Eval(`(value) => {
		this.value = value;
		this.dispatchEvent(new Event('input', {bubbles: true}));
		this.dispatchEvent(new Event('change', {bubbles: true}));
	}`, text)
	if err != nil {
		return fmt.Errorf("browser: type: %w", err)
	}
	return nil
}

// frameWidget adapts an iframe to challenge.Widget. Markup and script
// source are captured at snapshot time; State, Exec and Post run against
// the live frame's execution context.
type frameWidget struct {
	frame   *rod.Page
	markup  string
	scripts string
	logger  *slog.Logger
	dryRun  bool
}

func newFrameWidget(el *rod.Element, logger *slog.Logger, dryRun bool) (*frameWidget, error) {
	frame, err := el.Frame()
	if err != nil {
		return nil, fmt.Errorf("browser: iframe context: %w", err)
	}
	w := &frameWidget{frame: frame, logger: logger, dryRun: dryRun}

	if res, err := frame.Eval(`() => document.documentElement.outerHTML`); err == nil {
		w.markup = res.Value.Str()
	}
	if res, err := frame.Eval(`() => Array.from(document.scripts).map(s => s.textContent).join('\n')`); err == nil {
		w.scripts = res.Value.Str()
	}
	return w, nil
}

func (w *frameWidget) Markup() string       { return w.markup }
func (w *frameWidget) ScriptSource() string { return w.scripts }

func (w *frameWidget) State() (string, error) {
	res, err := w.frame.Eval(`() => {
		var s = window.challenge || window.__duoState;
		return s ? JSON.stringify(s) : "";
	}`)
	if err != nil {
		return "", fmt.Errorf("browser: widget state: %w", err)
	}
	return res.Value.Str(), nil
}

func (w *frameWidget) Exec(script string) error {
	if w.dryRun {
		w.logger.Info("dry-run: would exec widget script", "script", script)
		return nil
	}
	// The script templates are self-invoking expressions; wrapping them
	// in a function makes them evaluable.
	if _, err := w.frame.Eval(`() => ` + script); err != nil {
		return fmt.Errorf("browser: widget exec: %w", err)
	}
	return nil
}

func (w *frameWidget) Post(message string) error {
	if w.dryRun {
		w.logger.Info("dry-run: would post widget message", "message", message)
		return nil
	}
	_, err := w.frame.Eval(`(msg) => window.postMessage(JSON.parse(msg), '*')`, message)
	if err != nil {
		return fmt.Errorf("browser: widget post: %w", err)
	}
	return nil
}
