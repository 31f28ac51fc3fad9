package challenge

import "sync"

// StaticElement is an Element backed by captured strings. Actions are
// recorded instead of performed. Used by the offline solve command and by
// tests.
type StaticElement struct {
	TextContent string
	OuterHTML   string
	Attrs       map[string]string

	mu     sync.Mutex
	clicks int
	typed  []string
}

func (e *StaticElement) Text() string   { return e.TextContent }
func (e *StaticElement) Markup() string { return e.OuterHTML }

func (e *StaticElement) Attr(name string) string {
	return e.Attrs[name]
}

func (e *StaticElement) Click() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clicks++
	return nil
}

func (e *StaticElement) Type(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.typed = append(e.typed, text)
	return nil
}

// Clicks returns how many clicks were recorded.
func (e *StaticElement) Clicks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clicks
}

// Typed returns the recorded typed values.
func (e *StaticElement) Typed() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.typed...)
}

// StaticWidget is a Widget backed by captured markup and script source.
type StaticWidget struct {
	Doc     string
	Scripts string
	StateJS string // JSON the widget would expose as its state object

	mu    sync.Mutex
	execs []string
	posts []string
}

func (w *StaticWidget) Markup() string         { return w.Doc }
func (w *StaticWidget) ScriptSource() string   { return w.Scripts }
func (w *StaticWidget) State() (string, error) { return w.StateJS, nil }

func (w *StaticWidget) Exec(script string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.execs = append(w.execs, script)
	return nil
}

func (w *StaticWidget) Post(message string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.posts = append(w.posts, message)
	return nil
}

// Execs returns the recorded scripts.
func (w *StaticWidget) Execs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.execs...)
}

// Posts returns the recorded messages.
func (w *StaticWidget) Posts() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.posts...)
}
