package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bitdittowit/autoduo/internal/browser"
	"github.com/bitdittowit/autoduo/internal/panel"
	"github.com/bitdittowit/autoduo/internal/router"
	"github.com/bitdittowit/autoduo/internal/screen"
	"github.com/bitdittowit/autoduo/internal/ui/layout"
)

// Options wires the solver loop into the TUI.
type Options struct {
	Runner *browser.Runner
	Status <-chan browser.Status
	Logs   <-chan panel.LogLine
	Logger *slog.Logger

	// Limit seeds the exercise limit shown on the panel.
	Limit int

	// AutoStart launches the loop immediately instead of waiting for
	// the start key.
	AutoStart bool
}

// runControl owns the lifecycle of the background runner goroutine.
// It is only touched from the bubbletea update loop.
type runControl struct {
	runner *browser.Runner
	parent context.Context
	logger *slog.Logger
	cancel context.CancelFunc
}

func (c *runControl) Start() {
	if c.runner == nil {
		return
	}
	c.Stop()
	ctx, cancel := context.WithCancel(c.parent)
	c.cancel = cancel
	go func() {
		if err := c.runner.Run(ctx); err != nil {
			c.logger.Error("run aborted", "error", err)
		}
	}()
}

func (c *runControl) Stop() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	state  *panel.State
	ctl    *runControl
	opts   Options
	width  int
	height int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	state := &panel.State{Limit: opts.Limit}
	ctl := &runControl{runner: opts.Runner, parent: ctx, logger: opts.Logger}

	statusScreen := panel.NewStatusScreen(state,
		func() {
			if state.Status.Running {
				ctl.Stop()
			} else {
				ctl.Start()
			}
		},
		func(n int) {
			if opts.Runner != nil {
				opts.Runner.SetMaxExercises(n)
			}
		},
	)

	return AppModel{
		router: router.New(statusScreen),
		state:  state,
		ctl:    ctl,
		opts:   opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(waitStatus(m.opts.Status), waitLog(m.opts.Logs))
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case panel.StatusMsg:
		m.state.Status = browser.Status(msg)
		return m, waitStatus(m.opts.Status)

	case panel.LogMsg:
		m.state.Append(panel.LogLine(msg))
		return m, waitLog(m.opts.Logs)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.ctl.Stop()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.state.Status.Solved, m.state.Status.Failed, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(provider.KeyHints(), footerHints...)
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// waitStatus blocks until the next runner status arrives. The command
// re-arms itself from Update.
func waitStatus(ch <-chan browser.Status) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return panel.StatusMsg(s)
	}
}

func waitLog(ch <-chan panel.LogLine) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		l, ok := <-ch
		if !ok {
			return nil
		}
		return panel.LogMsg(l)
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	m := newAppModel(ctx, opts)
	if opts.AutoStart {
		m.ctl.Start()
	}

	p := tea.NewProgram(m)
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	m.ctl.Stop()
	return nil
}
