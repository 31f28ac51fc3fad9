package panel

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bitdittowit/autoduo/internal/router"
	"github.com/bitdittowit/autoduo/internal/screen"
	"github.com/bitdittowit/autoduo/internal/ui/components"
	"github.com/bitdittowit/autoduo/internal/ui/layout"
	"github.com/bitdittowit/autoduo/internal/ui/theme"
)

// recentLines is how many log lines the status screen previews.
const recentLines = 6

// StatusScreen is the main control panel: run state, counters, the
// last result and a short log tail.
type StatusScreen struct {
	state    *State
	limit    components.TextInput
	editing  bool
	onToggle func()
	onLimit  func(int)
}

var _ screen.Screen = (*StatusScreen)(nil)

// NewStatusScreen creates the panel root screen. onToggle starts or
// stops the loop; onLimit applies a new exercise limit.
func NewStatusScreen(state *State, onToggle func(), onLimit func(int)) *StatusScreen {
	return &StatusScreen{
		state:    state,
		onToggle: onToggle,
		onLimit:  onLimit,
	}
}

func (s *StatusScreen) Init() tea.Cmd {
	return nil
}

func (s *StatusScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.editing {
		return s.updateEditing(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			if s.onToggle != nil {
				s.onToggle()
			}
		case "n":
			s.limit = components.NewTextInput("exercises", true, 4)
			s.editing = true
			return s, s.limit.Init()
		case "l":
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: NewLogScreen(s.state)}
			}
		}
	}
	return s, nil
}

func (s *StatusScreen) updateEditing(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		if n, err := s.limit.NumericValue(); err == nil {
			s.state.Limit = n
			if s.onLimit != nil {
				s.onLimit(n)
			}
		}
		s.editing = false
		return s, nil
	}

	var cmd tea.Cmd
	s.limit, cmd = s.limit.Update(msg)
	return s, cmd
}

func (s *StatusScreen) View(width, height int) string {
	st := s.state.Status

	var stateLine string
	if st.Running {
		stateLine = theme.Running.Render("● RUNNING")
	} else {
		stateLine = theme.Stopped.Render("○ STOPPED")
	}

	counters := strings.Join([]string{
		theme.Body.Render(fmt.Sprintf("cycles  %d", st.Cycles)),
		theme.Solved.Render(fmt.Sprintf("solved  %d", st.Solved)),
		theme.Failed.Render(fmt.Sprintf("failed  %d", st.Failed)),
		theme.Body.Render(fmt.Sprintf("skipped %d", st.Skipped)),
	}, "\n")

	last := st.Last
	if last == "" {
		last = "nothing yet"
	}

	sections := []string{
		stateLine,
		"",
		counters,
		"",
		theme.Hint.Render("last: ") + theme.Body.Render(last),
	}

	if s.state.Limit > 0 {
		done := st.Solved
		pct := float64(done) / float64(s.state.Limit)
		bar := components.NewProgressBar(
			fmt.Sprintf("limit %d/%d", done, s.state.Limit), pct, true, 40)
		sections = append(sections, "", bar.View())
	}

	if s.editing {
		sections = append(sections, "",
			theme.Hint.Render("exercise limit: ")+s.limit.View())
	}

	card := theme.Card.Width(50).Render(strings.Join(sections, "\n"))

	tail := s.renderTail(width)
	content := lipgloss.JoinVertical(lipgloss.Left, card, "", tail)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *StatusScreen) renderTail(width int) string {
	lines := s.state.Lines
	if len(lines) > recentLines {
		lines = lines[len(lines)-recentLines:]
	}
	if len(lines) == 0 {
		return theme.Hint.Render("no activity yet")
	}

	rendered := make([]string, 0, len(lines))
	for _, l := range lines {
		rendered = append(rendered, renderLogLine(l, width))
	}
	return strings.Join(rendered, "\n")
}

func (s *StatusScreen) Title() string {
	return "Control Panel"
}

// KeyHints returns the key binding hints for the footer.
func (s *StatusScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
		}
	}
	return []layout.KeyHint{
		{Key: "s", Description: "Start/Stop"},
		{Key: "n", Description: "Limit"},
		{Key: "l", Description: "Log"},
		{Key: "q", Description: "Quit"},
	}
}
