package panel

import (
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bitdittowit/autoduo/internal/router"
	"github.com/bitdittowit/autoduo/internal/screen"
	"github.com/bitdittowit/autoduo/internal/ui/layout"
	"github.com/bitdittowit/autoduo/internal/ui/theme"
)

// LogScreen shows the full log buffer with manual scrolling. While
// following, new lines keep the view pinned to the bottom.
type LogScreen struct {
	state        *State
	scrollOffset int
	follow       bool
}

var _ screen.Screen = (*LogScreen)(nil)

// NewLogScreen creates a log view over the shared panel state.
func NewLogScreen(state *State) *LogScreen {
	return &LogScreen{state: state, follow: true}
}

func (s *LogScreen) Init() tea.Cmd {
	return nil
}

func (s *LogScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.scroll(-1)
		case "down", "j":
			s.scroll(1)
		case "pgup":
			s.scroll(-10)
		case "pgdown":
			s.scroll(10)
		case "g":
			s.scrollOffset = 0
			s.follow = false
		case "G":
			s.follow = true
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

// scroll moves the window and disengages following. Clamping against
// the bottom happens in View, where the height is known.
func (s *LogScreen) scroll(delta int) {
	s.follow = false
	s.scrollOffset += delta
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
}

func (s *LogScreen) View(width, height int) string {
	lines := s.state.Lines
	if len(lines) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("log is empty"))
	}

	maxOffset := len(lines) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.follow || s.scrollOffset > maxOffset {
		s.scrollOffset = maxOffset
	}

	var rendered []string
	for i := s.scrollOffset; i < len(lines) && len(rendered) < height; i++ {
		rendered = append(rendered, renderLogLine(lines[i], width))
	}
	return strings.Join(rendered, "\n")
}

func (s *LogScreen) Title() string {
	return "Solver Log"
}

// KeyHints returns the key binding hints for the footer.
func (s *LogScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "g/G", Description: "Top/Bottom"},
		{Key: "Esc", Description: "Back"},
	}
}

// renderLogLine formats one record for display, truncated to width.
func renderLogLine(l LogLine, width int) string {
	ts := theme.Hint.Render(l.Time.Format("15:04:05"))
	lvl := levelStyle(l.Level).Render(levelLabel(l.Level))

	line := ts + " " + lvl + " " + theme.Body.Render(l.Message)
	if l.Attrs != "" {
		line += " " + theme.Hint.Render(l.Attrs)
	}
	if width > 0 && lipgloss.Width(line) > width {
		line = lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	return line
}

func levelStyle(level slog.Level) lipgloss.Style {
	switch {
	case level >= slog.LevelError:
		return theme.LevelError
	case level >= slog.LevelWarn:
		return theme.LevelWarn
	case level >= slog.LevelInfo:
		return theme.LevelInfo
	default:
		return theme.LevelDebug
	}
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERR"
	case level >= slog.LevelWarn:
		return "WRN"
	case level >= slog.LevelInfo:
		return "INF"
	default:
		return "DBG"
	}
}
