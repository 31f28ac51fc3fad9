package panel

import (
	"github.com/bitdittowit/autoduo/internal/browser"
)

// maxLogLines bounds the in-memory log buffer.
const maxLogLines = 1000

// StatusMsg carries a fresh runner status into the TUI.
type StatusMsg browser.Status

// LogMsg carries one log record into the TUI.
type LogMsg LogLine

// State is the panel data shared by the status and log screens. It is
// mutated only from the bubbletea update loop.
type State struct {
	Status browser.Status
	Lines  []LogLine
	Limit  int
}

// Append adds a log line, evicting the oldest once the buffer is full.
func (s *State) Append(line LogLine) {
	s.Lines = append(s.Lines, line)
	if len(s.Lines) > maxLogLines {
		s.Lines = s.Lines[len(s.Lines)-maxLogLines:]
	}
}
