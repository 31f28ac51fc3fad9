package panel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// LogLine is one formatted log record as shown in the panel.
type LogLine struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   string
}

// Handler is a slog.Handler that forwards records to the TUI over a
// channel. Records are dropped rather than blocking the solver loop
// when the channel is full.
type Handler struct {
	ch    chan<- LogLine
	level slog.Level
	attrs []slog.Attr
}

var _ slog.Handler = (*Handler)(nil)

// NewHandler creates a Handler emitting records at or above level.
func NewHandler(ch chan<- LogLine, level slog.Level) *Handler {
	return &Handler{ch: ch, level: level}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *Handler) Handle(_ context.Context, rec slog.Record) error {
	var parts []string
	for _, a := range h.attrs {
		parts = append(parts, formatAttr(a))
	}
	rec.Attrs(func(a slog.Attr) bool {
		parts = append(parts, formatAttr(a))
		return true
	})

	line := LogLine{
		Time:    rec.Time,
		Level:   rec.Level,
		Message: rec.Message,
		Attrs:   strings.Join(parts, " "),
	}

	select {
	case h.ch <- line:
	default:
	}
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &Handler{ch: h.ch, level: h.level, attrs: merged}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	// Groups are flattened: the panel shows attrs as plain key=value.
	return h
}

func formatAttr(a slog.Attr) string {
	return fmt.Sprintf("%s=%v", a.Key, a.Value.Any())
}
