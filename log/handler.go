package log

import (
	"context"
	"fmt"
	"log/slog"
)

// TerminalHandler is a slog.Handler that prints colorized, one-line
// records to stdout, grouped by the "component" attribute.
type TerminalHandler struct {
	lvl       slog.Level
	attrs     []slog.Attr
	component string
}

// NewTerminalHandler creates a TerminalHandler at the given minimum
// level.
func NewTerminalHandler(lvl slog.Level) *TerminalHandler {
	return &TerminalHandler{
		lvl:       lvl,
		attrs:     []slog.Attr{},
		component: "[]",
	}
}

func (h *TerminalHandler) Enabled(_ context.Context, lvl slog.Level) bool {
	return lvl >= h.lvl
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	color := ""
	switch r.Level {
	case slog.LevelInfo:
		color = "\x1b[32m"
	case slog.LevelWarn:
		color = "\x1b[33m"
	case slog.LevelError:
		color = "\x1b[31m"
	}

	ts := ""
	if !r.Time.IsZero() {
		ts = fmt.Sprintf("[%s]", r.Time.Format("Jan 02|15:04:05.000"))
	}

	attrs := ""
	for _, a := range h.attrs {
		attrs += fmt.Sprintf("[%s=%s] ", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs += fmt.Sprintf("[%s=%s] ", a.Key, a.Value)
		return true
	})

	_, err := fmt.Println(color, ts, r.Level.String(), h.component, r.Message, attrs)
	return err
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	component := h.component
	for _, attr := range attrs {
		if attr.Key == "component" {
			component = fmt.Sprintf("[%s]", attr.Value)
		}
	}

	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)

	return &TerminalHandler{
		lvl:       h.lvl,
		attrs:     merged,
		component: component,
	}
}

func (h *TerminalHandler) WithGroup(_ string) slog.Handler {
	panic("not implemented")
}
