package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var levelStyles = map[slog.Level]lipgloss.Style{
	slog.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
	slog.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
	slog.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24")),
	slog.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
}

// cliHandler is a minimal slog.Handler for operational CLI messages:
// one colorized line per record, level and message only, attrs
// appended space-separated. It makes no attempt at structured output;
// that's left to the translate-time/execute-time diagnostics, which
// render through package diagnostic instead.
type cliHandler struct {
	out io.Writer
	mu  *sync.Mutex
	lvl slog.Level
}

func newCLIHandler(out io.Writer, lvl slog.Level) *cliHandler {
	return &cliHandler{out: out, mu: &sync.Mutex{}, lvl: lvl}
}

func (h *cliHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl
}

func (h *cliHandler) Handle(_ context.Context, r slog.Record) error {
	style, ok := levelStyles[r.Level]
	if !ok {
		style = lipgloss.NewStyle()
	}

	parts := []string{style.Render(r.Level.String()), r.Message}
	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s=%v", a.Key, a.Value))
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.out, strings.Join(parts, " "))
	return err
}

func (h *cliHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *cliHandler) WithGroup(_ string) slog.Handler      { return h }
