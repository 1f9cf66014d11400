// Package diagnostic renders toolchain errors to the terminal: the
// offending source context highlighted, the error kind as a compact
// label, and the message beneath it.
package diagnostic

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tinyasm/internal/asmerr"
)

var (
	kindStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#EF4444")).
			Padding(0, 1)

	contextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Italic(true)

	lineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#111827")).
			Background(lipgloss.Color("#FBBF24")).
			Padding(0, 1)
)

// Print writes a human-readable, colorized rendering of err to w. If
// err isn't a *asmerr.Error it falls back to a plain one-line message.
func Print(w io.Writer, err error) {
	var target *asmerr.Error
	if !errors.As(err, &target) {
		fmt.Fprintf(w, "error: %s\n", err.Error())
		return
	}

	var b strings.Builder
	b.WriteString(kindStyle.Render(string(target.Kind)))
	b.WriteString(" ")
	b.WriteString(target.Message)

	if target.Line > 0 {
		b.WriteString(" ")
		b.WriteString(lineStyle.Render(fmt.Sprintf("(line %d)", target.Line)))
	}
	if target.Context != "" {
		b.WriteString("\n  ")
		b.WriteString(contextStyle.Render(target.Context))
	}

	fmt.Fprintln(w, b.String())
}

// PrintWarning writes a non-fatal diagnostic (e.g. a redefined label)
// in a distinct, less alarming style from a hard error.
func PrintWarning(w io.Writer, message string) {
	fmt.Fprintln(w, warningStyle.Render("warning")+" "+message)
}
