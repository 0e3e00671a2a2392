package cmd

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	errLabel lipgloss.Style
	errText  lipgloss.Style
	hint     lipgloss.Style
}

// newStyles builds styles for w; colors are dropped when w is not a terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		errLabel: r.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		errText: r.NewStyle().
			Foreground(lipgloss.Color("255")),
		hint: r.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}
