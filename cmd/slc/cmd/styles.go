package cmd

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette
var (
	colorPrimary = lipgloss.Color("#8B5CF6") // Violet
	colorSuccess = lipgloss.Color("#10B981") // Emerald
	colorError   = lipgloss.Color("#EF4444") // Red
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorMuted   = lipgloss.Color("#6B7280") // Gray
)

// styles renders output for one writer. Without color every style renders
// its text unchanged.
type styles struct {
	Header lipgloss.Style
	Pos    lipgloss.Style
	Kind   lipgloss.Style
	Error  lipgloss.Style
	Warn   lipgloss.Style
	OK     lipgloss.Style
	Muted  lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		Header: r.NewStyle().Foreground(colorPrimary).Bold(true),
		Pos:    r.NewStyle().Foreground(colorMuted),
		Kind:   r.NewStyle().Foreground(colorPrimary),
		Error:  r.NewStyle().Foreground(colorError).Bold(true),
		Warn:   r.NewStyle().Foreground(colorWarning),
		OK:     r.NewStyle().Foreground(colorSuccess).Bold(true),
		Muted:  r.NewStyle().Foreground(colorMuted).Italic(true),
	}
}
