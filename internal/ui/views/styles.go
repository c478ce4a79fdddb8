package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Source      lipgloss.Style
	Candidate   lipgloss.Style
	Highlight   lipgloss.Style
	HighlightBg lipgloss.Style
	Spinner     lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Source:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Candidate:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HighlightBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Spinner:     lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:        lipgloss.NewStyle().Faint(true),
		// no padding: candidate rows map 1:1 to screen rows for mouse hits
		Main: lipgloss.NewStyle(),
	}
}
