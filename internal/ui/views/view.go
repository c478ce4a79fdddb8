package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"catalyst/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width      int
	QueryLine  string
	Candidates []domain.Candidate
	Selected   int
	Querying   bool
	Spinner    string
	Busy       bool
	Error      string
	Hidden     bool
	HelpModel  help.Model
	Keys       help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.Hidden {
		return ""
	}

	width := state.Width
	if width <= 0 {
		width = 80
	}

	lines := make([]string, 0, ContentHeight(len(state.Candidates), state.Error != ""))
	lines = append(lines, r.renderQueryLine(state, width))
	for i, c := range state.Candidates {
		lines = append(lines, r.renderCandidate(c, i == state.Selected, width))
	}
	if state.Error != "" {
		lines = append(lines, r.styles.Error.MaxWidth(width).Render("✗ "+state.Error))
	}
	lines = append(lines, r.renderHelp(state, width))

	return r.styles.Main.Render(strings.Join(lines, "\n"))
}

func (r *Renderer) renderQueryLine(state ViewState, width int) string {
	var right string
	switch {
	case state.Busy:
		right = r.styles.Spinner.Render(state.Spinner + " running")
	case state.Querying:
		right = r.styles.Spinner.Render(state.Spinner)
	}
	if right == "" {
		return lipgloss.NewStyle().MaxWidth(width).Render(state.QueryLine)
	}

	left := lipgloss.NewStyle().MaxWidth(width - lipgloss.Width(right) - 1).Render(state.QueryLine)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (r *Renderer) renderCandidate(c domain.Candidate, selected bool, width int) string {
	marker := "  "
	value := r.styles.Candidate.Render(c.Value)
	if selected {
		marker = r.styles.Highlight.Render("▸ ")
		value = r.styles.Highlight.Render(c.Value)
	}
	source := r.styles.Source.Render(c.SourceName)

	left := marker + value
	gap := width - lipgloss.Width(left) - lipgloss.Width(source)
	var line string
	if gap < 1 {
		line = lipgloss.NewStyle().MaxWidth(width).Render(left)
	} else {
		line = left + strings.Repeat(" ", gap) + source
	}

	if selected {
		return r.styles.HighlightBg.Render(line)
	}
	return line
}

func (r *Renderer) renderHelp(state ViewState, width int) string {
	if state.Keys == nil {
		return ""
	}
	h := state.HelpModel
	h.Width = width
	return r.styles.Help.Render(h.View(state.Keys))
}
