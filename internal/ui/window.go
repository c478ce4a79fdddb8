package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// programWindow hides the launcher by messaging the running program, so the
// hide is applied on the event loop in the order the executor requested it
type programWindow struct {
	program *tea.Program
}

func (w programWindow) Hide() {
	if w.program != nil {
		w.program.Send(windowHiddenMsg{})
	}
}
