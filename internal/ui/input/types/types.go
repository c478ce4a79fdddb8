package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	// ModeQuery edits the query and drives the candidate list
	ModeQuery Mode = iota
	// ModeBusy ignores input while a foreground action runs
	ModeBusy
	// ModeHidden waits for any key to show the launcher again
	ModeHidden
)

func (m Mode) String() string {
	switch m {
	case ModeQuery:
		return "query"
	case ModeBusy:
		return "busy"
	case ModeHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	CandidateCount() int
	SelectedIndex() int
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Name returns the mode name for display
	Name() string
}
