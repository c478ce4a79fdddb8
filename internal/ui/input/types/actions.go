package types

// Candidate navigation
type NavigateAction struct {
	Direction string // "up" or "down"
}

func (a NavigateAction) Type() string { return "navigate" }

// History navigation
type HistoryAction struct {
	Direction string // "prev" or "next"
}

func (a HistoryAction) Type() string { return "history" }

// ConfirmAction triggers the highlighted candidate
type ConfirmAction struct{}

func (a ConfirmAction) Type() string { return "confirm" }

// UpdateTextAction reports the query text after an edit
type UpdateTextAction struct {
	Text    string
	Changed bool
}

func (a UpdateTextAction) Type() string { return "update_text" }

// OpenPagerAction pages the output of the last foreground action
type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

// ShowAction brings a hidden launcher back
type ShowAction struct{}

func (a ShowAction) Type() string { return "show" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
