package modes

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the launcher's key bindings
type KeyMap struct {
	Previous        key.Binding
	Next            key.Binding
	HistoryPrevious key.Binding
	HistoryNext     key.Binding
	Confirm         key.Binding
	Pager           key.Binding
	Quit            key.Binding
	Ignored         key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Previous: key.NewBinding(
			key.WithKeys("up", "ctrl+k"),
			key.WithHelp("↑/ctrl+k", "prev"),
		),
		Next: key.NewBinding(
			key.WithKeys("down", "ctrl+j"),
			key.WithHelp("↓/ctrl+j", "next"),
		),
		HistoryPrevious: key.NewBinding(
			key.WithKeys("ctrl+p", "alt+up"),
			key.WithHelp("ctrl+p", "older query"),
		),
		HistoryNext: key.NewBinding(
			key.WithKeys("ctrl+n", "alt+down"),
			key.WithHelp("ctrl+n", "newer query"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		Pager: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "last output"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Ignored: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "esc"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Previous, k.Next, k.HistoryPrevious, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Confirm, k.Previous, k.Next},
		{k.HistoryPrevious, k.HistoryNext, k.Pager, k.Quit},
	}
}
