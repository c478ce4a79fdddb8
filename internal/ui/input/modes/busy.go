package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"catalyst/internal/ui/input/types"
)

// BusyMode swallows everything but quit while a foreground action runs
type BusyMode struct {
	keys KeyMap
}

func NewBusyMode(keys KeyMap) *BusyMode {
	return &BusyMode{keys: keys}
}

func (m *BusyMode) Name() string {
	return "busy"
}

func (m *BusyMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if key.Matches(msg, m.keys.Quit) {
		return []types.Action{types.QuitAction{}}, true
	}
	return nil, true
}
