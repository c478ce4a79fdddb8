package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"catalyst/internal/ui/input/types"
)

// HiddenMode shows the launcher again on any key
type HiddenMode struct {
	keys KeyMap
}

func NewHiddenMode(keys KeyMap) *HiddenMode {
	return &HiddenMode{keys: keys}
}

func (m *HiddenMode) Name() string {
	return "hidden"
}

func (m *HiddenMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if key.Matches(msg, m.keys.Quit) {
		return []types.Action{types.QuitAction{}}, true
	}
	return []types.Action{types.ShowAction{}}, true
}
