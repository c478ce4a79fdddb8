package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"catalyst/internal/ui/input/types"
)

// QueryMode maps keys to launcher actions. Unconsumed keys edit the query.
type QueryMode struct {
	keys KeyMap
}

func NewQueryMode(keys KeyMap) *QueryMode {
	return &QueryMode{keys: keys}
}

func (m *QueryMode) Name() string {
	return "query"
}

func (m *QueryMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true
	case key.Matches(msg, m.keys.Previous):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case key.Matches(msg, m.keys.Next):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case key.Matches(msg, m.keys.HistoryPrevious):
		return []types.Action{types.HistoryAction{Direction: "prev"}}, true
	case key.Matches(msg, m.keys.HistoryNext):
		return []types.Action{types.HistoryAction{Direction: "next"}}, true
	case key.Matches(msg, m.keys.Confirm):
		if ctx.CandidateCount() == 0 {
			return nil, true
		}
		return []types.Action{types.ConfirmAction{}}, true
	case key.Matches(msg, m.keys.Pager):
		return []types.Action{types.OpenPagerAction{}}, true
	case key.Matches(msg, m.keys.Ignored):
		return nil, true
	}
	return nil, false
}
