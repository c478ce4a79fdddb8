package input

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"catalyst/internal/ui/input/modes"
	"catalyst/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	keys        modes.KeyMap
	textInput   *textinput.Model // the query line
}

func New() *Handler {
	keys := modes.DefaultKeyMap()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type to search"
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	h := &Handler{
		currentMode: types.ModeQuery,
		keys:        keys,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeQuery] = modes.NewQueryMode(keys)
	h.modes[types.ModeBusy] = modes.NewBusyMode(keys)
	h.modes[types.ModeHidden] = modes.NewHiddenMode(keys)

	return h
}

// HandleKey classifies msg in the current mode. Keys the query mode does
// not consume go to the text input and yield an UpdateTextAction.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if consumed || h.currentMode != types.ModeQuery {
		return actions, nil
	}

	before := h.textInput.Value()
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	after := h.textInput.Value()

	actions = append(actions, types.UpdateTextAction{Text: after, Changed: after != before})
	return actions, cmd
}

// ChangeMode switches the input mode. The query line keeps focus only in
// query mode.
func (h *Handler) ChangeMode(mode types.Mode) {
	h.currentMode = mode
	if mode == types.ModeQuery {
		h.textInput.Focus()
	} else {
		h.textInput.Blur()
	}
}

// GetMode returns the current input mode
func (h *Handler) GetMode() types.Mode {
	if h == nil {
		return types.ModeQuery
	}
	return h.currentMode
}

// Query returns the query text
func (h *Handler) Query() string {
	return h.textInput.Value()
}

// SetQuery replaces the query text and moves the cursor to its end
func (h *Handler) SetQuery(q string) {
	h.textInput.SetValue(q)
	h.textInput.CursorEnd()
}

// Reset clears the query and returns to query mode
func (h *Handler) Reset() {
	h.textInput.Reset()
	h.ChangeMode(types.ModeQuery)
}

// SetWidth sets the visible width of the query line
func (h *Handler) SetWidth(w int) {
	h.textInput.Width = w
}

// View renders the query line
func (h *Handler) View() string {
	return h.textInput.View()
}

// Keys returns the active key bindings
func (h *Handler) Keys() modes.KeyMap {
	return h.keys
}
