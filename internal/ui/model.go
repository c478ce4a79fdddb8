package ui

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"catalyst/internal/config"
	"catalyst/internal/domain"
	"catalyst/internal/eventbus"
	"catalyst/internal/executor"
	"catalyst/internal/finder"
	"catalyst/internal/registry"
	"catalyst/internal/ui/input"
	"catalyst/internal/ui/input/types"
	"catalyst/internal/ui/services/history"
	"catalyst/internal/ui/services/reporter"
	"catalyst/internal/ui/services/selection"
	"catalyst/internal/ui/views"
)

// pointerDown remembers where a candidate row was pressed
type pointerDown struct {
	X, Y int
}

// Snapshot is the presentation state after a mutation
type Snapshot struct {
	Query      string
	Candidates []domain.Candidate
	Selected   int
	Error      string // empty when no error is visible
	State      domain.QueryState
}

// Model is the query controller. It is the single writer of the candidate
// list, selection, history and visible error; all of them change only on
// the Bubble Tea event loop.
type Model struct {
	bus      eventbus.EventBus
	config   *config.Config
	finder   *finder.Finder
	executor *executor.Executor
	window   executor.Window
	program  *tea.Program
	pager    *PagerOps

	inputHandler *input.Handler
	selection    *selection.Service
	history      *history.Service
	reporter     *reporter.Service
	renderer     *views.Renderer
	help         help.Model
	spinner      spinner.Model
	spinning     bool

	// find sequencing: results older than shownSeq are dropped
	seq      uint64
	shownSeq uint64
	querying bool

	busy     bool // a triggered action has not reported back yet
	hidden   bool
	quitting bool

	pointers map[int]pointerDown
	actions  sync.WaitGroup

	width       int
	height      int
	inPagerMode bool
}

// NewModel creates the controller for cfg
func NewModel(bus eventbus.EventBus, cfg *config.Config, f *finder.Finder, exec *executor.Executor) *Model {
	m := &Model{
		bus:          bus,
		config:       cfg,
		finder:       f,
		executor:     exec,
		inputHandler: input.New(),
		selection:    selection.NewService(),
		history:      history.NewService(cfg.HistorySize),
		reporter:     reporter.NewService(bus),
		renderer:     views.NewRenderer(),
		help:         help.New(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		pointers:     make(map[int]pointerDown),
	}
	m.window = programWindow{}
	m.reporter.OnReport(func() {
		m.busy = false
		m.syncMode()
	})
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.window = programWindow{program: p}
	m.pager = NewPagerOps(p)
}

// SetWindow replaces the window the executor hides
func (m *Model) SetWindow(w executor.Window) {
	m.window = w
}

// Wait blocks until every triggered action has returned
func (m *Model) Wait() {
	m.actions.Wait()
}

// Snapshot returns the current presentation state
func (m *Model) Snapshot() Snapshot {
	return Snapshot{
		Query:      m.inputHandler.Query(),
		Candidates: m.selection.Candidates(),
		Selected:   m.selection.Index(),
		Error:      m.reporter.Message(),
		State:      m.State(),
	}
}

// State returns the controller's coarse state
func (m *Model) State() domain.QueryState {
	switch {
	case m.reporter.Visible():
		return domain.StateError
	case m.querying:
		return domain.StateQuerying
	default:
		return domain.StateIdle
	}
}

// ContentHeight is the window sizing hint for the current content
func (m *Model) ContentHeight() int {
	return views.ContentHeight(m.selection.Len(), m.reporter.Visible())
}

// CandidateCount implements types.Context
func (m *Model) CandidateCount() int {
	return m.selection.Len()
}

// SelectedIndex implements types.Context
func (m *Model) SelectedIndex() int {
	return m.selection.Index()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.inputHandler.SetWidth(m.renderWidth() - 4)
		return m, nil

	case tea.KeyMsg:
		// Any key dismisses the visible error and is then handled as usual.
		// The key that reveals a hidden launcher is the first one the user
		// sees the error with, so it leaves the error in place.
		if m.inputHandler.GetMode() != types.ModeHidden {
			m.reporter.DismissOnKey()
		}

		actions, cmd := m.inputHandler.HandleKey(msg, m)
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case findResultMsg:
		m.installResult(msg)
		return m, nil

	case actionDoneMsg:
		return m, m.finishAction(msg)

	case windowHiddenMsg:
		return m, m.hide()

	case ConfigReloadedMsg:
		m.applyConfig(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.querying && !m.busy {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerDoneMsg:
		if msg.err != nil {
			log.Printf("Output pager failed: %v", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil
	}

	return m, nil
}

// processAction executes a single input action
func (m *Model) processAction(action types.Action) tea.Cmd {
	switch a := action.(type) {
	case types.UpdateTextAction:
		if !a.Changed {
			return nil
		}
		return m.queryChanged(a.Text)

	case types.NavigateAction:
		if a.Direction == "up" {
			m.selection.MovePrevious()
		} else {
			m.selection.MoveNext()
		}
		return nil

	case types.HistoryAction:
		var q string
		var ok bool
		if a.Direction == "prev" {
			q, ok = m.history.Previous()
		} else {
			q, ok = m.history.Next()
		}
		if !ok {
			return nil
		}
		m.inputHandler.SetQuery(q)
		return m.queryChanged(q)

	case types.ConfirmAction:
		return m.confirm()

	case types.OpenPagerAction:
		out, ok := m.executor.LastOutput()
		if !ok || m.program == nil {
			return nil
		}
		return m.outputPager(formatOutput(out.Argv, out.ExitCode, out.At, out.Text()))

	case types.ShowAction:
		m.hidden = false
		m.syncMode()
		return nil

	case types.QuitAction:
		m.quitting = true
		return tea.Quit
	}
	return nil
}

// queryChanged starts a find for q, or clears the candidates when q is blank
func (m *Model) queryChanged(q string) tea.Cmd {
	if strings.TrimSpace(q) == "" {
		m.clearCandidates()
		return nil
	}
	return m.startFind(q)
}

func (m *Model) startFind(q string) tea.Cmd {
	m.seq++
	seq := m.seq
	m.querying = true

	f := m.finder
	find := func() tea.Msg {
		return findResultMsg{seq: seq, query: q, candidates: f.Find(context.Background(), q)}
	}
	return tea.Batch(find, m.startSpinner())
}

// installResult replaces the candidates unless a newer find or a clear has
// already been shown. In-flight finds are never cancelled; their late
// results are dropped here.
func (m *Model) installResult(msg findResultMsg) {
	if msg.seq == m.seq {
		m.querying = false
	}
	if msg.seq <= m.shownSeq {
		log.Printf("Dropping stale results for %q", msg.query)
		return
	}
	m.shownSeq = msg.seq
	m.replaceCandidates(msg.candidates)
}

func (m *Model) clearCandidates() {
	m.seq++
	m.shownSeq = m.seq
	m.querying = false
	m.replaceCandidates(nil)
}

func (m *Model) replaceCandidates(cs []domain.Candidate) {
	m.selection.Replace(cs)
	clear(m.pointers)
}

// confirm pushes the query to history and triggers the highlighted candidate
func (m *Model) confirm() tea.Cmd {
	c, ok := m.selection.Current()
	if !ok {
		return nil
	}
	m.history.Push(m.inputHandler.Query())

	// results of finds still running must not replace the list now
	m.seq++
	m.shownSeq = m.seq
	m.querying = false

	m.busy = true
	m.syncMode()

	exec, window := m.executor, m.window
	m.actions.Add(1)
	trigger := func() tea.Msg {
		defer m.actions.Done()
		res, err := exec.Trigger(context.Background(), c, window)
		return actionDoneMsg{candidate: c, result: res, err: err}
	}
	return tea.Batch(trigger, m.startSpinner())
}

func (m *Model) finishAction(msg actionDoneMsg) tea.Cmd {
	if msg.err != nil {
		// the reporter releases the busy lock; candidates stay
		m.reporter.Report(msg.err)
		return nil
	}

	m.busy = false
	m.clearCandidates()
	m.inputHandler.Reset()
	m.syncMode()
	return nil
}

// hide applies a window hide requested by the executor
func (m *Model) hide() tea.Cmd {
	if !m.config.UISettings.KeepOpen {
		m.quitting = true
		return tea.Quit
	}
	m.hidden = true
	m.syncMode()
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.inputHandler.GetMode() != types.ModeQuery {
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if i, ok := views.CandidateAt(msg.Y, m.selection.Len()); ok {
			clear(m.pointers)
			m.pointers[i] = pointerDown{X: msg.X, Y: msg.Y}
		}
		return nil

	case tea.MouseActionRelease:
		i, ok := views.CandidateAt(msg.Y, m.selection.Len())
		down, pressed := m.pointers[i]
		clear(m.pointers)
		if !ok || !pressed || down.X != msg.X || down.Y != msg.Y {
			return nil
		}
		m.selection.SelectAt(i)
		return m.confirm()
	}
	return nil
}

func (m *Model) applyConfig(msg ConfigReloadedMsg) {
	if msg.Err != nil {
		m.reporter.Report(msg.Err)
		return
	}
	m.config.UISettings = msg.Config.UISettings
	m.config.Sources = msg.Config.Sources
	m.finder.SetRegistry(registry.FromConfig(msg.Config))
	log.Printf("Configuration reloaded: %d sources", len(msg.Config.Sources))
}

// syncMode derives the input mode from the hidden and busy flags
func (m *Model) syncMode() {
	switch {
	case m.hidden:
		m.inputHandler.ChangeMode(types.ModeHidden)
	case m.busy:
		m.inputHandler.ChangeMode(types.ModeBusy)
	default:
		m.inputHandler.ChangeMode(types.ModeQuery)
	}
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) renderWidth() int {
	w := m.width
	if limit := m.config.UISettings.MaxWidth; limit > 0 && (w == 0 || w > limit) {
		w = limit
	}
	return w
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting || m.inPagerMode {
		return ""
	}
	return m.renderer.Render(views.ViewState{
		Width:      m.renderWidth(),
		QueryLine:  m.inputHandler.View(),
		Candidates: m.selection.Candidates(),
		Selected:   m.selection.Index(),
		Querying:   m.querying,
		Spinner:    m.spinner.View(),
		Busy:       m.busy,
		Error:      m.reporter.Message(),
		Hidden:     m.hidden,
		HelpModel:  m.help,
		Keys:       m.inputHandler.Keys(),
	})
}
