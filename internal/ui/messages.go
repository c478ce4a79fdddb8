package ui

import (
	"catalyst/internal/config"
	"catalyst/internal/domain"
	"catalyst/internal/executor"
)

// findResultMsg carries the candidates of one find
type findResultMsg struct {
	seq        uint64
	query      string
	candidates []domain.Candidate
}

// actionDoneMsg reports a finished trigger
type actionDoneMsg struct {
	candidate domain.Candidate
	result    executor.Result
	err       error
}

// windowHiddenMsg is sent by the executor's window hide
type windowHiddenMsg struct{}

// pagerDoneMsg contains the result of an output pager run
type pagerDoneMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}

// ConfigReloadedMsg delivers a re-read configuration to the controller.
// Err is set when the new file failed to load; the old config then stays.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}
