package reporter

import (
	"log"

	"catalyst/internal/eventbus"
)

// Service holds the one user-visible error. A new report overwrites the
// previous one; the next key dismisses it.
type Service struct {
	state *State
	bus   eventbus.EventBus
	onErr func() // releases input locks held while an action runs
}

// NewService creates a reporter. bus may be nil.
func NewService(bus eventbus.EventBus) *Service {
	return &Service{state: &State{}, bus: bus}
}

// OnReport registers fn to run whenever an error is reported
func (s *Service) OnReport(fn func()) {
	s.onErr = fn
}

// Report makes err the visible error
func (s *Service) Report(err error) {
	if err == nil {
		return
	}
	s.state.Message = err.Error()
	s.state.Visible = true
	log.Printf("Error: %s", s.state.Message)

	if s.onErr != nil {
		s.onErr()
	}
	if s.bus != nil {
		s.bus.Publish(eventbus.ErrorEvent{Message: s.state.Message, Err: err})
	}
}

// DismissOnKey hides the visible error. It reports whether one was shown.
func (s *Service) DismissOnKey() bool {
	if !s.state.Visible {
		return false
	}
	s.state.Visible = false
	s.state.Message = ""
	return true
}

// Visible reports whether an error is shown
func (s *Service) Visible() bool {
	return s.state.Visible
}

// Message returns the visible error text, or "" when none is shown
func (s *Service) Message() string {
	return s.state.Message
}
