package selection

import (
	"catalyst/internal/domain"
)

// Service tracks the current candidates and which one is highlighted
type Service struct {
	state *State
}

// NewService creates an empty selection
func NewService() *Service {
	return &Service{state: &State{}}
}

// Replace installs a new candidate list and resets the index
func (s *Service) Replace(candidates []domain.Candidate) {
	s.state.Candidates = candidates
	s.state.Index = 0
}

// MovePrevious moves the highlight up, reporting whether it moved
func (s *Service) MovePrevious() bool {
	if s.state.Index == 0 {
		return false
	}
	s.state.Index--
	return true
}

// MoveNext moves the highlight down, reporting whether it moved
func (s *Service) MoveNext() bool {
	if s.state.Index >= len(s.state.Candidates)-1 {
		return false
	}
	s.state.Index++
	return true
}

// SelectAt highlights index i. Out of range indexes are ignored.
func (s *Service) SelectAt(i int) bool {
	if i < 0 || i >= len(s.state.Candidates) {
		return false
	}
	s.state.Index = i
	return true
}

// Current returns the highlighted candidate, if any
func (s *Service) Current() (domain.Candidate, bool) {
	if len(s.state.Candidates) == 0 {
		return domain.Candidate{}, false
	}
	return s.state.Candidates[s.state.Index], true
}

// Candidates returns the current list
func (s *Service) Candidates() []domain.Candidate {
	return s.state.Candidates
}

// Index returns the highlighted index
func (s *Service) Index() int {
	return s.state.Index
}

// Len returns the number of candidates
func (s *Service) Len() int {
	return len(s.state.Candidates)
}
