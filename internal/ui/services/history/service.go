package history

// Service is a bounded history of submitted queries with circular
// back/forward navigation
type Service struct {
	state    *State
	capacity int
}

// NewService creates a history holding at most capacity entries.
// A capacity below 1 uses DefaultCapacity.
func NewService(capacity int) *Service {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Service{
		state:    &State{Entries: make([]string, 0, capacity), Reset: true},
		capacity: capacity,
	}
}

// Push appends query, evicting the oldest entry when full
func (s *Service) Push(query string) {
	if len(s.state.Entries) == s.capacity {
		copy(s.state.Entries, s.state.Entries[1:])
		s.state.Entries = s.state.Entries[:len(s.state.Entries)-1]
	}
	s.state.Entries = append(s.state.Entries, query)
	s.state.Reset = true
}

// Previous steps back, wrapping from the oldest entry to the newest.
// After a push it starts at the newest entry.
func (s *Service) Previous() (string, bool) {
	n := len(s.state.Entries)
	if n == 0 {
		return "", false
	}
	if s.state.Reset {
		s.state.Cursor = n - 1
		s.state.Reset = false
	} else {
		s.state.Cursor = (s.state.Cursor - 1 + n) % n
	}
	return s.state.Entries[s.state.Cursor], true
}

// Next steps forward, wrapping from the newest entry to the oldest.
// After a push it starts at the oldest entry.
func (s *Service) Next() (string, bool) {
	n := len(s.state.Entries)
	if n == 0 {
		return "", false
	}
	if s.state.Reset {
		s.state.Cursor = 0
		s.state.Reset = false
	} else {
		s.state.Cursor = (s.state.Cursor + 1) % n
	}
	return s.state.Entries[s.state.Cursor], true
}

// Len returns the number of stored entries
func (s *Service) Len() int {
	return len(s.state.Entries)
}

// Capacity returns the maximum number of entries
func (s *Service) Capacity() int {
	return s.capacity
}

// Entries returns the stored queries, oldest first
func (s *Service) Entries() []string {
	return append([]string(nil), s.state.Entries...)
}
