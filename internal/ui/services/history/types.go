package history

// DefaultCapacity is used when no capacity is configured
const DefaultCapacity = 100

// State is the ring of submitted queries
type State struct {
	Entries []string // oldest first
	Cursor  int
	Reset   bool // next navigation starts from an end instead of Cursor
}
