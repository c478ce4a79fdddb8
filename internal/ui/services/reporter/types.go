package reporter

// State is the single visible error
type State struct {
	Message string
	Visible bool
}
