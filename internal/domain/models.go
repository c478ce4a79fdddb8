package domain

import "fmt"

// ActionKind describes how a confirmed candidate's action is executed
type ActionKind string

const (
	// ActionRunAndWait runs the action in the foreground, bounded by its timeout
	ActionRunAndWait ActionKind = "run-and-wait"
	// ActionSpawnDetached starts the action in the background and forgets it
	ActionSpawnDetached ActionKind = "spawn-detached"
	// ActionCopy writes the substituted action text to the clipboard
	ActionCopy ActionKind = "copy"
)

// ParseActionKind converts a config value into an ActionKind.
// An empty value defaults to run-and-wait.
func ParseActionKind(s string) (ActionKind, error) {
	switch ActionKind(s) {
	case "":
		return ActionRunAndWait, nil
	case ActionRunAndWait, ActionSpawnDetached, ActionCopy:
		return ActionKind(s), nil
	default:
		return "", fmt.Errorf("unknown action kind %q (want %q, %q or %q)",
			s, ActionRunAndWait, ActionSpawnDetached, ActionCopy)
	}
}

// Action is a fully substituted command ready to execute
type Action struct {
	Argv      []string
	Kind      ActionKind
	TimeoutMs int
}

// Candidate is one selectable result produced for a query
type Candidate struct {
	Value      string // trimmed output line
	SourceName string // originating source
	Action     Action
}

// QueryState is the controller's coarse state
type QueryState int

const (
	StateIdle QueryState = iota
	StateQuerying
	StateError
)

func (s QueryState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateQuerying:
		return "querying"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}
