package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventQueryStarted    EventType = "QueryStarted"
	EventSourceFailed    EventType = "SourceFailed"
	EventCandidatesFound EventType = "CandidatesFound"
	EventActionExecuted  EventType = "ActionExecuted"
	EventError           EventType = "Error"
	EventConfigChanged   EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// QueryStartedEvent is emitted when the finder fans a query out to its sources
type QueryStartedEvent struct {
	Query          string
	EffectiveQuery string
	Sources        []string
}

func (e QueryStartedEvent) Type() EventType { return EventQueryStarted }

// SourceFailedEvent is emitted when a source command fails for one query
type SourceFailedEvent struct {
	Source string
	Err    error
}

func (e SourceFailedEvent) Type() EventType { return EventSourceFailed }

// CandidatesFoundEvent is emitted when all sources of a query have completed
type CandidatesFoundEvent struct {
	Query    string
	Count    int
	Duration time.Duration
}

func (e CandidatesFoundEvent) Type() EventType { return EventCandidatesFound }

// ActionExecutedEvent is emitted after an action ran (or was handed off)
type ActionExecutedEvent struct {
	Source   string
	Value    string
	Kind     ActionKind
	Success  bool
	Error    string
	Duration time.Duration
}

func (e ActionExecutedEvent) Type() EventType { return EventActionExecuted }

// ErrorEvent is emitted when an error occurs outside a query or action
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigChangedEvent is emitted when the config file is rewritten on disk
type ConfigChangedEvent struct {
	Path string
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
