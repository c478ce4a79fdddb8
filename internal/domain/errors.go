package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrActionTimeout marks an ActionError caused by the action outliving its timeout
var ErrActionTimeout = errors.New("action timed out")

// ConfigError is fatal: the engine refuses to start with a malformed configuration
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// SourceExecutionError records a single source failing for one query.
// It never leaves the finder.
type SourceExecutionError struct {
	Source string
	Argv   []string
	Stderr string
	Err    error
}

func (e *SourceExecutionError) Error() string {
	msg := fmt.Sprintf("source %s: %s: %v", e.Source, strings.Join(e.Argv, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *SourceExecutionError) Unwrap() error { return e.Err }

// ActionError is surfaced to the user verbatim
type ActionError struct {
	Argv   []string
	Output string
	Err    error
}

func (e *ActionError) Error() string {
	name := ""
	if len(e.Argv) > 0 {
		name = e.Argv[0]
	}
	msg := fmt.Sprintf("%s: %v", name, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + firstLine(out)
	}
	return msg
}

func (e *ActionError) Unwrap() error { return e.Err }

// IsTimeout reports whether the action failed by exceeding its timeout
func (e *ActionError) IsTimeout() bool {
	return errors.Is(e.Err, ErrActionTimeout)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
