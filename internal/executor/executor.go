// Package executor runs the action of a confirmed candidate and applies the
// window visibility policy around it.
package executor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"

	"catalyst/internal/domain"
	"catalyst/internal/eventbus"
	"catalyst/internal/process"
)

// Window is the part of the presentation the executor may hide
type Window interface {
	Hide()
}

// Output is what a run-and-wait action printed
type Output struct {
	Argv     []string
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
	At       time.Time
}

// Text returns stdout followed by stderr
func (o Output) Text() string {
	var b strings.Builder
	b.Write(o.Stdout)
	if len(o.Stderr) > 0 {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteByte('\n')
		}
		b.Write(o.Stderr)
	}
	return b.String()
}

// Result describes a finished trigger
type Result struct {
	// Hidden reports whether the window was hidden by this trigger
	Hidden bool
}

// Executor triggers candidate actions
type Executor struct {
	runner    process.Runner
	bus       eventbus.EventBus
	writeClip func(string) error

	mu         sync.Mutex
	lastOutput *Output
}

// New creates an executor. bus may be nil.
func New(runner process.Runner, bus eventbus.EventBus) *Executor {
	return &Executor{
		runner:    runner,
		bus:       bus,
		writeClip: clipboard.WriteAll,
	}
}

// SetClipboardWriter replaces the clipboard backend used by copy actions
func (e *Executor) SetClipboardWriter(fn func(string) error) {
	e.writeClip = fn
}

// Trigger executes the candidate's action. A zero timeout hides the window
// before anything runs; a positive timeout hides it only after success. A
// failed action never hides the window itself. Errors are *domain.ActionError.
func (e *Executor) Trigger(ctx context.Context, c domain.Candidate, w Window) (Result, error) {
	start := time.Now()
	var res Result

	if c.Action.TimeoutMs == 0 {
		w.Hide()
		res.Hidden = true
	}

	err := e.execute(ctx, c.Action)
	if err == nil && !res.Hidden {
		w.Hide()
		res.Hidden = true
	}

	event := eventbus.ActionExecutedEvent{
		Source:   c.SourceName,
		Value:    c.Value,
		Kind:     c.Action.Kind,
		Success:  err == nil,
		Duration: time.Since(start),
	}
	if err != nil {
		event.Error = err.Error()
		log.Printf("Action for %q from %s failed: %v", c.Value, c.SourceName, err)
	} else {
		log.Printf("Action for %q from %s succeeded in %s", c.Value, c.SourceName, event.Duration)
	}
	if e.bus != nil {
		e.bus.Publish(event)
	}
	return res, err
}

func (e *Executor) execute(ctx context.Context, a domain.Action) error {
	if len(a.Argv) == 0 {
		return &domain.ActionError{Err: process.ErrEmptyCommand}
	}

	switch a.Kind {
	case domain.ActionSpawnDetached:
		if err := e.runner.Spawn(a.Argv); err != nil {
			return &domain.ActionError{Argv: a.Argv, Err: err}
		}
		return nil

	case domain.ActionCopy:
		text := strings.Join(a.Argv, " ")
		if err := e.writeClip(text); err != nil {
			return &domain.ActionError{Argv: a.Argv, Err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return nil

	case domain.ActionRunAndWait, "":
		return e.runAndWait(ctx, a)

	default:
		return &domain.ActionError{Argv: a.Argv, Err: fmt.Errorf("unknown action kind %q", a.Kind)}
	}
}

func (e *Executor) runAndWait(ctx context.Context, a domain.Action) error {
	timeout := time.Duration(a.TimeoutMs) * time.Millisecond
	out, err := e.runner.Run(ctx, a.Argv, timeout)

	e.mu.Lock()
	e.lastOutput = &Output{
		Argv:     a.Argv,
		Stdout:   out.Stdout,
		Stderr:   out.Stderr,
		ExitCode: out.ExitCode,
		Duration: out.Duration,
		At:       time.Now(),
	}
	e.mu.Unlock()

	if err == nil {
		return nil
	}
	if out.TimedOut || (timeout > 0 && errors.Is(err, context.DeadlineExceeded)) {
		return &domain.ActionError{
			Argv:   a.Argv,
			Output: string(out.Stderr),
			Err:    fmt.Errorf("%w after %s", domain.ErrActionTimeout, timeout),
		}
	}

	diag := string(out.Stderr)
	if strings.TrimSpace(diag) == "" {
		diag = string(out.Stdout)
	}
	return &domain.ActionError{Argv: a.Argv, Output: diag, Err: err}
}

// LastOutput returns the output of the most recent run-and-wait action
func (e *Executor) LastOutput() (Output, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastOutput == nil {
		return Output{}, false
	}
	return *e.lastOutput, true
}
