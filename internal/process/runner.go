// Package process runs external commands for the finder and the executor.
// Commands are always given as argument vectors; nothing goes through a shell
// unless the configuration itself names one.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// ErrEmptyCommand is returned for an empty argument vector
var ErrEmptyCommand = errors.New("empty command")

// Result holds the outcome of a captured run
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
	TimedOut bool
}

// Runner is the process execution capability consumed by the engine
type Runner interface {
	// Run executes argv, capturing stdout and stderr. A timeout of zero
	// means no timeout beyond ctx. A non-zero exit is reported as an
	// *exec.ExitError alongside the populated Result.
	Run(ctx context.Context, argv []string, timeout time.Duration) (Result, error)
	// Spawn starts argv detached from the launcher and does not track it
	Spawn(argv []string) error
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	Dir string   // working directory, empty for the current one
	Env []string // extra environment entries appended to os.Environ
}

// NewExecRunner creates a runner inheriting the launcher's environment
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes argv and waits for it
func (r *ExecRunner) Run(ctx context.Context, argv []string, timeout time.Duration) (Result, error) {
	if len(argv) == 0 {
		return Result{ExitCode: -1}, ErrEmptyCommand
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.Dir
	cmd.Env = r.environ()
	// Do not let a child holding the pipes open outlive the timeout
	cmd.WaitDelay = 500 * time.Millisecond

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{
		ExitCode: exitCode(cmd, err),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if err != nil {
		if timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			res.TimedOut = true
			return res, fmt.Errorf("after %s: %w", timeout, context.DeadlineExceeded)
		}
		return res, err
	}
	return res, nil
}

// Spawn starts argv in its own process group with no stdio and reaps it in
// the background
func (r *ExecRunner) Spawn(argv []string) error {
	if len(argv) == 0 {
		return ErrEmptyCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = r.Dir
	cmd.Env = r.environ()
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func (r *ExecRunner) environ() []string {
	if len(r.Env) == 0 {
		return nil
	}
	return append(os.Environ(), r.Env...)
}

func exitCode(cmd *exec.Cmd, err error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	if err != nil {
		return -1
	}
	return 0
}
