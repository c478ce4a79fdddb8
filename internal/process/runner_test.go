package process

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRunCapturesOutput(t *testing.T) {
	requireShell(t)
	r := NewExecRunner()

	res, err := r.Run(context.Background(), []string{"sh", "-c", "echo out; echo err >&2"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "out\n", string(res.Stdout))
	assert.Equal(t, "err\n", string(res.Stderr))
	assert.False(t, res.TimedOut)
}

func TestRunReportsNonZeroExit(t *testing.T) {
	requireShell(t)
	r := NewExecRunner()

	res, err := r.Run(context.Background(), []string{"sh", "-c", "echo nope >&2; exit 3"}, 0)
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "nope\n", string(res.Stderr))
}

func TestRunTimesOut(t *testing.T) {
	requireShell(t)
	r := NewExecRunner()

	start := time.Now()
	res, err := r.Run(context.Background(), []string{"sh", "-c", "sleep 5"}, 100*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.True(t, res.TimedOut)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestRunSpawnFailure(t *testing.T) {
	r := NewExecRunner()

	_, err := r.Run(context.Background(), []string{"/nonexistent/catalyst-test-binary"}, 0)
	require.Error(t, err)

	_, err = r.Run(context.Background(), nil, 0)
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func TestRunUsesExtraEnvironment(t *testing.T) {
	requireShell(t)
	r := &ExecRunner{Env: []string{"CATALYST_TEST_VALUE=42"}}

	res, err := r.Run(context.Background(), []string{"sh", "-c", "printf %s \"$CATALYST_TEST_VALUE\""}, 0)
	require.NoError(t, err)
	assert.Equal(t, "42", string(res.Stdout))
}

func TestSpawnDoesNotWait(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	marker := filepath.Join(dir, "done")
	r := &ExecRunner{Dir: dir}

	start := time.Now()
	require.NoError(t, r.Spawn([]string{"sh", "-c", "sleep 1; touch done"}))
	assert.Less(t, time.Since(start), 800*time.Millisecond, "spawn must return before the child finishes")

	require.Eventually(t, func() bool {
		_, err := os.Stat(marker)
		return err == nil
	}, 3*time.Second, 20*time.Millisecond)
}

func TestSpawnFailure(t *testing.T) {
	r := NewExecRunner()
	assert.Error(t, r.Spawn([]string{"/nonexistent/catalyst-test-binary"}))
	assert.ErrorIs(t, r.Spawn(nil), ErrEmptyCommand)
}
