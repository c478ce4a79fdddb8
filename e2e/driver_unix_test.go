//go:build e2e && unix

package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"
	"unsafe"

	"github.com/creack/pty"
)

// binPath is set by TestMain
var binPath = "catalyst_e2e"

// maxCapture bounds the captured terminal output; older bytes are dropped
const maxCapture = 1 << 20

const (
	KeyEnter = "\r"
	KeyCtrlC = "\x03"
)

// ansiRe strips CSI, OSC, charset and keypad sequences plus carriage returns
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

// launcher runs the binary on a pseudo-terminal inside an isolated home
type launcher struct {
	t    *testing.T
	home string
	pty  *os.File
	tty  *os.File
	cmd  *exec.Cmd

	mu  sync.Mutex
	out bytes.Buffer
}

func newLauncher(t *testing.T) *launcher {
	l := &launcher{t: t, home: t.TempDir()}
	t.Cleanup(l.close)
	return l
}

// writeConfig writes a config file into the home directory and returns its path
func (l *launcher) writeConfig(name, content string) string {
	l.t.Helper()
	path := filepath.Join(l.home, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		l.t.Fatalf("write config: %v", err)
	}
	return path
}

// start launches the binary with args on a 120x40 terminal
func (l *launcher) start(args ...string) error {
	l.cmd = exec.Command(binPath, args...)
	l.cmd.Dir = l.home
	l.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+l.home,
		"XDG_CONFIG_HOME="+filepath.Join(l.home, ".config"),
		"XDG_CACHE_HOME="+filepath.Join(l.home, ".cache"),
	)

	ptyFile, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("failed to open pty: %w", err)
	}
	l.pty, l.tty = ptyFile, tty
	l.cmd.Stdin, l.cmd.Stdout, l.cmd.Stderr = tty, tty, tty

	ws := struct{ Row, Col, X, Y uint16 }{40, 120, 0, 0}
	syscall.Syscall(syscall.SYS_IOCTL, ptyFile.Fd(), uintptr(syscall.TIOCSWINSZ), uintptr(unsafe.Pointer(&ws)))

	if err := l.cmd.Start(); err != nil {
		ptyFile.Close()
		tty.Close()
		return fmt.Errorf("failed to start command: %w", err)
	}
	go l.capture()
	return nil
}

func (l *launcher) capture() {
	buf := make([]byte, 8192)
	for {
		n, err := l.pty.Read(buf)
		if n > 0 {
			l.mu.Lock()
			l.out.Write(buf[:n])
			if extra := l.out.Len() - maxCapture; extra > 0 {
				l.out.Next(extra)
			}
			l.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

func (l *launcher) send(keys string) error {
	_, err := l.pty.Write([]byte(keys))
	return err
}

// typeText sends text one key at a time so each rune is a separate key event
func (l *launcher) typeText(text string) error {
	for _, r := range text {
		if err := l.send(string(r)); err != nil {
			return err
		}
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

// screen returns everything captured so far without escape sequences
func (l *launcher) screen() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ansiRe.ReplaceAllString(l.out.String(), "")
}

// waitFor polls the screen until it contains text or the timeout passes
func (l *launcher) waitFor(text string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		s := l.screen()
		if strings.Contains(s, text) {
			return nil
		}
		if time.Now().After(deadline) {
			if len(s) > 4096 {
				s = s[len(s)-4096:]
			}
			return fmt.Errorf("timed out waiting for %q\n--- tail ---\n%s", text, s)
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// see waits briefly for text
func (l *launcher) see(text string) bool {
	return l.waitFor(text, 3*time.Second) == nil
}

// ready waits for the empty query line
func (l *launcher) ready() bool {
	return l.waitFor("type to search", 5*time.Second) == nil
}

// waitExit waits for the process to exit and reports its exit error
func (l *launcher) waitExit(timeout time.Duration) (bool, error) {
	done := make(chan error, 1)
	cmd := l.cmd
	go func() { done <- cmd.Wait() }()
	select {
	case err := <-done:
		l.cmd = nil
		return true, err
	case <-time.After(timeout):
		return false, nil
	}
}

// close hangs up the terminal and kills the process if it is still running
func (l *launcher) close() {
	if l.pty != nil {
		_ = l.pty.Close()
	}
	if l.tty != nil {
		_ = l.tty.Close()
	}
	if l.cmd != nil && l.cmd.Process != nil {
		_ = l.cmd.Process.Kill()
		_, _ = l.cmd.Process.Wait()
	}
}
