// Package tuitest drives a compiled TUI binary inside a pseudo terminal and
// records what it draws. Tests script keystrokes, let the program run, and
// assert against the captured screens.
package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"
)

const (
	defaultCols    = 120
	defaultRows    = 32
	defaultTimeout = 10 * time.Second
)

// Action is one scripted interaction. Pause waits before Keys are written;
// either field may be zero.
type Action struct {
	Pause time.Duration
	Keys  []byte
}

// Press builds an action that sends the given bytes immediately.
func Press(keys []byte) Action { return Action{Keys: keys} }

// Type builds an action that sends literal text.
func Type(text string) Action { return Action{Keys: []byte(text)} }

// Settle builds an action that only waits, giving the program time to render.
func Settle(d time.Duration) Action { return Action{Pause: d} }

// Options configures a scripted session.
type Options struct {
	// Command is the binary and its arguments. Required.
	Command []string
	Dir     string
	Env     []string
	Cols    int
	Rows    int
	Script  []Action
	// Timeout bounds the whole session including program exit.
	Timeout time.Duration
	// InterruptExit accepts termination by SIGINT, the normal way a
	// bubbletea program leaves on ctrl+c.
	InterruptExit bool
}

// Transcript is everything the program wrote to the terminal.
type Transcript struct {
	Raw      []byte
	Screens  []Screen
	Duration time.Duration
}

// Run starts the program in a PTY, replays the script, waits for exit, and
// returns the recorded transcript.
func Run(ctx context.Context, opts Options) (*Transcript, error) {
	if len(opts.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	cols, rows := opts.Cols, opts.Rows
	if cols <= 0 {
		cols = defaultCols
	}
	if rows <= 0 {
		rows = defaultRows
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, opts.Command[0], opts.Command[1:]...)
	cmd.Dir = opts.Dir
	cmd.Env = sessionEnv(opts.Env)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, fmt.Errorf("tuitest: start %s: %w", opts.Command[0], err)
	}
	defer func() { _ = ptmx.Close() }()

	var captured bytes.Buffer
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		answer := newQueryAnswerer(ptmx)
		buf := make([]byte, 4096)
		for {
			n, readErr := ptmx.Read(buf)
			if n > 0 {
				chunk := buf[:n]
				answer.Feed(chunk)
				captured.Write(chunk)
			}
			if readErr != nil {
				return
			}
		}
	}()

	start := time.Now()
	for _, action := range opts.Script {
		if action.Pause > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("tuitest: script interrupted: %w", ctx.Err())
			case <-time.After(action.Pause):
			}
		}
		if len(action.Keys) > 0 {
			if _, err := ptmx.Write(action.Keys); err != nil {
				return nil, fmt.Errorf("tuitest: send keys: %w", err)
			}
		}
	}

	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()

	select {
	case err := <-exited:
		if err != nil && !acceptableExit(err, opts.InterruptExit) {
			return nil, fmt.Errorf("tuitest: program failed: %w", err)
		}
	case <-ctx.Done():
		return nil, fmt.Errorf("tuitest: program did not exit: %w", ctx.Err())
	}

	// Close our side so the reader sees EOF and finishes draining.
	_ = ptmx.Close()
	<-drained

	raw := captured.Bytes()
	return &Transcript{
		Raw:      raw,
		Screens:  splitScreens(raw),
		Duration: time.Since(start),
	}, nil
}

func acceptableExit(err error, interruptOK bool) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 0 {
		return true
	}
	return interruptOK && strings.Contains(err.Error(), "signal: interrupt")
}

func sessionEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	for _, entry := range env {
		if strings.HasPrefix(entry, "TERM=") {
			return env
		}
	}
	return append(env, "TERM=xterm-256color")
}

// queryAnswerer replies to the terminal capability queries lipgloss issues on
// startup. Without answers the program blocks waiting on the "terminal".
type queryAnswerer struct {
	w    io.Writer
	tail []byte
}

func newQueryAnswerer(w io.Writer) *queryAnswerer {
	return &queryAnswerer{w: w}
}

func (q *queryAnswerer) Feed(chunk []byte) {
	q.tail = append(q.tail, chunk...)
	for q.answerOne() {
	}
	if len(q.tail) > 256 {
		q.tail = q.tail[len(q.tail)-64:]
	}
}

var terminalQueries = []struct {
	query []byte
	reply []byte
}{
	{[]byte("\x1b[6n"), []byte("\x1b[1;1R")},
	{[]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{[]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{[]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{[]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

func (q *queryAnswerer) answerOne() bool {
	for _, entry := range terminalQueries {
		idx := bytes.Index(q.tail, entry.query)
		if idx < 0 {
			continue
		}
		q.tail = q.tail[idx+len(entry.query):]
		_, _ = q.w.Write(entry.reply)
		return true
	}
	return false
}

// Common key bytes for scripts.
var (
	KeyEnter = []byte{'\r'}
	KeyCtrlC = []byte{3}
	KeyCtrlN = []byte{14}
	KeyCtrlT = []byte{20}
	KeyEsc   = []byte{27}
	KeyF1    = []byte("\x1bOP")
)
