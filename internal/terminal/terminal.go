// Package terminal drives the controlling terminal for interactive prompts:
// raw-mode switching, cursor visibility, line erasure and keystroke decoding.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Control sequences written to the output stream.
const (
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
	seqClearLine  = "\033[2K\r"
	seqCursorUp   = "\033[%dA"
)

// ErrSessionActive is returned when a second session is started while one
// is still open.
var ErrSessionActive = errors.New("terminal session already active")

// RawModeFunc switches fd into raw mode and returns a function restoring
// the previous mode.
type RawModeFunc func(fd int) (restore func() error, err error)

// Option configures a Terminal.
type Option func(*Terminal)

// WithRawMode replaces the mode switch. Tests use it to run without a TTY.
func WithRawMode(fn RawModeFunc) Option {
	return func(t *Terminal) { t.makeRaw = fn }
}

// WithTTY overrides terminal detection.
func WithTTY(isTTY bool) Option {
	return func(t *Terminal) { t.tty = &isTTY }
}

// Terminal wraps an input stream and an output stream. A Terminal allows
// one Session at a time.
type Terminal struct {
	in      *Input
	keys    *KeyReader
	out     io.Writer
	fd      int
	makeRaw RawModeFunc
	tty     *bool

	mu           sync.Mutex
	restore      func() error
	cursorHidden bool
	active       bool
}

// New creates a Terminal. When in is an *os.File its descriptor is used for
// mode switching; otherwise the terminal reports itself as non-interactive
// unless WithTTY says otherwise.
func New(in io.Reader, out io.Writer, opts ...Option) *Terminal {
	t := &Terminal{
		in:      NewInput(in),
		out:     out,
		fd:      -1,
		makeRaw: makeRaw,
	}
	if f, ok := in.(*os.File); ok {
		t.fd = int(f.Fd())
	}
	for _, opt := range opts {
		opt(t)
	}
	t.keys = NewKeyReader(t.in)
	return t
}

// Stdio returns a Terminal over the process's stdin and stdout.
func Stdio() *Terminal {
	return New(os.Stdin, os.Stdout)
}

func makeRaw(fd int) (func() error, error) {
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() error { return term.Restore(fd, old) }, nil
}

// In returns the shared input stream.
func (t *Terminal) In() *Input { return t.in }

// ReadKey reads the next keystroke. It is meant for raw mode.
func (t *Terminal) ReadKey() (Key, error) { return t.keys.ReadKey() }

// Out returns the output stream.
func (t *Terminal) Out() io.Writer { return t.out }

// IsTerminal reports whether the input is an interactive terminal.
func (t *Terminal) IsTerminal() bool {
	if t.tty != nil {
		return *t.tty
	}
	return t.fd >= 0 && term.IsTerminal(t.fd)
}

// EnableRawMode switches the input into raw mode. Calling it while already
// raw is a no-op.
func (t *Terminal) EnableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.restore != nil {
		return nil
	}
	restore, err := t.makeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	t.restore = restore
	return nil
}

// DisableRawMode restores the mode saved by EnableRawMode.
func (t *Terminal) DisableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.restore == nil {
		return nil
	}
	err := t.restore()
	t.restore = nil
	if err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	return nil
}

// IsRaw reports whether raw mode is currently on.
func (t *Terminal) IsRaw() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.restore != nil
}

// CursorHidden reports whether HideCursor was called without a matching
// ShowCursor.
func (t *Terminal) CursorHidden() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursorHidden
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	t.cursorHidden = true
	t.mu.Unlock()
	io.WriteString(t.out, seqHideCursor)
}

func (t *Terminal) ShowCursor() {
	t.mu.Lock()
	t.cursorHidden = false
	t.mu.Unlock()
	io.WriteString(t.out, seqShowCursor)
}

// ClearLine erases the current line and returns the cursor to column 0.
func (t *Terminal) ClearLine() {
	io.WriteString(t.out, seqClearLine)
}

// MoveCursorUp moves the cursor up n lines. n <= 0 does nothing.
func (t *Terminal) MoveCursorUp(n int) {
	if n <= 0 {
		return
	}
	fmt.Fprintf(t.out, seqCursorUp, n)
}

// EraseLines clears the n lines above the cursor, leaving it at the start
// of the topmost one.
func (t *Terminal) EraseLines(n int) {
	for i := 0; i < n; i++ {
		t.MoveCursorUp(1)
		t.ClearLine()
	}
}

// Reset restores the terminal regardless of who switched it. The signal
// handler in main calls it before exiting.
func (t *Terminal) Reset() error {
	if t.CursorHidden() {
		t.ShowCursor()
	}
	err := t.DisableRawMode()

	t.mu.Lock()
	t.active = false
	t.mu.Unlock()
	return err
}

// Session is an exclusive raw-mode, hidden-cursor span. Close restores the
// terminal and may be called more than once.
type Session struct {
	t    *Terminal
	once sync.Once
	err  error
}

// StartSession enables raw mode and hides the cursor. It fails with
// ErrSessionActive while another session is open.
func (t *Terminal) StartSession() (*Session, error) {
	t.mu.Lock()
	if t.active {
		t.mu.Unlock()
		return nil, ErrSessionActive
	}
	t.active = true
	t.mu.Unlock()

	if err := t.EnableRawMode(); err != nil {
		t.mu.Lock()
		t.active = false
		t.mu.Unlock()
		return nil, err
	}
	t.HideCursor()
	return &Session{t: t}, nil
}

func (s *Session) Close() error {
	s.once.Do(func() {
		s.t.ShowCursor()
		s.err = s.t.DisableRawMode()

		s.t.mu.Lock()
		s.t.active = false
		s.t.mu.Unlock()
	})
	return s.err
}
