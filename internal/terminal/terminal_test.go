package terminal_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notexe/remind/internal/terminal"
)

type fakeMode struct {
	raw      bool
	enables  int
	restores int
	fail     error
}

func (f *fakeMode) switchFn(int) (func() error, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.raw = true
	f.enables++
	return func() error {
		f.raw = false
		f.restores++
		return nil
	}, nil
}

func newFake(t *testing.T) (*terminal.Terminal, *fakeMode, *bytes.Buffer) {
	t.Helper()

	mode := &fakeMode{}
	var out bytes.Buffer
	term := terminal.New(strings.NewReader(""), &out,
		terminal.WithRawMode(mode.switchFn), terminal.WithTTY(true))
	return term, mode, &out
}

func TestControlSequences(t *testing.T) {
	t.Parallel()

	term, _, out := newFake(t)

	term.HideCursor()
	term.ShowCursor()
	term.ClearLine()
	term.MoveCursorUp(3)
	term.MoveCursorUp(0)

	assert.Equal(t, "\033[?25l\033[?25h\033[2K\r\033[3A", out.String())
}

func TestEraseLines(t *testing.T) {
	t.Parallel()

	term, _, out := newFake(t)
	term.EraseLines(2)

	assert.Equal(t, "\033[1A\033[2K\r\033[1A\033[2K\r", out.String())
}

func TestRawModeIdempotent(t *testing.T) {
	t.Parallel()

	term, mode, _ := newFake(t)

	require.NoError(t, term.EnableRawMode())
	require.NoError(t, term.EnableRawMode())
	assert.Equal(t, 1, mode.enables)
	assert.True(t, term.IsRaw())

	require.NoError(t, term.DisableRawMode())
	require.NoError(t, term.DisableRawMode())
	assert.Equal(t, 1, mode.restores)
	assert.False(t, mode.raw)
}

func TestSessionRestoresOnClose(t *testing.T) {
	t.Parallel()

	term, mode, _ := newFake(t)

	sess, err := term.StartSession()
	require.NoError(t, err)
	assert.True(t, mode.raw)
	assert.True(t, term.CursorHidden())

	_, err = term.StartSession()
	require.ErrorIs(t, err, terminal.ErrSessionActive)

	require.NoError(t, sess.Close())
	require.NoError(t, sess.Close())
	assert.False(t, mode.raw)
	assert.False(t, term.CursorHidden())
	assert.Equal(t, 1, mode.restores)

	sess, err = term.StartSession()
	require.NoError(t, err)
	require.NoError(t, sess.Close())
}

func TestSessionStartFailureReleasesLock(t *testing.T) {
	t.Parallel()

	term, mode, _ := newFake(t)
	mode.fail = errors.New("not a tty")

	_, err := term.StartSession()
	require.Error(t, err)

	mode.fail = nil
	sess, err := term.StartSession()
	require.NoError(t, err)
	require.NoError(t, sess.Close())
}

func TestResetRestoresActiveSession(t *testing.T) {
	t.Parallel()

	term, mode, _ := newFake(t)

	_, err := term.StartSession()
	require.NoError(t, err)

	require.NoError(t, term.Reset())
	assert.False(t, mode.raw)
	assert.False(t, term.CursorHidden())

	sess, err := term.StartSession()
	require.NoError(t, err)
	require.NoError(t, sess.Close())
}

func TestIsTerminalWithoutFile(t *testing.T) {
	t.Parallel()

	term := terminal.New(strings.NewReader(""), io.Discard)
	assert.False(t, term.IsTerminal())
}
