package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/notexe/remind/internal/terminal"
)

// ErrNoInput is returned when input ends before a required answer is given.
var ErrNoInput = errors.New("no input")

// LineReader reads one line of free text after printing a prompt.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Prompter asks the user questions on a terminal. Pickers use raw-mode
// key navigation when interactive and numbered line prompts otherwise.
type Prompter struct {
	term        *terminal.Terminal
	out         io.Writer
	fmt         *Formatter
	lines       LineReader
	interactive bool
	now         func() time.Time
}

// PrompterOption configures a Prompter.
type PrompterOption func(*Prompter)

// WithInteractive forces raw-mode pickers on or off.
func WithInteractive(on bool) PrompterOption {
	return func(p *Prompter) { p.interactive = on }
}

// WithClock replaces time.Now for date prompts.
func WithClock(now func() time.Time) PrompterOption {
	return func(p *Prompter) { p.now = now }
}

// WithLineReader replaces the free-text reader.
func WithLineReader(r LineReader) PrompterOption {
	return func(p *Prompter) { p.lines = r }
}

// NewPrompter builds a Prompter over t. Pickers are interactive when t is a
// terminal, unless overridden.
func NewPrompter(t *terminal.Terminal, f *Formatter, opts ...PrompterOption) *Prompter {
	p := &Prompter{
		term:        t,
		out:         t.Out(),
		fmt:         f,
		interactive: t.IsTerminal(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.lines == nil {
		if p.interactive {
			p.lines = &editorLines{in: t.In(), out: p.out}
		} else {
			p.lines = NewBufferedLines(t.In(), p.out)
		}
	}
	return p
}

// Interactive reports whether pickers use raw-mode navigation.
func (p *Prompter) Interactive() bool { return p.interactive }

// Formatter returns the formatter used for prompt output.
func (p *Prompter) Formatter() *Formatter { return p.fmt }

func (p *Prompter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Input asks for free text. An empty answer yields def; when required and
// def is empty the question repeats. End of input returns def, or
// ErrNoInput when there is none.
func (p *Prompter) Input(message, def string, required bool) (string, error) {
	var prompt string
	switch {
	case def != "":
		prompt = fmt.Sprintf("%s [%s]: ", message, def)
	case required:
		prompt = message + " (required): "
	default:
		prompt = message + ": "
	}

	for {
		line, err := p.lines.ReadLine(prompt)
		if err != nil {
			if def != "" {
				return def, nil
			}
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return "", ErrNoInput
			}
			return "", err
		}

		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
		if !required || def != "" {
			return def, nil
		}
		p.printf("This field is required.\n")
	}
}

// Confirm asks a yes/no question. Answers starting with y are yes; empty
// answers and end of input yield def.
func (p *Prompter) Confirm(message string, def bool) bool {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	line, err := p.lines.ReadLine(fmt.Sprintf("%s (%s): ", message, hint))
	if err != nil {
		return def
	}
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "" {
		return def
	}
	return strings.HasPrefix(line, "y")
}

// BufferedLines reads lines from a plain stream.
type BufferedLines struct {
	r   *bufio.Reader
	out io.Writer
}

func NewBufferedLines(r io.Reader, out io.Writer) *BufferedLines {
	return &BufferedLines{r: bufio.NewReader(r), out: out}
}

func (b *BufferedLines) ReadLine(prompt string) (string, error) {
	fmt.Fprint(b.out, prompt)
	line, err := b.r.ReadString('\n')
	if err != nil {
		if line != "" && errors.Is(err, io.EOF) {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// editorLines reads lines with readline editing. Each call runs its own
// readline instance over a view of the shared input, so nothing is left
// reading the terminal once the line is returned.
type editorLines struct {
	in  *terminal.Input
	out io.Writer
}

func (e *editorLines) ReadLine(prompt string) (string, error) {
	view := e.in.View()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              prompt,
		Stdin:               view,
		Stdout:              e.out,
		InterruptPrompt:     "^C",
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		view.Close()
		return NewBufferedLines(e.in, e.out).ReadLine(prompt)
	}
	defer func() {
		view.Close()
		rl.Close()
	}()

	return rl.Readline()
}

func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
