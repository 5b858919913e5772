package ui

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/notexe/remind/internal/terminal"
)

// Option is one choice offered by Select.
type Option[T any] struct {
	Label string
	Value T
}

const maxLabelWidth = 72

type pickerState int

const (
	stateIdle pickerState = iota
	stateFiltering
	stateNavigating
	stateSelected
	stateCancelled
)

func (s pickerState) finished() bool {
	return s == stateSelected || s == stateCancelled
}

// pickerModel is the state a raw-mode picker redraws after every key.
type pickerModel interface {
	handle(k terminal.Key)
	state() pickerState
	view(f *Formatter) []string
	summary(f *Formatter) string
}

// runPicker owns the terminal session for one picker. Every redraw first
// erases exactly the lines drawn by the previous one. End of input cancels.
func runPicker(p *Prompter, m pickerModel) error {
	sess, err := p.term.StartSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	drawn := 0
	draw := func() {
		p.term.EraseLines(drawn)
		lines := m.view(p.fmt)
		for _, l := range lines {
			io.WriteString(p.out, l+"\r\n")
		}
		drawn = len(lines)
	}

	draw()
	for !m.state().finished() {
		k, err := p.term.ReadKey()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				p.term.EraseLines(drawn)
				return err
			}
			k = terminal.Key{Kind: terminal.KeyEscape}
		}
		m.handle(k)
		if !m.state().finished() {
			draw()
		}
	}

	p.term.EraseLines(drawn)
	if err := sess.Close(); err != nil {
		return err
	}
	io.WriteString(p.out, m.summary(p.fmt)+"\r\n")
	return nil
}

// listModel filters and navigates a list of labels.
type listModel struct {
	message string
	labels  []string
	query   string
	visible []int
	cursor  int
	st      pickerState
}

var listTransitions = map[terminal.KeyKind]func(*listModel, terminal.Key){
	terminal.KeyChar:      (*listModel).typeChar,
	terminal.KeyBackspace: (*listModel).backspace,
	terminal.KeyUp:        (*listModel).up,
	terminal.KeyDown:      (*listModel).down,
	terminal.KeyEnter:     (*listModel).enter,
	terminal.KeyEscape:    (*listModel).cancel,
}

func newListModel(message string, labels []string, cursor int) *listModel {
	m := &listModel{message: message, labels: labels, cursor: cursor}
	m.refilter()
	return m
}

func (m *listModel) state() pickerState { return m.st }

func (m *listModel) handle(k terminal.Key) {
	if fn, ok := listTransitions[k.Kind]; ok {
		fn(m, k)
	}
}

func (m *listModel) typeChar(k terminal.Key) {
	m.query += string(k.Char)
	m.st = stateFiltering
	m.refilter()
}

func (m *listModel) backspace(terminal.Key) {
	if m.query == "" {
		return
	}
	m.query = m.query[:len(m.query)-1]
	m.st = stateFiltering
	if m.query == "" {
		m.st = stateIdle
	}
	m.refilter()
}

func (m *listModel) up(terminal.Key) {
	m.st = stateNavigating
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *listModel) down(terminal.Key) {
	m.st = stateNavigating
	if m.cursor < len(m.visible)-1 {
		m.cursor++
	}
}

func (m *listModel) enter(terminal.Key) {
	if len(m.visible) > 0 {
		m.st = stateSelected
	}
}

func (m *listModel) cancel(terminal.Key) {
	m.st = stateCancelled
}

// refilter keeps labels containing the query, case-insensitively, and
// clamps the cursor into the new range.
func (m *listModel) refilter() {
	q := strings.ToLower(m.query)
	m.visible = m.visible[:0]
	for i, l := range m.labels {
		if q == "" || strings.Contains(strings.ToLower(l), q) {
			m.visible = append(m.visible, i)
		}
	}
	m.cursor = max(0, min(m.cursor, len(m.visible)-1))
}

// selected returns the index into labels of the highlighted option.
func (m *listModel) selected() (int, bool) {
	if len(m.visible) == 0 {
		return 0, false
	}
	return m.visible[m.cursor], true
}

func (m *listModel) view(f *Formatter) []string {
	prompt := f.Header("? " + m.message)
	if m.query != "" {
		prompt += " " + f.Accent(m.query)
	}

	lines := []string{prompt}
	if len(m.visible) == 0 {
		lines = append(lines, f.Dim("  (no matches)"))
	}
	for i, idx := range m.visible {
		label := runewidth.Truncate(m.labels[idx], maxLabelWidth, "…")
		if i == m.cursor {
			lines = append(lines, f.Cursor("> ")+f.Accent(label))
		} else {
			lines = append(lines, "  "+label)
		}
	}
	lines = append(lines, f.Hint("↑/↓ move · type to filter · enter select · esc cancel"))
	return lines
}

func (m *listModel) summary(f *Formatter) string {
	if idx, ok := m.selected(); ok && m.st == stateSelected {
		return f.Success(m.message + " " + m.labels[idx])
	}
	return f.Dim(m.message + " cancelled")
}

// Select asks the user to pick one option and reports whether one was
// chosen. Interactive prompters use an arrow-key list with incremental
// filtering; others print a numbered list and read one line.
func Select[T any](p *Prompter, message string, options []Option[T], defaultIndex int) (T, bool, error) {
	var zero T
	if len(options) == 0 {
		return zero, false, nil
	}
	defaultIndex = max(0, min(defaultIndex, len(options)-1))

	if !p.interactive {
		return options[selectByLine(p, message, options, defaultIndex)].Value, true, nil
	}

	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.Label
	}

	m := newListModel(message, labels, defaultIndex)
	if err := runPicker(p, m); err != nil {
		return zero, false, err
	}
	idx, ok := m.selected()
	if m.st != stateSelected || !ok {
		return zero, false, nil
	}
	return options[idx].Value, true, nil
}

// selectByLine accepts an option label, a 1-based number or an empty line
// for the default. Anything else falls back to the default with a notice.
func selectByLine[T any](p *Prompter, message string, options []Option[T], def int) int {
	p.printf("%s\n", message)
	for i, o := range options {
		marker := " "
		if i == def {
			marker = ">"
		}
		p.printf("  %s %d. %s\n", marker, i+1, o.Label)
	}
	p.printf("\n")

	defLabel := options[def].Label
	line, err := p.lines.ReadLine(fmt.Sprintf("Select option [%s]: ", defLabel))
	if err != nil {
		return def
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	for i, o := range options {
		if strings.EqualFold(o.Label, line) {
			return i
		}
	}
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
		return n - 1
	}

	p.printf("Invalid selection. Using default: %s\n", defLabel)
	return def
}
