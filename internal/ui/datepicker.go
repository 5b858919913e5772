package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/notexe/remind/internal/dateparse"
	"github.com/notexe/remind/internal/terminal"
)

// dateModel steps a calendar day with the arrow keys.
type dateModel struct {
	message string
	date    time.Time
	now     time.Time
	st      pickerState
}

var dateTransitions = map[terminal.KeyKind]func(*dateModel){
	terminal.KeyUp:     func(m *dateModel) { m.shift(1) },
	terminal.KeyDown:   func(m *dateModel) { m.shift(-1) },
	terminal.KeyRight:  func(m *dateModel) { m.shift(7) },
	terminal.KeyLeft:   func(m *dateModel) { m.shift(-7) },
	terminal.KeyEnter:  func(m *dateModel) { m.st = stateSelected },
	terminal.KeyEscape: func(m *dateModel) { m.st = stateCancelled },
}

func newDateModel(message string, initial, now time.Time) *dateModel {
	return &dateModel{message: message, date: dateparse.StartOfDay(initial), now: now}
}

func (m *dateModel) state() pickerState { return m.st }

func (m *dateModel) handle(k terminal.Key) {
	if fn, ok := dateTransitions[k.Kind]; ok {
		fn(m)
	}
}

func (m *dateModel) shift(days int) {
	m.st = stateNavigating
	m.date = m.date.AddDate(0, 0, days)
}

func (m *dateModel) view(f *Formatter) []string {
	return []string{
		f.Header("? " + m.message),
		fmt.Sprintf("  %s %s %s  %s",
			f.Dim("‹"), f.Accent(m.date.Format("Mon, Jan 2 2006")), f.Dim("›"),
			f.Dim("("+HumanizeDue(m.date, m.now)+")")),
		f.Hint("↑/↓ day · ←/→ week · enter select · esc cancel"),
	}
}

func (m *dateModel) summary(f *Formatter) string {
	if m.st == stateSelected {
		return f.Success(m.message + " " + m.date.Format("Jan 2, 2006"))
	}
	return f.Dim(m.message + " cancelled")
}

// DatePicker asks for a calendar day starting from initial and returns its
// start. Interactive prompters step days with up/down and weeks with
// left/right; others read a typed date, where an empty answer keeps initial
// and an unparseable one falls back to it with a notice.
func DatePicker(p *Prompter, message string, initial time.Time) (time.Time, bool, error) {
	now := p.now()
	if !p.interactive {
		return dateByLine(p, message, dateparse.StartOfDay(initial), now), true, nil
	}

	m := newDateModel(message, initial, now)
	if err := runPicker(p, m); err != nil {
		return time.Time{}, false, err
	}
	if m.st != stateSelected {
		return time.Time{}, false, nil
	}
	return m.date, true, nil
}

func dateByLine(p *Prompter, message string, initial, now time.Time) time.Time {
	line, err := p.lines.ReadLine(fmt.Sprintf("%s [%s]: ", message, initial.Format("2006-01-02")))
	if err != nil {
		return initial
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return initial
	}

	d, err := dateparse.ParseNatural(line, now)
	if err != nil {
		p.printf("%s\n", p.fmt.Warning(fmt.Sprintf("Could not understand %q. Using %s.", line, initial.Format("2006-01-02"))))
		return initial
	}
	return d
}
