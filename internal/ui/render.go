package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"

	"github.com/notexe/remind/internal/reminder"
)

const (
	DefaultTitleWidth = 40
	DefaultListWidth  = 24

	fieldSep = " · "
)

// Renderer prints lists and reminders as aligned text rows.
type Renderer struct {
	out        io.Writer
	fmt        *Formatter
	now        func() time.Time
	titleWidth int
	listWidth  int
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithWidths caps the reminder title and list title columns. Non-positive
// values keep the defaults.
func WithWidths(title, list int) RendererOption {
	return func(r *Renderer) {
		if title > 0 {
			r.titleWidth = title
		}
		if list > 0 {
			r.listWidth = list
		}
	}
}

// WithRenderClock replaces time.Now for due-date labels.
func WithRenderClock(now func() time.Time) RendererOption {
	return func(r *Renderer) { r.now = now }
}

func NewRenderer(out io.Writer, f *Formatter, opts ...RendererOption) *Renderer {
	r := &Renderer{
		out:        out,
		fmt:        f,
		now:        time.Now,
		titleWidth: DefaultTitleWidth,
		listWidth:  DefaultListWidth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) println(s string) {
	fmt.Fprintln(r.out, s)
}

// PrintSuccess, PrintError, PrintInfo and PrintWarning write one status line.
func (r *Renderer) PrintSuccess(msg string) { r.println(r.fmt.Success(msg)) }
func (r *Renderer) PrintError(err error)    { r.println(r.fmt.Error(err)) }
func (r *Renderer) PrintInfo(msg string)    { r.println(r.fmt.Info(msg)) }
func (r *Renderer) PrintWarning(msg string) { r.println(r.fmt.Warning(msg)) }

// column truncates s to width display cells with an ellipsis and pads it.
func column(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func widest(values []string, limit int) int {
	w := 0
	for _, v := range values {
		w = max(w, runewidth.StringWidth(v))
	}
	return min(w, limit)
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func (r *Renderer) PrintLists(lists []reminder.List) {
	if len(lists) == 0 {
		r.println("No reminder lists found")
		return
	}

	titles := make([]string, len(lists))
	for i, l := range lists {
		titles[i] = l.Title
	}
	width := widest(titles, r.listWidth)

	for _, l := range lists {
		line := column(l.Title, width) + "  " + r.fmt.Dim("›") + " " + pluralize(l.ReminderCount, "reminder")
		if l.OverdueCount > 0 {
			line += " " + r.fmt.Overdue(fmt.Sprintf("(%d overdue)", l.OverdueCount))
		}
		if l.Protected {
			line += " " + r.fmt.Dim("(system)")
		}
		r.println(line)
	}
}

// PrintReminders prints reminders in canonical order, numbered from 1, under
// an optional title.
func (r *Renderer) PrintReminders(reminders []reminder.Reminder, title string) {
	r.PrintMatching(reminders, nil, title)
}

// PrintMatching sorts all reminders, keeps the ones match accepts and prints
// each with its display number in the full sorted sequence, so the numbers
// shown are the ones ID resolution over all reminders understands. A nil
// match keeps everything.
func (r *Renderer) PrintMatching(all []reminder.Reminder, match func(reminder.Reminder) bool, title string) {
	if title != "" {
		r.println(r.fmt.Header(title))
		r.println("")
	}

	type row struct {
		num int
		rem reminder.Reminder
	}

	var rows []row
	for i, rem := range reminder.Sort(all) {
		if match == nil || match(rem) {
			rows = append(rows, row{num: i + 1, rem: rem})
		}
	}
	if len(rows) == 0 {
		r.println("No reminders found")
		return
	}

	now := r.now()

	titles := make([]string, len(rows))
	for i, row := range rows {
		titles[i] = row.rem.Title
	}
	width := widest(titles, r.titleWidth)
	numWidth := len(fmt.Sprintf("[%d]", rows[len(rows)-1].num))

	for _, row := range rows {
		num := runewidth.FillRight(fmt.Sprintf("[%d]", row.num), numWidth)
		r.println(fmt.Sprintf("%s %s %s  %s",
			r.fmt.Dim(num), r.glyph(row.rem, now), r.title(row.rem, width, now), r.fields(row.rem, now)))
	}
}

func (r *Renderer) glyph(rem reminder.Reminder, now time.Time) string {
	switch {
	case rem.Completed:
		return r.fmt.Check("✓")
	case rem.IsOverdue(now):
		return r.fmt.Overdue("●")
	}
	return "○"
}

func (r *Renderer) title(rem reminder.Reminder, width int, now time.Time) string {
	t := column(rem.Title, width)
	switch {
	case rem.Completed:
		return r.fmt.Done(t)
	case rem.IsOverdue(now):
		return r.fmt.Overdue(t)
	}
	return t
}

func (r *Renderer) fields(rem reminder.Reminder, now time.Time) string {
	var parts []string
	if id := rem.ShortID(); id != "" {
		parts = append(parts, r.fmt.Dim(id))
	}
	if rem.List != "" {
		parts = append(parts, rem.List)
	}
	if tag := rem.Priority.Tag(); tag != "" {
		parts = append(parts, r.fmt.Accent(tag))
	}
	switch {
	case rem.Due == nil:
		parts = append(parts, r.fmt.Dim("no date"))
	case rem.IsOverdue(now):
		parts = append(parts, r.fmt.Overdue(HumanizeDue(*rem.Due, now)))
	default:
		parts = append(parts, HumanizeDue(*rem.Due, now))
	}
	if strings.TrimSpace(rem.Notes) != "" {
		parts = append(parts, "✎")
	}
	return strings.Join(parts, fieldSep)
}

// PrintReminderDetail prints every field of one reminder, with its notes
// rendered as Markdown.
func (r *Renderer) PrintReminderDetail(rem reminder.Reminder) {
	now := r.now()

	status := "pending"
	switch {
	case rem.Completed:
		status = "completed"
	case rem.IsOverdue(now):
		status = "overdue"
	}

	due := "no date"
	if rem.Due != nil {
		due = fmt.Sprintf("%s (%s)", rem.Due.Format("Mon, Jan 2 2006 15:04"), HumanizeDue(*rem.Due, now))
	}

	rows := [][2]string{
		{"ID", rem.ID},
		{"List", rem.List},
		{"Status", status},
		{"Priority", rem.Priority.DisplayName()},
		{"Due", due},
	}
	if !rem.CreatedAt.IsZero() {
		rows = append(rows, [2]string{"Created", rem.CreatedAt.Format("Jan 2, 2006 15:04")})
	}
	if rem.CompletedAt != nil {
		rows = append(rows, [2]string{"Completed", rem.CompletedAt.Format("Jan 2, 2006 15:04")})
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%-10s %s", row[0]+":", row[1])
	}
	r.println(r.fmt.Box(rem.Title, b.String()))

	if notes := strings.TrimSpace(rem.Notes); notes != "" {
		r.println("")
		r.println(r.fmt.Header("Notes"))
		r.println(r.renderMarkdown(notes))
	}
}

func (r *Renderer) renderMarkdown(content string) string {
	style := glamour.WithStandardStyle("notty")
	if r.fmt.Colored() {
		style = glamour.WithAutoStyle()
	}

	renderer, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}
