package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Bright cyan
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // Warm yellow

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")). // Green
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("215")). // Orange
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	HintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	AccentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("147")) // Light purple

	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	OverdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	DoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")). // Soft blue border
			Padding(0, 1)
)

// Formatter applies the palette when colour is enabled and passes text
// through untouched otherwise.
type Formatter struct {
	colored bool
}

func NewFormatter(colored bool) *Formatter {
	return &Formatter{colored: colored}
}

func (f *Formatter) Colored() bool { return f.colored }

func (f *Formatter) style(s lipgloss.Style, text string) string {
	if !f.colored {
		return text
	}
	return s.Render(text)
}

func (f *Formatter) Success(msg string) string {
	return f.style(SuccessStyle, "✓ ") + msg
}

func (f *Formatter) Error(err error) string {
	return f.style(ErrorStyle, "✗ ") + err.Error()
}

func (f *Formatter) Info(msg string) string {
	return f.style(InfoStyle, "› "+msg)
}

func (f *Formatter) Warning(msg string) string {
	return f.style(WarningStyle, "! ") + msg
}

func (f *Formatter) Header(text string) string  { return f.style(HeaderStyle, text) }
func (f *Formatter) Dim(text string) string     { return f.style(DimStyle, text) }
func (f *Formatter) Hint(text string) string    { return f.style(HintStyle, text) }
func (f *Formatter) Accent(text string) string  { return f.style(AccentStyle, text) }
func (f *Formatter) Cursor(text string) string  { return f.style(CursorStyle, text) }
func (f *Formatter) Overdue(text string) string { return f.style(OverdueStyle, text) }
func (f *Formatter) Done(text string) string    { return f.style(DoneStyle, text) }
func (f *Formatter) Check(text string) string   { return f.style(SuccessStyle, text) }

// Box wraps content in a rounded border under a header.
func (f *Formatter) Box(title, content string) string {
	if !f.colored {
		return title + "\n" + content
	}
	return HeaderStyle.Render(title) + "\n" + BoxStyle.Render(content)
}
