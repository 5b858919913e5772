package reminder

import (
	"strings"
	"time"

	"github.com/notexe/remind/internal/dateparse"
)

// TimeFilter selects reminders for the show command. The set is closed:
// Today, Tomorrow, ThisWeek, Overdue, Flagged, Upcoming and OnDate.
type TimeFilter interface {
	// Title is the heading printed above the results.
	Title() string
	// Match reports whether r belongs in the view at time now.
	Match(r Reminder, now time.Time) bool

	timeFilter()
}

type (
	// Today holds incomplete reminders due today or earlier.
	Today struct{}
	// Tomorrow holds incomplete reminders due tomorrow.
	Tomorrow struct{}
	// ThisWeek holds incomplete reminders due in the current Monday-based week.
	ThisWeek struct{}
	// Overdue holds incomplete reminders due before the start of today.
	Overdue struct{}
	// Flagged holds incomplete reminders with any priority.
	Flagged struct{}
	// Upcoming holds every incomplete reminder with a due date.
	Upcoming struct{}
	// OnDate holds incomplete reminders due on a given calendar day.
	OnDate struct{ Date time.Time }
)

func (Today) timeFilter()    {}
func (Tomorrow) timeFilter() {}
func (ThisWeek) timeFilter() {}
func (Overdue) timeFilter()  {}
func (Flagged) timeFilter()  {}
func (Upcoming) timeFilter() {}
func (OnDate) timeFilter()   {}

func (Today) Title() string    { return "Today's Tasks" }
func (Tomorrow) Title() string { return "Tomorrow's Tasks" }
func (ThisWeek) Title() string { return "This Week's Tasks" }
func (Overdue) Title() string  { return "Overdue Tasks" }
func (Flagged) Title() string  { return "Flagged Tasks" }
func (Upcoming) Title() string { return "Upcoming Tasks" }
func (f OnDate) Title() string { return "Tasks for " + f.Date.Format("Jan 2, 2006") }

func (Today) Match(r Reminder, now time.Time) bool {
	return pendingWithDue(r) && r.Due.Before(dateparse.StartOfDay(now).AddDate(0, 0, 1))
}

func (Tomorrow) Match(r Reminder, now time.Time) bool {
	return pendingWithDue(r) && dateparse.DaysBetween(now, *r.Due) == 1
}

func (ThisWeek) Match(r Reminder, now time.Time) bool {
	if !pendingWithDue(r) {
		return false
	}
	start := startOfWeek(now)
	return !r.Due.Before(start) && r.Due.Before(start.AddDate(0, 0, 7))
}

func (Overdue) Match(r Reminder, now time.Time) bool {
	return pendingWithDue(r) && r.Due.Before(dateparse.StartOfDay(now))
}

func (Flagged) Match(r Reminder, _ time.Time) bool {
	return !r.Completed && r.Priority != PriorityNone
}

func (Upcoming) Match(r Reminder, _ time.Time) bool {
	return pendingWithDue(r)
}

func (f OnDate) Match(r Reminder, _ time.Time) bool {
	return pendingWithDue(r) && dateparse.DaysBetween(f.Date, *r.Due) == 0
}

func pendingWithDue(r Reminder) bool {
	return !r.Completed && r.Due != nil
}

func startOfWeek(now time.Time) time.Time {
	day := dateparse.StartOfDay(now)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// ParseFilter maps the first show argument to a filter. Unknown words and
// no arguments mean Today.
func ParseFilter(args []string) TimeFilter {
	if len(args) == 0 {
		return Today{}
	}
	switch strings.ToLower(args[0]) {
	case "today":
		return Today{}
	case "tomorrow", "t":
		return Tomorrow{}
	case "week", "w":
		return ThisWeek{}
	case "overdue", "o":
		return Overdue{}
	case "flag", "flagged", "f":
		return Flagged{}
	case "upcoming", "u":
		return Upcoming{}
	}
	if d, err := dateparse.ParseShort(args[0]); err == nil {
		return OnDate{Date: d}
	}
	return Today{}
}

// Apply keeps the reminders matching f.
func Apply(f TimeFilter, reminders []Reminder, now time.Time) []Reminder {
	var out []Reminder
	for _, r := range reminders {
		if f.Match(r, now) {
			out = append(out, r)
		}
	}
	return out
}
