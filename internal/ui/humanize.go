package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/notexe/remind/internal/dateparse"
)

// HumanizeDue describes due relative to now in calendar days: today,
// tomorrow, yesterday, a weekday name within the coming week, "N days ago"
// within the past week, and a short month-day date otherwise.
func HumanizeDue(due, now time.Time) string {
	days := dateparse.DaysBetween(now, due)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days >= 2 && days <= 7:
		return strings.ToLower(due.Weekday().String())
	case days <= -2 && days >= -7:
		return fmt.Sprintf("%d days ago", -days)
	}
	return strings.ToLower(due.Format("Jan 2"))
}
