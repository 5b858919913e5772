package reminder

import (
	"fmt"
	"strings"
	"time"
)

// Priority is an ordered level: none < low < medium < high. The numeric
// values are what the store persists.
type Priority int

const (
	PriorityNone   Priority = 0
	PriorityLow    Priority = 1
	PriorityMedium Priority = 5
	PriorityHigh   Priority = 9
)

// Priorities lists every level from lowest to highest.
var Priorities = []Priority{PriorityNone, PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return "none"
	}
}

// DisplayName is the capitalized label used in pickers.
func (p Priority) DisplayName() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return "None"
	}
}

// Tag is the short marker shown in listings, empty for PriorityNone.
func (p Priority) Tag() string {
	if p == PriorityNone {
		return ""
	}
	return "!" + p.String()
}

// ParsePriority accepts a level name, case-insensitively. The empty string
// is PriorityNone.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return PriorityNone, nil
	case "low", "l":
		return PriorityLow, nil
	case "medium", "med", "m":
		return PriorityMedium, nil
	case "high", "h":
		return PriorityHigh, nil
	}
	return PriorityNone, fmt.Errorf("unknown priority %q (use none, low, medium or high)", s)
}

// Reminder is a single task as read from the store.
type Reminder struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Notes       string     `json:"notes,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	Due         *time.Time `json:"due,omitempty"`
	List        string     `json:"list,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ShortID is the first four characters of the identifier.
func (r Reminder) ShortID() string {
	return prefix(r.ID, 4)
}

// IsOverdue reports whether the reminder is incomplete and due before now.
func (r Reminder) IsOverdue(now time.Time) bool {
	return !r.Completed && r.Due != nil && r.Due.Before(now)
}

// List is a named group of reminders with counts derived at query time.
type List struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Protected     bool   `json:"protected,omitempty"`
	ReminderCount int    `json:"reminder_count"`
	OverdueCount  int    `json:"overdue_count"`
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
