package reminder

import (
	"slices"
)

// Sort returns a copy of reminders in canonical display order:
// incomplete before completed, then earlier due dates first, dated before
// undated, and finally higher priority first. Equal elements keep their
// input order. A reminder's 1-based position here is its display number.
func Sort(reminders []Reminder) []Reminder {
	out := slices.Clone(reminders)
	slices.SortStableFunc(out, Compare)
	return out
}

// Compare orders two reminders the way Sort does.
func Compare(a, b Reminder) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}

	switch {
	case a.Due != nil && b.Due != nil:
		if c := a.Due.Compare(*b.Due); c != 0 {
			return c
		}
	case a.Due != nil:
		return -1
	case b.Due != nil:
		return 1
	}

	switch {
	case a.Priority > b.Priority:
		return -1
	case a.Priority < b.Priority:
		return 1
	}
	return 0
}
