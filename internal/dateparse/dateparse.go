// Package dateparse turns user-typed date strings into times.
//
// Three families are understood: literal layouts (ISO, US and European
// numeric forms with an optional time), the natural keywords today,
// tomorrow and yesterday, and the compact DD-MM-YY form used by filters.
// All parsing happens in the local time zone.
package dateparse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned when no known format matches.
var ErrInvalidDate = errors.New("invalid date")

// layouts are tried in order; the first match wins. Single-digit day and
// month values are accepted by every layout.
var layouts = []string{
	"2006-1-2",
	"1/2/2006",
	"2/1/2006",
	"2006-1-2 15:04",
	"1/2/2006 15:04",
}

// Parse tries each literal layout in order.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ParseNatural resolves today, tomorrow and yesterday relative to now
// (start of day), falling back to Parse for anything else.
func ParseNatural(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return StartOfDay(now), nil
	case "tomorrow":
		return StartOfDay(now).AddDate(0, 0, 1), nil
	case "yesterday":
		return StartOfDay(now).AddDate(0, 0, -1), nil
	}
	return Parse(s)
}

// ParseShort parses DD-MM-YY or DD-MM-YYYY. Two-digit years below 50 map
// to the 2000s, the rest of the two-digit range to the 1900s.
func ParseShort(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		nums[i] = n
	}

	day, month, year := nums[0], nums[1], nums[2]
	switch {
	case year < 50:
		year += 2000
	case year < 100:
		year += 1900
	}

	if month < 1 || month > 12 || day < 1 || day > daysIn(time.Month(month), year) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts calendar days from a to b; negative when b is earlier.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
