package dateparse_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notexe/remind/internal/dateparse"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-10", day(2025, time.March, 10)},
		{"2025-3-5", day(2025, time.March, 5)},
		{"03/10/2025", day(2025, time.March, 10)},
		{"25/12/2025", day(2025, time.December, 25)},
		{"2025-03-10 14:30", time.Date(2025, time.March, 10, 14, 30, 0, 0, time.Local)},
		{"03/10/2025 09:15", time.Date(2025, time.March, 10, 9, 15, 0, 0, time.Local)},
		{"  2025-03-10  ", day(2025, time.March, 10)},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()

			got, err := dateparse.Parse(tc.in)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %v want %v", got, tc.want)
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "next tuesday", "2025-13-01", "32/13/2025"} {
		_, err := dateparse.Parse(in)
		require.ErrorIs(t, err, dateparse.ErrInvalidDate, in)
	}
}

func TestParseNatural(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 10, 15, 4, 5, 0, time.Local)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"today", day(2025, time.March, 10)},
		{"Tomorrow", day(2025, time.March, 11)},
		{" yesterday ", day(2025, time.March, 9)},
		{"2025-04-01", day(2025, time.April, 1)},
	}

	for _, tc := range tests {
		got, err := dateparse.ParseNatural(tc.in, now)
		require.NoError(t, err, tc.in)
		assert.True(t, tc.want.Equal(got), "%s: got %v want %v", tc.in, got, tc.want)
	}

	_, err := dateparse.ParseNatural("someday", now)
	require.ErrorIs(t, err, dateparse.ErrInvalidDate)
}

func TestParseShort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want time.Time
	}{
		{"05-06-24", day(2024, time.June, 5)},
		{"10-03-2025", day(2025, time.March, 10)},
		{"01-01-49", day(2049, time.January, 1)},
		{"01-01-50", day(1950, time.January, 1)},
		{"29-02-24", day(2024, time.February, 29)},
	}

	for _, tc := range tests {
		got, err := dateparse.ParseShort(tc.in)
		require.NoError(t, err, tc.in)
		assert.True(t, tc.want.Equal(got), "%s: got %v want %v", tc.in, got, tc.want)
	}

	for _, in := range []string{"32-01-24", "10-13-24", "29-02-23", "1-2", "aa-bb-cc"} {
		_, err := dateparse.ParseShort(in)
		require.ErrorIs(t, err, dateparse.ErrInvalidDate, in)
	}
}

func TestDaysBetween(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, time.March, 10, 23, 0, 0, 0, time.Local)

	assert.Equal(t, 0, dateparse.DaysBetween(base, day(2025, time.March, 10)))
	assert.Equal(t, 1, dateparse.DaysBetween(base, time.Date(2025, time.March, 11, 0, 30, 0, 0, time.Local)))
	assert.Equal(t, -7, dateparse.DaysBetween(base, day(2025, time.March, 3)))
}
