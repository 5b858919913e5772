package cli_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowEmptyStore(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)
	assert.Equal(t, "Today's Tasks\n\nNo reminders found\n", c.MustRun())
	assert.Equal(t, "Today's Tasks\n\nNo reminders found\n", c.MustRun("show"))
}

func TestShowFilterWithoutCommand(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)
	c.MustRun("add", "Old bill", "--due", "yesterday")
	c.MustRun("add", "Someday")

	out := c.MustRun("overdue")
	assert.True(t, strings.HasPrefix(out, "Overdue Tasks\n\n"), out)
	assert.Contains(t, out, "Old bill")
	assert.NotContains(t, out, "Someday")

	out = c.MustRun("show", "05-06-24")
	assert.Contains(t, out, "Tasks for Jun 5, 2024")
}

func TestShowUnknownFilterWarns(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)
	stdout, stderr, code := c.Run("show", "someday")

	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "Unknown filter 'someday', showing today")
	assert.Contains(t, stdout, "Today's Tasks")
}

func TestAddDirect(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)
	out := c.MustRun("add", "Buy", "milk", "-d", "today", "-p", "high", "-n", "semi-skimmed")
	assert.Equal(t, "✓ Added reminder: Buy milk\n", out)

	out = c.MustRun("show")
	assert.Contains(t, out, "[1] ● Buy milk")
	assert.Contains(t, out, "Reminders · !high · today · ✎")
}

func TestAddDirectErrors(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stderr := c.MustFail("add", "Task", "--list", "Nope")
	assert.Contains(t, stderr, "✗ reminder list not found: Nope")

	stderr = c.MustFail("add", "Task", "--priority", "urgent")
	assert.Contains(t, stderr, "urgent")

	stderr = c.MustFail("add", "--list", "Reminders")
	assert.Contains(t, stderr, "title cannot be empty")
}

func TestAddUnparseableDueKeepsGoing(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)
	stdout, stderr, code := c.Run("add", "Task", "--due", "someday")

	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "Could not understand due date 'someday', adding without one")
	assert.Contains(t, stdout, "Added reminder: Task")
	assert.Contains(t, c.MustRun("ls"), "no date")
}

func TestAddInteractiveByLines(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)
	c.MustRun("list", "create", "Family")

	input := strings.Join([]string{
		"Call mum",         // title
		"family",           // list, by label
		"y",                // set a due date
		"2030-01-15",       // due date
		"Ask about sunday", // notes
		"4",                // priority, by number
	}, "\n") + "\n"

	stdout, stderr, code := c.RunWithInput(input, "add")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Select a list:")
	assert.Contains(t, stdout, "Select priority:")
	assert.Contains(t, stdout, "✓ Added reminder: Call mum")

	info := c.MustRun("info", "1")
	assert.Contains(t, info, "Call mum\n")
	assert.Contains(t, info, "List:      Family")
	assert.Contains(t, info, "Priority:  High")
	assert.Contains(t, info, "Due:       Tue, Jan 15 2030 00:00")
	assert.Contains(t, info, "sunday")
}

func TestAddInteractiveRequiresTitle(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)
	stdout, stderr, code := c.RunWithInput("\n", "add")

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "This field is required.")
	assert.Contains(t, stderr, "title is required")
}

func TestCompleteAndLs(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)
	c.MustRun("add", "First", "-d", "tomorrow")
	c.MustRun("add", "Second")

	assert.Equal(t, "✓ Completed reminder\n", c.MustRun("complete", "1"))

	out := c.MustRun("ls")
	assert.NotContains(t, out, "First")
	assert.Contains(t, out, "[1] ○ Second")

	out = c.MustRun("ls", "--all")
	assert.Contains(t, out, "[2] ✓ First")
}

func TestCompleteReportsResolution(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)
	c.MustRun("add", "One")
	c.MustRun("add", "Two")

	stdout, stderr, code := c.Run("c", "1", "2", "99")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "! Only 2 of 3 inputs could be resolved")
	assert.Equal(t, "✓ Completed 2 reminders\n", stdout)

	stderr = c.MustFail("complete", "zz")
	assert.Contains(t, stderr, "no valid reminder numbers or IDs found")
}

func TestRepeatedInputsActOnce(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)
	c.MustRun("add", "Once")
	c.MustRun("add", "Kept")

	stdout, stderr, code := c.Run("delete", "-y", "1", "1")
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stderr)
	assert.Equal(t, "✓ Deleted reminder\n", stdout)

	out := c.MustRun("ls")
	assert.NotContains(t, out, "Once")
	assert.Contains(t, out, "Kept")
}

func TestCompleteWithoutArgsShowsExamples(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)
	stdout, stderr, code := c.Run("complete")

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "Examples:")
	assert.Contains(t, stdout, "remind complete 4A83")
	assert.Contains(t, stderr, "please provide at least one reminder number or ID")
}

func TestDeleteConfirmation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		args       []string
		wantStdout string
		remaining  bool
	}{
		{name: "declined", input: "n\n", args: []string{"delete", "1"}, wantStdout: "Delete operation cancelled", remaining: true},
		{name: "default is no", input: "\n", args: []string{"delete", "1"}, wantStdout: "Delete operation cancelled", remaining: true},
		{name: "accepted", input: "y\n", args: []string{"delete", "1"}, wantStdout: "✓ Deleted reminder"},
		{name: "yes flag", args: []string{"d", "1", "-y"}, wantStdout: "✓ Deleted reminder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewCLI(t)
			c.MustRun("add", "Doomed")

			stdout, stderr, code := c.RunWithInput(tt.input, tt.args...)
			require.Equal(t, 0, code, stderr)
			assert.Contains(t, stdout, tt.wantStdout)

			assert.Equal(t, tt.remaining, strings.Contains(c.MustRun("ls"), "Doomed"))
		})
	}
}

func TestCompleteByIDPrefix(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)
	c.MustRun("add", "Target")

	info := c.MustRun("info", "1")
	var id string
	for _, line := range strings.Split(info, "\n") {
		if after, ok := strings.CutPrefix(line, "ID:"); ok {
			id = strings.TrimSpace(after)
		}
	}
	require.NotEmpty(t, id)

	assert.Equal(t, "✓ Completed reminder\n", c.MustRun("complete", strings.ToLower(id[:6])))
}

func TestInfoErrors(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)
	assert.Contains(t, c.MustFail("info"), "please provide a reminder number or ID")
	assert.Contains(t, c.MustFail("info", "1", "2"), "exactly one")
	assert.Contains(t, c.MustFail("i", "1"), "no valid reminder numbers or IDs found")
}

func TestNotifyNothingDue(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)
	c.MustRun("add", "Far away", "-d", "2099-01-01")

	assert.Equal(t, "› Nothing due\n", c.MustRun("notify"))
}
