package reminder_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notexe/remind/internal/reminder"
)

func TestOnDemandReleasesLockBetweenCalls(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reminders.db")
	open := reminder.SQLiteOpener(path, reminder.WithLockTimeout(200*time.Millisecond))

	d := reminder.NewOnDemand(open)
	require.NoError(t, d.RequestAccess(ctx))

	_, err := d.CreateList(ctx, "Work")
	require.NoError(t, err)
	_, err = d.CreateReminder(ctx, reminder.Reminder{Title: "Report"}, "Work")
	require.NoError(t, err)

	// Another process can take the store between calls.
	other, err := open(ctx)
	require.NoError(t, err)
	rs, err := other.Reminders(ctx, "Work")
	require.NoError(t, err)
	require.Len(t, rs, 1)

	// While it holds the lock, on-demand calls are refused.
	_, err = d.Lists(ctx)
	assert.ErrorIs(t, err, reminder.ErrAccessDenied)
	require.NoError(t, other.Close())

	failures, err := d.CompleteReminders(ctx, []string{rs[0].ID, "missing"})
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0], reminder.ErrReminderNotFound)

	got, err := d.Reminder(ctx, rs[0].ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	require.NoError(t, d.RenameList(ctx, "Work", "Office"))
	require.NoError(t, d.DeleteList(ctx, "Office"))
	assert.NoError(t, d.Close())
}
