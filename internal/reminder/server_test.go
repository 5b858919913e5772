package reminder

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *SQLiteStore) {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "reminders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.RequestAccess(context.Background()))

	s := NewServer(store)
	s.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local) }
	return s, store
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()

	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "unexpected content type %T", res.Content[0])
	return text.Text
}

func TestServerAddAndList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestServer(t)

	res, err := s.handleAddReminder(ctx, call(map[string]any{
		"title": "pay rent", "due": "tomorrow", "priority": "high",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var added Reminder
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &added))
	assert.Equal(t, "Reminders", added.List)
	assert.Equal(t, PriorityHigh, added.Priority)
	require.NotNil(t, added.Due)

	res, err = s.handleListReminders(ctx, call(map[string]any{"filter": "tomorrow"}))
	require.NoError(t, err)

	var listed []numberedReminder
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, 1, listed[0].Number)
	assert.Equal(t, added.ID, listed[0].ID)
}

func TestServerAddValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestServer(t)

	for _, args := range []map[string]any{
		{},
		{"title": "x", "priority": "urgent"},
		{"title": "x", "list": "Missing"},
	} {
		res, err := s.handleAddReminder(ctx, call(args))
		require.NoError(t, err)
		assert.True(t, res.IsError, "%v", args)
	}
}

func TestServerCompleteByDisplayNumber(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, store := newTestServer(t)

	first, err := store.CreateReminder(ctx, Reminder{Title: "first"}, "Reminders")
	require.NoError(t, err)
	_, err = store.CreateReminder(ctx, Reminder{Title: "second"}, "Reminders")
	require.NoError(t, err)

	res, err := s.handleCompleteReminders(ctx, call(map[string]any{"ids": "1, zz"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "No reminder matches 'zz'.")
	assert.Contains(t, resultText(t, res), "1 reminder(s) completed.")

	got, err := store.Reminder(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	res, err = s.handleDeleteReminders(ctx, call(map[string]any{"ids": "zz"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestServerLists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestServer(t)

	res, err := s.handleCreateList(ctx, call(map[string]any{"title": "Work"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	res, err = s.handleListLists(ctx, call(nil))
	require.NoError(t, err)

	var lists []List
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &lists))
	require.Len(t, lists, 2)
	assert.Equal(t, "Work", lists[1].Title)
}

func TestServerAddUnparseableDueKeepsGoing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, store := newTestServer(t)

	res, err := s.handleAddReminder(ctx, call(map[string]any{"title": "x", "due": "someday"}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var added Reminder
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &added))
	assert.Nil(t, added.Due)

	require.Len(t, res.Content, 2)
	warning, ok := res.Content[1].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "Could not understand due date 'someday', added without one.", warning.Text)

	all, err := store.Reminders(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestServerListedNumbersResolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, store := newTestServer(t)

	_, err := store.CreateList(ctx, "Work")
	require.NoError(t, err)

	today := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	tomorrow := time.Date(2025, 3, 11, 9, 0, 0, 0, time.Local)
	first, err := store.CreateReminder(ctx, Reminder{Title: "today one", Due: &today}, "Reminders")
	require.NoError(t, err)
	second, err := store.CreateReminder(ctx, Reminder{Title: "tomorrow one", Due: &tomorrow}, "Work")
	require.NoError(t, err)

	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "filter", args: map[string]any{"filter": "tomorrow"}},
		{name: "list", args: map[string]any{"list": "Work"}},
		{name: "list and filter", args: map[string]any{"list": "Work", "filter": "upcoming"}},
	}

	for _, tc := range tests {
		res, err := s.handleListReminders(ctx, call(tc.args))
		require.NoError(t, err, tc.name)
		require.False(t, res.IsError, tc.name)

		var listed []numberedReminder
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &listed), tc.name)
		require.Len(t, listed, 1, tc.name)
		assert.Equal(t, second.ID, listed[0].ID, tc.name)
		assert.Equal(t, 2, listed[0].Number, tc.name)
	}

	res, err := s.handleCompleteReminders(ctx, call(map[string]any{"ids": "2"}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	got, err := store.Reminder(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	got, err = store.Reminder(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
}

func TestServerListRemindersUnknownList(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)

	res, err := s.handleListReminders(context.Background(), call(map[string]any{"list": "Missing"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "reminder list not found")
}

func TestServerRepeatedIDsCountOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, store := newTestServer(t)

	_, err := store.CreateReminder(ctx, Reminder{Title: "only"}, "Reminders")
	require.NoError(t, err)

	res, err := s.handleDeleteReminders(ctx, call(map[string]any{"ids": "1 1"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "1 reminder(s) deleted.", resultText(t, res))
}
