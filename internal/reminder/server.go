package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/notexe/remind/internal/dateparse"
)

const (
	serverName    = "remind"
	serverVersion = "1.0.0"
)

// Server exposes a Store over MCP.
type Server struct {
	mcpServer *server.MCPServer
	store     Store
	now       func() time.Time
}

// NewServer creates a Reminder MCP server backed by the given store. The
// store must already have been granted access.
func NewServer(store Store) *Server {
	s := &Server{
		store: store,
		now:   time.Now,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("list_lists",
			mcp.WithDescription("List reminder lists with their reminder and overdue counts"),
		),
		s.handleListLists,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_reminders",
			mcp.WithDescription("List reminders in display order. Each entry carries its display number, usable as an ID in other tools"),
			mcp.WithString("list", mcp.Description("Only reminders of this list")),
			mcp.WithString("filter", mcp.Description("today, tomorrow, week, overdue, flag, upcoming or DD-MM-YY")),
		),
		s.handleListReminders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("add_reminder",
			mcp.WithDescription("Add a reminder to a list"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Reminder title")),
			mcp.WithString("list", mcp.Description("List title (default: first list)")),
			mcp.WithString("due", mcp.Description("Due date: today, tomorrow, 2025-01-15, 01/15/2025 or 2025-01-15 09:00")),
			mcp.WithString("notes", mcp.Description("Optional notes")),
			mcp.WithString("priority", mcp.Description("none, low, medium or high (default: none)")),
		),
		s.handleAddReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("complete_reminders",
			mcp.WithDescription("Mark reminders as completed"),
			mcp.WithString("ids", mcp.Required(), mcp.Description("Space or comma separated display numbers, IDs or ID prefixes")),
		),
		s.handleCompleteReminders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("delete_reminders",
			mcp.WithDescription("Delete reminders permanently"),
			mcp.WithString("ids", mcp.Required(), mcp.Description("Space or comma separated display numbers, IDs or ID prefixes")),
		),
		s.handleDeleteReminders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("create_list",
			mcp.WithDescription("Create a reminder list"),
			mcp.WithString("title", mcp.Required(), mcp.Description("List title")),
		),
		s.handleCreateList,
	)
}

type numberedReminder struct {
	Number int `json:"number"`
	Reminder
}

func (s *Server) handleListLists(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lists, err := s.store.Lists(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list lists: %v", err)), nil
	}
	return jsonResult(lists), nil
}

func (s *Server) handleListReminders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := req.GetString("list", "")
	if list != "" {
		if err := s.requireList(ctx, list); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list reminders: %v", err)), nil
		}
	}

	all, err := s.store.Reminders(ctx, "")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list reminders: %v", err)), nil
	}

	var filter TimeFilter
	if f := req.GetString("filter", ""); f != "" {
		filter = ParseFilter([]string{f})
	}
	now := s.now()

	// Numbers are positions over all reminders so ResolveIDs accepts them.
	var out []numberedReminder
	for i, r := range Sort(all) {
		if list != "" && r.List != list {
			continue
		}
		if filter != nil && !filter.Match(r, now) {
			continue
		}
		out = append(out, numberedReminder{Number: i + 1, Reminder: r})
	}
	if len(out) == 0 {
		return mcp.NewToolResultText("No reminders found."), nil
	}
	return jsonResult(out), nil
}

func (s *Server) requireList(ctx context.Context, title string) error {
	lists, err := s.store.Lists(ctx)
	if err != nil {
		return err
	}
	for _, l := range lists {
		if l.Title == title {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrListNotFound, title)
}

func (s *Server) handleAddReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := strings.TrimSpace(req.GetString("title", ""))
	if title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	priority, err := ParsePriority(req.GetString("priority", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	r := Reminder{
		Title:    title,
		Notes:    req.GetString("notes", ""),
		Priority: priority,
	}
	var warning string
	if dueStr := req.GetString("due", ""); dueStr != "" {
		if due, err := dateparse.ParseNatural(dueStr, s.now()); err == nil {
			r.Due = &due
		} else {
			warning = fmt.Sprintf("Could not understand due date '%s', added without one.", dueStr)
		}
	}

	list := req.GetString("list", "")
	if list == "" {
		lists, err := s.store.Lists(ctx)
		if err != nil || len(lists) == 0 {
			return mcp.NewToolResultError("no reminder list available"), nil
		}
		list = lists[0].Title
	}

	added, err := s.store.CreateReminder(ctx, r, list)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add reminder: %v", err)), nil
	}
	res := jsonResult(added)
	if warning != "" {
		res.Content = append(res.Content, mcp.NewTextContent(warning))
	}
	return res, nil
}

func (s *Server) handleCompleteReminders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.applyToIDs(ctx, req, "completed", s.store.CompleteReminders)
}

func (s *Server) handleDeleteReminders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.applyToIDs(ctx, req, "deleted", s.store.DeleteReminders)
}

func (s *Server) applyToIDs(
	ctx context.Context,
	req mcp.CallToolRequest,
	verb string,
	apply func(context.Context, []string) ([]ItemError, error),
) (*mcp.CallToolResult, error) {
	inputs := strings.FieldsFunc(req.GetString("ids", ""), func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(inputs) == 0 {
		return mcp.NewToolResultError("ids is required"), nil
	}

	reminders, err := s.store.Reminders(ctx, "")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load reminders: %v", err)), nil
	}

	res := ResolveIDs(inputs, reminders)
	var b strings.Builder
	for _, a := range res.Ambiguous {
		fmt.Fprintf(&b, "Ambiguous ID '%s' matches %d reminders, skipped.\n", a.Input, len(a.Matches))
	}
	for _, u := range res.Unresolved {
		fmt.Fprintf(&b, "No reminder matches '%s'.\n", u)
	}
	if len(res.IDs) == 0 {
		b.WriteString("Nothing to do.")
		return mcp.NewToolResultError(b.String()), nil
	}

	ids := res.UniqueIDs()
	failures, err := apply(ctx, ids)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed: %v", err)), nil
	}
	for _, f := range failures {
		fmt.Fprintf(&b, "Failed: %v\n", f)
	}
	fmt.Fprintf(&b, "%d reminder(s) %s.", len(ids)-len(failures), verb)
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleCreateList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	l, err := s.store.CreateList(ctx, req.GetString("title", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create list: %v", err)), nil
	}
	return jsonResult(l), nil
}

func jsonResult(v any) *mcp.CallToolResult {
	output, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(output))
}
