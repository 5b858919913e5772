// Command remind-mcp serves the reminders database over MCP.
//
// The server exposes tools for listing, adding, completing and deleting
// reminders and for creating lists, using the same database as remind.
//
// Usage:
//
//	./remind-mcp          # Start MCP server (stdio)
//	./remind-mcp --help   # Show help
//
// Environment:
//
//	REMIND_DB_PATH  Path to SQLite database (default: store.path from ~/.remind/config.yaml)
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/mark3labs/mcp-go/server"

	"github.com/notexe/remind/internal/config"
	"github.com/notexe/remind/internal/logging"
	"github.com/notexe/remind/internal/reminder"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			return
		}
	}

	cfg, err := config.Load(config.GetDefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	dbPath := cfg.Store.Path
	if p := os.Getenv("REMIND_DB_PATH"); p != "" {
		dbPath = config.ExpandPath(p)
	}

	log, closer, err := logging.Open(cfg.Log.File, cfg.Log.Verbosity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()
	log = log.WithName("mcp")

	// Each tool call opens the database and releases its lock again, so the
	// CLI keeps working while the server runs.
	store := reminder.NewOnDemand(
		reminder.SQLiteOpener(dbPath, reminder.WithLockTimeout(cfg.LockTimeout())))

	ctx := logr.NewContext(context.Background(), log)
	if err := store.RequestAccess(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	log.Info("serving", "db", dbPath)

	s := reminder.NewServer(store)

	err = server.ServeStdio(s.MCPServer(),
		server.WithStdioContextFunc(func(ctx context.Context) context.Context {
			return logr.NewContext(ctx, log)
		}))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`remind-mcp - reminder management via MCP protocol

USAGE:
    remind-mcp          Start MCP server (communicates via stdio)
    remind-mcp --help   Show this help

ENVIRONMENT:
    REMIND_DB_PATH  Path to SQLite database file
                    Default: store.path from ~/.remind/config.yaml
                    (~/.remind/reminders.db)

TOOLS:
    list_lists          Lists with reminder and overdue counts
    list_reminders      Reminders in display order (optional list and filter)
    add_reminder        Add a reminder (title, list, due, notes, priority)
    complete_reminders  Complete reminders by number, ID or ID prefix
    delete_reminders    Delete reminders by number, ID or ID prefix
    create_list         Create a reminder list

CONFIGURATION:
    Register with an MCP client, for example:
    {
      "mcpServers": {
        "remind": {
          "command": "/path/to/remind-mcp",
          "args": []
        }
      }
    }`)
}
