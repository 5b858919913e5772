package cli

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// ListCmd returns the list command and its subcommands.
func ListCmd(app *App) *Command {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	yes := fs.BoolP("yes", "y", false, "Delete without asking for confirmation")

	return &Command{
		Flags: fs,
		Usage: "list <show|create|delete|rename> [name...]",
		Short: "Manage reminder lists",
		Long: `Manage reminder lists:
  list show                 Show all lists with reminder counts
  list create <name>        Create a new list
  list delete <name>        Delete a list and its reminders
  list rename <old> <new>   Rename a list
The system list cannot be deleted or renamed.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return execListShow(ctx, app)
			}

			sub, rest := args[0], args[1:]
			switch sub {
			case "show", "ls":
				return execListShow(ctx, app)
			case "create", "new":
				return execListCreate(ctx, app, o, rest)
			case "delete", "rm":
				return execListDelete(ctx, app, o, rest, *yes)
			case "rename", "mv":
				return execListRename(ctx, app, o, rest)
			}
			return fmt.Errorf("unknown list command: %s", sub)
		},
	}
}

// ListsCmd returns "lists", shorthand for "list show".
func ListsCmd(app *App) *Command {
	return &Command{
		Flags: flag.NewFlagSet("lists", flag.ContinueOnError),
		Usage: "lists",
		Short: "Show all reminder lists",
		Exec: func(ctx context.Context, _ *IO, _ []string) error {
			return execListShow(ctx, app)
		},
	}
}

func execListShow(ctx context.Context, app *App) error {
	s, err := app.Store(ctx)
	if err != nil {
		return err
	}
	lists, err := s.Lists(ctx)
	if err != nil {
		return err
	}
	app.render.PrintLists(lists)
	return nil
}

func execListCreate(ctx context.Context, app *App, o *IO, args []string) error {
	name := joinArgs(args)
	if name == "" {
		return errNoArgs("a list name")
	}

	s, err := app.Store(ctx)
	if err != nil {
		return err
	}
	l, err := s.CreateList(ctx, name)
	if err != nil {
		return err
	}
	o.Success("Created list: %s", l.Title)
	return nil
}

func execListDelete(ctx context.Context, app *App, o *IO, args []string, yes bool) error {
	name := joinArgs(args)
	if name == "" {
		return errNoArgs("a list name")
	}

	s, err := app.Store(ctx)
	if err != nil {
		return err
	}

	if !yes && !app.prompt.Confirm(fmt.Sprintf("Delete list '%s' and all its reminders?", name), false) {
		o.Info("Delete operation cancelled")
		return nil
	}

	if err := s.DeleteList(ctx, name); err != nil {
		return err
	}
	o.Success("Deleted list: %s", name)
	return nil
}

func execListRename(ctx context.Context, app *App, o *IO, args []string) error {
	if len(args) != 2 {
		return errors.New("rename takes the current and the new list name")
	}

	s, err := app.Store(ctx)
	if err != nil {
		return err
	}
	if err := s.RenameList(ctx, args[0], args[1]); err != nil {
		return err
	}
	o.Success("Renamed list: %s → %s", args[0], args[1])
	return nil
}
