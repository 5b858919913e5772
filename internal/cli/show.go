package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/notexe/remind/internal/reminder"
)

// ShowCmd returns the show command, the default when no command is given.
func ShowCmd(app *App) *Command {
	return &Command{
		Flags: flag.NewFlagSet("show", flag.ContinueOnError),
		Usage: "show [filter]",
		Short: "Show reminders due today or matching a filter",
		Long: `Show incomplete reminders matching a time filter. Filters:
  today (default), tomorrow|t, week|w, overdue|o, flag|f, upcoming|u,
  or a date as DD-MM-YY.
Numbers in brackets can be passed to complete, delete and info.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execShow(ctx, app, o, args)
		},
	}
}

func execShow(ctx context.Context, app *App, o *IO, args []string) error {
	if len(args) > 0 && !isShowArg(args[0]) {
		o.Warn("Unknown filter '%s', showing today", args[0])
	}
	filter := reminder.ParseFilter(args)

	_, all, err := app.allReminders(ctx)
	if err != nil {
		return err
	}

	now := app.now()
	app.render.PrintMatching(all, func(r reminder.Reminder) bool {
		return filter.Match(r, now)
	}, filter.Title())
	return nil
}

// LsCmd returns the ls command.
func LsCmd(app *App) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	showAll := fs.BoolP("all", "a", false, "Include completed reminders")

	return &Command{
		Flags: fs,
		Usage: "ls [list] [flags]",
		Short: "List reminders, optionally of one list",
		Long:  "List incomplete reminders of every list, or of the named list.",
		Exec: func(ctx context.Context, _ *IO, args []string) error {
			return execLs(ctx, app, args, *showAll)
		},
	}
}

func execLs(ctx context.Context, app *App, args []string, showAll bool) error {
	s, all, err := app.allReminders(ctx)
	if err != nil {
		return err
	}

	title := "All Reminders"
	inList := func(reminder.Reminder) bool { return true }

	if name := joinArgs(args); name != "" {
		listed, err := s.Reminders(ctx, name)
		if err != nil {
			return err
		}
		ids := make(map[string]bool, len(listed))
		for _, r := range listed {
			ids[r.ID] = true
		}
		title = name
		inList = func(r reminder.Reminder) bool { return ids[r.ID] }
	}

	app.render.PrintMatching(all, func(r reminder.Reminder) bool {
		return inList(r) && (showAll || !r.Completed)
	}, title)
	return nil
}
