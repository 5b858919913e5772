package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"
)

// CompleteCmd returns the complete command.
func CompleteCmd(app *App) *Command {
	return &Command{
		Flags:   flag.NewFlagSet("complete", flag.ContinueOnError),
		Usage:   "complete <id>...",
		Aliases: []string{"c"},
		Short:   "Mark one or more reminders as complete",
		Long: `Mark reminders as complete. Each argument is a display number from
show/ls, a full ID, or an ID prefix of at least three characters.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execComplete(ctx, app, o, args)
		},
	}
}

func execComplete(ctx context.Context, app *App, o *IO, args []string) error {
	if len(args) == 0 {
		printExamples(o, "complete", "Complete")
		return errNoArgs("at least one reminder number or ID")
	}

	s, all, err := app.allReminders(ctx)
	if err != nil {
		return err
	}
	ids, err := app.resolve(ctx, o, args, all)
	if err != nil {
		return err
	}

	failures, err := s.CompleteReminders(ctx, ids)
	if err != nil {
		return err
	}
	done := reportFailures(o, ids, failures)
	if done == 0 {
		return fmt.Errorf("no reminders were completed")
	}

	o.Success("Completed %s", plural(done, "reminder", "reminders"))
	return nil
}

// DeleteCmd returns the delete command.
func DeleteCmd(app *App) *Command {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	yes := fs.BoolP("yes", "y", false, "Delete without asking for confirmation")

	return &Command{
		Flags:   fs,
		Usage:   "delete <id>... [flags]",
		Aliases: []string{"d"},
		Short:   "Delete one or more reminders",
		Long: `Delete reminders after confirmation. Arguments are resolved the same way
as for complete.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execDelete(ctx, app, o, args, *yes)
		},
	}
}

func execDelete(ctx context.Context, app *App, o *IO, args []string, yes bool) error {
	if len(args) == 0 {
		printExamples(o, "delete", "Delete")
		return errNoArgs("at least one reminder number or ID")
	}

	s, all, err := app.allReminders(ctx)
	if err != nil {
		return err
	}
	ids, err := app.resolve(ctx, o, args, all)
	if err != nil {
		return err
	}

	if !yes && !app.prompt.Confirm(fmt.Sprintf("Are you sure you want to delete %d reminder(s)?", len(ids)), false) {
		o.Info("Delete operation cancelled")
		return nil
	}

	failures, err := s.DeleteReminders(ctx, ids)
	if err != nil {
		return err
	}
	done := reportFailures(o, ids, failures)
	if done == 0 {
		return fmt.Errorf("no reminders were deleted")
	}

	o.Success("Deleted %s", plural(done, "reminder", "reminders"))
	return nil
}

func printExamples(o *IO, cmd, verb string) {
	o.Println("Examples:")
	o.Printf("  remind %-16s # %s reminder [1]\n", cmd+" 1", verb)
	o.Printf("  remind %-16s # %s multiple reminders\n", cmd+" 1 2 3", verb)
	o.Printf("  remind %-16s # %s by partial ID\n", cmd+" 4A83", verb)
}
