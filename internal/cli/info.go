package cli

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// InfoCmd returns the info command.
func InfoCmd(app *App) *Command {
	return &Command{
		Flags:   flag.NewFlagSet("info", flag.ContinueOnError),
		Usage:   "info <id>",
		Aliases: []string{"i"},
		Short:   "Show every detail of one reminder",
		Long:    "Show every field of one reminder, with its notes rendered as Markdown.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			switch len(args) {
			case 0:
				return errNoArgs("a reminder number or ID")
			case 1:
			default:
				return errors.New("info takes exactly one reminder number or ID")
			}

			s, all, err := app.allReminders(ctx)
			if err != nil {
				return err
			}
			ids, err := app.resolve(ctx, o, args, all)
			if err != nil {
				return err
			}

			r, err := s.Reminder(ctx, ids[0])
			if err != nil {
				return fmt.Errorf("failed to load reminder: %w", err)
			}
			app.render.PrintReminderDetail(r)
			return nil
		},
	}
}
