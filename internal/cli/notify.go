package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/notexe/remind/internal/notify"
	"github.com/notexe/remind/internal/reminder"
)

// NotifyCmd returns the notify command.
func NotifyCmd(app *App) *Command {
	fs := flag.NewFlagSet("notify", flag.ContinueOnError)
	watch := fs.BoolP("watch", "w", false, "Keep running and check every notify.interval seconds")

	return &Command{
		Flags: fs,
		Usage: "notify [flags]",
		Short: "Send desktop notifications for due reminders",
		Long: `Send a desktop notification for every incomplete reminder that is overdue
or due within notify.lookahead seconds. With --watch the check repeats until
interrupted; each reminder is announced once.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			if *watch {
				n := notify.New(reminder.NewOnDemand(app.openStore), app.cfg.NotifyLookahead())
				return n.Run(ctx, app.cfg.NotifyInterval())
			}

			s, err := app.Store(ctx)
			if err != nil {
				return err
			}
			sent, err := notify.New(s, app.cfg.NotifyLookahead()).Check(ctx)
			if err != nil {
				return err
			}
			if sent == 0 {
				o.Info("Nothing due")
				return nil
			}
			o.Success("Sent %s", plural(sent, "notification", "notifications"))
			return nil
		},
	}
}
