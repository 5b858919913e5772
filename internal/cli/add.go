package cli

import (
	"context"
	"errors"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/notexe/remind/internal/dateparse"
	"github.com/notexe/remind/internal/reminder"
	"github.com/notexe/remind/internal/ui"
)

type addOptions struct {
	list     string
	due      string
	priority string
	notes    string
}

// AddCmd returns the add command.
func AddCmd(app *App) *Command {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	var opts addOptions
	fs.StringVarP(&opts.list, "list", "l", "", "List name (default: configured or first list)")
	fs.StringVarP(&opts.due, "due", "d", "", "Due date (YYYY-MM-DD, 'today', 'tomorrow', ...)")
	fs.StringVarP(&opts.priority, "priority", "p", "", "Priority: none, low, medium, high")
	fs.StringVarP(&opts.notes, "notes", "n", "", "Notes")

	return &Command{
		Flags:   fs,
		Usage:   "add [title...] [flags]",
		Aliases: []string{"a"},
		Short:   "Add a new reminder",
		Long: `Add a new reminder. With a title the reminder is created directly from
the flags; without one you are asked for each field in turn.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) == 0 && !fs.Changed("list") && !fs.Changed("due") &&
				!fs.Changed("priority") && !fs.Changed("notes") {
				return execAddInteractive(ctx, app, o)
			}
			return execAddDirect(ctx, app, o, joinArgs(args), opts)
		},
	}
}

func execAddDirect(ctx context.Context, app *App, o *IO, title string, opts addOptions) error {
	priority, err := reminder.ParsePriority(opts.priority)
	if err != nil {
		return err
	}

	s, err := app.Store(ctx)
	if err != nil {
		return err
	}

	list := opts.list
	if list == "" {
		if list, err = defaultList(ctx, app, s); err != nil {
			return err
		}
	}

	r := reminder.Reminder{Title: title, Notes: opts.notes, Priority: priority}
	if opts.due != "" {
		due, err := dateparse.ParseNatural(opts.due, app.now())
		if err != nil {
			o.Warn("Could not understand due date '%s', adding without one", opts.due)
		} else {
			r.Due = &due
		}
	}

	created, err := s.CreateReminder(ctx, r, list)
	if err != nil {
		return err
	}
	o.Success("Added reminder: %s", created.Title)
	return nil
}

// defaultList is the configured default list, or the first list.
func defaultList(ctx context.Context, app *App, s reminder.Store) (string, error) {
	if app.cfg.Defaults.List != "" {
		return app.cfg.Defaults.List, nil
	}
	lists, err := s.Lists(ctx)
	if err != nil {
		return "", err
	}
	if len(lists) == 0 {
		return "", errors.New("no lists available, create a list first")
	}
	return lists[0].Title, nil
}

func execAddInteractive(ctx context.Context, app *App, o *IO) error {
	p := app.prompt

	title, err := p.Input("Reminder title", "", true)
	if err != nil {
		if errors.Is(err, ui.ErrNoInput) {
			return errors.New("title is required")
		}
		return err
	}

	s, err := app.Store(ctx)
	if err != nil {
		return err
	}
	lists, err := s.Lists(ctx)
	if err != nil {
		return err
	}
	if len(lists) == 0 {
		return errors.New("no lists available, create a list first")
	}

	options := make([]ui.Option[string], len(lists))
	def := 0
	for i, l := range lists {
		options[i] = ui.Option[string]{Label: l.Title, Value: l.Title}
		if l.Title == app.cfg.Defaults.List {
			def = i
		}
	}
	list, ok, err := ui.Select(p, "Select a list:", options, def)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("no list selected")
	}

	var due *time.Time
	if p.Confirm("Set a due date?", false) {
		d, ok, err := ui.DatePicker(p, "Select due date:", app.now())
		if err != nil {
			return err
		}
		if ok {
			due = &d
		}
	}

	notes, err := p.Input("Notes (optional)", "", false)
	if err != nil && !errors.Is(err, ui.ErrNoInput) {
		return err
	}

	priority, _, err := ui.Select(p, "Select priority:", priorityOptions(), 0)
	if err != nil {
		return err
	}

	created, err := s.CreateReminder(ctx, reminder.Reminder{
		Title:    title,
		Notes:    notes,
		Priority: priority,
		Due:      due,
	}, list)
	if err != nil {
		return err
	}
	o.Success("Added reminder: %s", created.Title)
	return nil
}

func priorityOptions() []ui.Option[reminder.Priority] {
	options := make([]ui.Option[reminder.Priority], len(reminder.Priorities))
	for i, pr := range reminder.Priorities {
		options[i] = ui.Option[reminder.Priority]{Label: pr.DisplayName(), Value: pr}
	}
	return options
}
