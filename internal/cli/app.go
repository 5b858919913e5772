package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/notexe/remind/internal/config"
	"github.com/notexe/remind/internal/reminder"
	"github.com/notexe/remind/internal/terminal"
	"github.com/notexe/remind/internal/ui"
)

// App holds what every command needs for one invocation. The store is
// opened on first use and closed by Close.
type App struct {
	cfg        *config.Config
	configPath string
	term       *terminal.Terminal
	fmt        *ui.Formatter
	render     *ui.Renderer
	prompt     *ui.Prompter
	now        func() time.Time

	store reminder.Store
}

func newApp(cfg *config.Config, configPath string, term *terminal.Terminal, interactive bool) *App {
	f := ui.NewFormatter(cfg.UI.ColoredOutput)
	return &App{
		cfg:        cfg,
		configPath: configPath,
		term:       term,
		fmt:        f,
		render:     ui.NewRenderer(term.Out(), f, ui.WithWidths(cfg.UI.TitleWidth, cfg.UI.ListWidth)),
		prompt:     ui.NewPrompter(term, f, ui.WithInteractive(interactive)),
		now:        time.Now,
	}
}

// openStore opens the configured database and acquires access to it.
func (a *App) openStore(ctx context.Context) (reminder.Store, error) {
	return reminder.SQLiteOpener(a.cfg.Store.Path, reminder.WithLockTimeout(a.cfg.LockTimeout()))(ctx)
}

// Store returns the invocation's store, opening it on first use.
func (a *App) Store(ctx context.Context) (reminder.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	s, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	a.store = s
	return s, nil
}

func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// allReminders is the candidate set display numbers refer to.
func (a *App) allReminders(ctx context.Context) (reminder.Store, []reminder.Reminder, error) {
	s, err := a.Store(ctx)
	if err != nil {
		return nil, nil, err
	}
	all, err := s.Reminders(ctx, "")
	if err != nil {
		return nil, nil, err
	}
	return s, all, nil
}

// resolve maps inputs to identifiers and reports what could not be
// resolved. It fails only when nothing resolved.
func (a *App) resolve(ctx context.Context, o *IO, inputs []string, all []reminder.Reminder) ([]string, error) {
	res := reminder.ResolveIDs(inputs, all)
	logr.FromContextOrDiscard(ctx).V(1).Info("resolved ids",
		"inputs", len(inputs), "resolved", len(res.IDs), "ambiguous", len(res.Ambiguous))

	for _, amb := range res.Ambiguous {
		o.Warn("Ambiguous ID '%s' matches multiple reminders:", amb.Input)
		for _, m := range amb.Matches {
			o.ErrPrintln(fmt.Sprintf("  - %s: %s", shortRef(m.ID), m.Title))
		}
	}

	if len(res.IDs) == 0 {
		o.ErrPrintln("Use 'remind show' to see available reminders with their numbers")
		return nil, fmt.Errorf("no valid reminder numbers or IDs found")
	}
	if !res.Complete(len(inputs)) {
		o.Warn("Only %d of %d inputs could be resolved", len(res.IDs), len(inputs))
	}
	return res.UniqueIDs(), nil
}

func shortRef(id string) string {
	r := []rune(id)
	if len(r) > 8 {
		return string(r[:8])
	}
	return id
}

// reportFailures prints per-item batch failures and returns how many
// items succeeded.
func reportFailures(o *IO, ids []string, failures []reminder.ItemError) int {
	for _, f := range failures {
		o.Warn("%v", f)
	}
	return len(ids) - len(failures)
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
