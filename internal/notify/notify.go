// Package notify raises desktop notifications for reminders that are overdue
// or about to fall due.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/go-logr/logr"

	"github.com/notexe/remind/internal/reminder"
)

// SendFunc delivers one notification.
type SendFunc func(title, message string) error

// Desktop sends through the platform notification service.
func Desktop(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Source supplies the reminders to check. reminder.Store satisfies it.
type Source interface {
	Reminders(ctx context.Context, list string) ([]reminder.Reminder, error)
}

// Notifier checks its source and announces each reminder at most once per
// process.
type Notifier struct {
	source    Source
	send      SendFunc
	lookahead time.Duration
	now       func() time.Time
	notified  map[string]bool
}

type Option func(*Notifier)

func WithSender(fn SendFunc) Option {
	return func(n *Notifier) { n.send = fn }
}

func WithClock(now func() time.Time) Option {
	return func(n *Notifier) { n.now = now }
}

// New creates a Notifier announcing incomplete reminders that are overdue or
// due within lookahead.
func New(source Source, lookahead time.Duration, opts ...Option) *Notifier {
	n := &Notifier{
		source:    source,
		send:      Desktop,
		lookahead: lookahead,
		now:       time.Now,
		notified:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Due returns the incomplete reminders that are overdue or due within the
// lookahead window, in display order.
func (n *Notifier) Due(ctx context.Context) ([]reminder.Reminder, error) {
	all, err := n.source.Reminders(ctx, "")
	if err != nil {
		return nil, err
	}

	now := n.now()
	horizon := now.Add(n.lookahead)

	var due []reminder.Reminder
	for _, r := range all {
		if r.Completed || r.Due == nil || r.Due.After(horizon) {
			continue
		}
		due = append(due, r)
	}
	return reminder.Sort(due), nil
}

// Check announces every due reminder not announced before and returns how
// many notifications went out. A failed send is logged and retried on the
// next check.
func (n *Notifier) Check(ctx context.Context) (int, error) {
	log := logr.FromContextOrDiscard(ctx).WithName("notify")

	due, err := n.Due(ctx)
	if err != nil {
		return 0, err
	}

	now := n.now()
	sent := 0
	for _, r := range due {
		if n.notified[r.ID] {
			continue
		}

		title, message := compose(r, now)
		if err := n.send(title, message); err != nil {
			log.Error(err, "notification failed", "id", r.ID)
			continue
		}
		n.notified[r.ID] = true
		sent++
	}

	log.V(1).Info("checked reminders", "due", len(due), "sent", sent)
	return sent, nil
}

// Run checks immediately and then every interval until ctx is cancelled.
func (n *Notifier) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("notify interval must be positive, got %s", interval)
	}

	log := logr.FromContextOrDiscard(ctx).WithName("notify")
	log.Info("started", "interval", interval.String())

	n.tick(ctx, log)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return nil
		case <-ticker.C:
			n.tick(ctx, log)
		}
	}
}

func (n *Notifier) tick(ctx context.Context, log logr.Logger) {
	if _, err := n.Check(ctx); err != nil {
		log.Error(err, "check failed")
	}
}

func compose(r reminder.Reminder, now time.Time) (string, string) {
	title := "Reminder due"
	if r.IsOverdue(now) {
		title = "Reminder overdue"
	}

	message := fmt.Sprintf("%s (%s), due %s", r.Title, r.List, r.Due.Format("Jan 2 15:04"))
	if r.List == "" {
		message = fmt.Sprintf("%s, due %s", r.Title, r.Due.Format("Jan 2 15:04"))
	}
	return title, message
}
