package reminder

import "context"

// Opener returns a store on which RequestAccess has succeeded.
type Opener func(ctx context.Context) (Store, error)

// OnDemand is a Store that opens the underlying store for every call and
// closes it again, so long-running processes hold the store lock only while
// a call is in flight.
type OnDemand struct {
	open Opener
}

var _ Store = (*OnDemand)(nil)

func NewOnDemand(open Opener) *OnDemand {
	return &OnDemand{open: open}
}

// SQLiteOpener opens the SQLite database at path and requests access.
func SQLiteOpener(path string, opts ...StoreOption) Opener {
	return func(ctx context.Context) (Store, error) {
		s, err := NewSQLiteStore(path, opts...)
		if err != nil {
			return nil, err
		}
		if err := s.RequestAccess(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	}
}

func with[T any](ctx context.Context, d *OnDemand, fn func(Store) (T, error)) (T, error) {
	s, err := d.open(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	defer s.Close()
	return fn(s)
}

// RequestAccess opens the store once to check that it is reachable.
func (d *OnDemand) RequestAccess(ctx context.Context) error {
	_, err := with(ctx, d, func(Store) (struct{}, error) { return struct{}{}, nil })
	return err
}

func (d *OnDemand) Lists(ctx context.Context) ([]List, error) {
	return with(ctx, d, func(s Store) ([]List, error) { return s.Lists(ctx) })
}

func (d *OnDemand) CreateList(ctx context.Context, title string) (List, error) {
	return with(ctx, d, func(s Store) (List, error) { return s.CreateList(ctx, title) })
}

func (d *OnDemand) DeleteList(ctx context.Context, title string) error {
	_, err := with(ctx, d, func(s Store) (struct{}, error) { return struct{}{}, s.DeleteList(ctx, title) })
	return err
}

func (d *OnDemand) RenameList(ctx context.Context, oldTitle, newTitle string) error {
	_, err := with(ctx, d, func(s Store) (struct{}, error) {
		return struct{}{}, s.RenameList(ctx, oldTitle, newTitle)
	})
	return err
}

func (d *OnDemand) Reminders(ctx context.Context, list string) ([]Reminder, error) {
	return with(ctx, d, func(s Store) ([]Reminder, error) { return s.Reminders(ctx, list) })
}

func (d *OnDemand) Reminder(ctx context.Context, id string) (Reminder, error) {
	return with(ctx, d, func(s Store) (Reminder, error) { return s.Reminder(ctx, id) })
}

func (d *OnDemand) CreateReminder(ctx context.Context, r Reminder, list string) (Reminder, error) {
	return with(ctx, d, func(s Store) (Reminder, error) { return s.CreateReminder(ctx, r, list) })
}

func (d *OnDemand) CompleteReminders(ctx context.Context, ids []string) ([]ItemError, error) {
	return with(ctx, d, func(s Store) ([]ItemError, error) { return s.CompleteReminders(ctx, ids) })
}

func (d *OnDemand) DeleteReminders(ctx context.Context, ids []string) ([]ItemError, error) {
	return with(ctx, d, func(s Store) ([]ItemError, error) { return s.DeleteReminders(ctx, ids) })
}

// Close is a no-op; every call closes what it opened.
func (d *OnDemand) Close() error { return nil }
