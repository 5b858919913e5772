package reminder

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store is the reminders backend the commands talk to.
type Store interface {
	// RequestAccess must succeed before any other call.
	RequestAccess(ctx context.Context) error
	Lists(ctx context.Context) ([]List, error)
	CreateList(ctx context.Context, title string) (List, error)
	DeleteList(ctx context.Context, title string) error
	RenameList(ctx context.Context, oldTitle, newTitle string) error
	// Reminders returns the reminders of one list, or of every list when
	// list is empty.
	Reminders(ctx context.Context, list string) ([]Reminder, error)
	Reminder(ctx context.Context, id string) (Reminder, error)
	CreateReminder(ctx context.Context, r Reminder, list string) (Reminder, error)
	// CompleteReminders and DeleteReminders apply to every ID they can and
	// report the rest as ItemErrors. The error return is for failures
	// affecting the whole batch.
	CompleteReminders(ctx context.Context, ids []string) ([]ItemError, error)
	DeleteReminders(ctx context.Context, ids []string) ([]ItemError, error)
	Close() error
}

const (
	defaultLockTimeout = 3 * time.Second
	lockRetryDelay     = 50 * time.Millisecond
)

// SQLiteStore keeps reminders in a single SQLite file guarded by an
// advisory lock file next to it.
type SQLiteStore struct {
	path        string
	db          *sql.DB
	lock        *flock.Flock
	lockTimeout time.Duration
	now         func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// StoreOption configures a SQLiteStore.
type StoreOption func(*SQLiteStore)

// WithLockTimeout bounds how long RequestAccess waits for the lock.
func WithLockTimeout(d time.Duration) StoreOption {
	return func(s *SQLiteStore) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *SQLiteStore) { s.now = now }
}

// NewSQLiteStore opens the database at path, creating its directory if
// needed. The schema is created by RequestAccess.
func NewSQLiteStore(path string, opts ...StoreOption) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite only supports one writer
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{
		path:        path,
		db:          db,
		lockTimeout: defaultLockTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: path}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *SQLiteStore) RequestAccess(ctx context.Context) error {
	log := logr.FromContextOrDiscard(ctx).WithName("store")

	if s.lock == nil {
		lock := flock.New(s.path + ".lock")

		lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()

		locked, err := lock.TryLockContext(lockCtx, lockRetryDelay)
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
		if !locked {
			return fmt.Errorf("%w: %s is in use by another process", ErrAccessDenied, s.path)
		}
		s.lock = lock
	}

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}
	if err := s.migrate(ctx, log); err != nil {
		return err
	}

	log.V(1).Info("access granted", "path", s.path)
	return nil
}

func (s *SQLiteStore) migrate(ctx context.Context, log logr.Logger) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, fsys)
	if err != nil {
		return fmt.Errorf("failed to prepare migrations: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		log.V(1).Info("applied migration", "version", r.Source.Version)
	}
	return nil
}

// Close closes the database and releases the lock.
func (s *SQLiteStore) Close() error {
	err := s.db.Close()
	if s.lock != nil {
		if uerr := s.lock.Unlock(); uerr != nil && err == nil {
			err = uerr
		}
		s.lock = nil
	}
	return err
}

func (s *SQLiteStore) Lists(ctx context.Context) ([]List, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.title, l.protected,
		       COUNT(r.id),
		       COALESCE(SUM(CASE WHEN r.completed = 0 AND r.due_at IS NOT NULL AND r.due_at < ? THEN 1 ELSE 0 END), 0)
		FROM lists l
		LEFT JOIN reminders r ON r.list_id = l.id
		GROUP BY l.id
		ORDER BY l.rowid
	`, formatTime(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	defer rows.Close()

	var lists []List
	for rows.Next() {
		var l List
		if err := rows.Scan(&l.ID, &l.Title, &l.Protected, &l.ReminderCount, &l.OverdueCount); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

func (s *SQLiteStore) CreateList(ctx context.Context, title string) (List, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return List{}, OperationFailed("list name cannot be empty")
	}

	if _, err := s.findList(ctx, title); err == nil {
		return List{}, OperationFailed("list %q already exists", title)
	} else if !errors.Is(err, ErrListNotFound) {
		return List{}, err
	}

	l := List{ID: newID(), Title: title}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lists (id, title, protected, created_at) VALUES (?, ?, 0, ?)
	`, l.ID, l.Title, formatTime(s.now()))
	if err != nil {
		return List{}, fmt.Errorf("failed to create list: %w", err)
	}

	logr.FromContextOrDiscard(ctx).V(1).Info("created list", "id", l.ID, "title", l.Title)
	return l, nil
}

func (s *SQLiteStore) DeleteList(ctx context.Context, title string) error {
	l, err := s.findList(ctx, title)
	if err != nil {
		return err
	}
	if l.Protected {
		return OperationFailed("cannot delete system list %q", l.Title)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, l.ID); err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RenameList(ctx context.Context, oldTitle, newTitle string) error {
	l, err := s.findList(ctx, oldTitle)
	if err != nil {
		return err
	}
	if l.Protected {
		return OperationFailed("cannot modify system list %q", l.Title)
	}

	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return OperationFailed("list name cannot be empty")
	}
	if newTitle == l.Title {
		return nil
	}
	if _, err := s.findList(ctx, newTitle); err == nil {
		return OperationFailed("list %q already exists", newTitle)
	} else if !errors.Is(err, ErrListNotFound) {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `UPDATE lists SET title = ? WHERE id = ?`, newTitle, l.ID); err != nil {
		return fmt.Errorf("failed to rename list: %w", err)
	}
	return nil
}

func (s *SQLiteStore) findList(ctx context.Context, title string) (List, error) {
	var l List
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, protected FROM lists WHERE title = ?`, title,
	).Scan(&l.ID, &l.Title, &l.Protected)
	if errors.Is(err, sql.ErrNoRows) {
		return List{}, fmt.Errorf("%w: %s", ErrListNotFound, title)
	}
	if err != nil {
		return List{}, fmt.Errorf("failed to look up list: %w", err)
	}
	return l, nil
}

const selectReminders = `
	SELECT r.id, r.title, r.notes, r.completed, r.priority, r.due_at,
	       l.title, r.created_at, r.completed_at
	FROM reminders r
	JOIN lists l ON l.id = r.list_id
`

func (s *SQLiteStore) Reminders(ctx context.Context, list string) ([]Reminder, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if list == "" {
		rows, err = s.db.QueryContext(ctx, selectReminders+` ORDER BY r.rowid`)
	} else {
		l, ferr := s.findList(ctx, list)
		if ferr != nil {
			return nil, ferr
		}
		rows, err = s.db.QueryContext(ctx, selectReminders+` WHERE r.list_id = ? ORDER BY r.rowid`, l.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

func (s *SQLiteStore) Reminder(ctx context.Context, id string) (Reminder, error) {
	r, err := scanReminder(s.db.QueryRowContext(ctx, selectReminders+` WHERE r.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Reminder{}, fmt.Errorf("%w: %s", ErrReminderNotFound, id)
	}
	return r, err
}

func (s *SQLiteStore) CreateReminder(ctx context.Context, r Reminder, list string) (Reminder, error) {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return Reminder{}, OperationFailed("reminder title cannot be empty")
	}
	if !validPriority(r.Priority) {
		return Reminder{}, OperationFailed("invalid priority %d", int(r.Priority))
	}

	l, err := s.findList(ctx, list)
	if err != nil {
		return Reminder{}, err
	}

	r.ID = newID()
	r.List = l.Title
	r.Completed = false
	r.CompletedAt = nil
	r.CreatedAt = s.now()

	var due any
	if r.Due != nil {
		due = formatTime(*r.Due)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reminders (id, list_id, title, notes, completed, priority, due_at, created_at)
		VALUES (?, ?, ?, ?, 0, ?, ?, ?)
	`, r.ID, l.ID, r.Title, r.Notes, int(r.Priority), due, formatTime(r.CreatedAt))
	if err != nil {
		return Reminder{}, fmt.Errorf("failed to insert reminder: %w", err)
	}

	logr.FromContextOrDiscard(ctx).V(1).Info("created reminder", "id", r.ID, "list", r.List)
	return r, nil
}

func (s *SQLiteStore) CompleteReminders(ctx context.Context, ids []string) ([]ItemError, error) {
	completedAt := formatTime(s.now())
	return s.batch(ctx, ids, "complete", func(tx *sql.Tx, id string) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE reminders SET completed = 1, completed_at = ? WHERE id = ?`, completedAt, id)
		return err
	})
}

func (s *SQLiteStore) DeleteReminders(ctx context.Context, ids []string) ([]ItemError, error) {
	return s.batch(ctx, ids, "delete", func(tx *sql.Tx, id string) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
		return err
	})
}

// batch applies fn to each ID inside one transaction. IDs that do not
// exist or whose statement fails become ItemErrors; the rest commit.
func (s *SQLiteStore) batch(ctx context.Context, ids []string, verb string, fn func(*sql.Tx, string) error) ([]ItemError, error) {
	log := logr.FromContextOrDiscard(ctx).WithName("store")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var failures []ItemError
	for _, id := range ids {
		var title string
		err := tx.QueryRowContext(ctx, `SELECT title FROM reminders WHERE id = ?`, id).Scan(&title)
		if errors.Is(err, sql.ErrNoRows) {
			failures = append(failures, ItemError{ID: id, Err: ErrReminderNotFound})
			continue
		}
		if err != nil {
			failures = append(failures, ItemError{ID: id, Err: err})
			continue
		}

		if err := fn(tx, id); err != nil {
			failures = append(failures, ItemError{ID: id, Title: title, Err: fmt.Errorf("failed to %s: %w", verb, err)})
			continue
		}
		log.V(1).Info(verb+"d reminder", "id", id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return failures, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReminder(row rowScanner) (Reminder, error) {
	var (
		r                Reminder
		priority         int
		due, completedAt sql.NullString
		createdAt        string
	)
	if err := row.Scan(&r.ID, &r.Title, &r.Notes, &r.Completed, &priority,
		&due, &r.List, &createdAt, &completedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reminder{}, err
		}
		return Reminder{}, fmt.Errorf("failed to scan reminder: %w", err)
	}

	r.Priority = Priority(priority)
	r.Due = parseTime(due)
	r.CompletedAt = parseTime(completedAt)
	if t := parseTime(sql.NullString{String: createdAt, Valid: true}); t != nil {
		r.CreatedAt = *t
	}
	return r, nil
}

// Times are stored as UTC RFC 3339 so that string order is time order.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	t = t.Local()
	return &t
}

func validPriority(p Priority) bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

func newID() string {
	return strings.ToUpper(uuid.NewString())
}
