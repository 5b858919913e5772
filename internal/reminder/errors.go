package reminder

import (
	"errors"
	"fmt"

	"github.com/notexe/remind/internal/dateparse"
)

var (
	ErrAccessDenied     = errors.New("access to reminders denied")
	ErrListNotFound     = errors.New("reminder list not found")
	ErrReminderNotFound = errors.New("reminder not found")
	ErrInvalidDate      = dateparse.ErrInvalidDate
)

// OperationError is a store operation that was refused or failed.
type OperationError struct {
	Reason string
}

func (e *OperationError) Error() string {
	return "operation failed: " + e.Reason
}

// OperationFailed builds an OperationError from a formatted reason.
func OperationFailed(format string, args ...any) error {
	return &OperationError{Reason: fmt.Sprintf(format, args...)}
}

// ItemError records a failure for one reminder of a batch.
type ItemError struct {
	ID    string
	Title string
	Err   error
}

func (e ItemError) Error() string {
	name := e.Title
	if name == "" {
		name = e.ID
	}
	return fmt.Sprintf("%s: %v", name, e.Err)
}

func (e ItemError) Unwrap() error { return e.Err }
