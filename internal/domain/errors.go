package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidPriority      = errors.New("invalid priority")
	ErrInvalidReferenceType = errors.New("invalid reference type")
	ErrInvalidKind          = errors.New("invalid task kind")
	ErrKindNotApplicable    = errors.New("task kind not applicable to reference type")
	ErrEmptyMessage         = errors.New("message cannot be empty")
	ErrInvalidDateRange     = errors.New("invalid date range")
	ErrConfigExists         = errors.New("config file already exists")
	ErrEmptyScript          = errors.New("script contains no operations")
	ErrUnknownOperation     = errors.New("unknown script operation")
	ErrLogDirNotSet         = errors.New("log directory not configured")
	ErrNoLogFile            = errors.New("no log file")
)

// NotFoundError reports a task id that does not exist in the store.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task not found with id: %d", e.ID)
}

// Unwrap lets errors.Is(err, ErrTaskNotFound) match.
func (e *NotFoundError) Unwrap() error {
	return ErrTaskNotFound
}

// NewNotFoundError returns a NotFoundError for id.
func NewNotFoundError(id int64) error {
	return &NotFoundError{ID: id}
}
