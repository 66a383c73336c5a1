// Package shared provides helpers used by several use cases.
package shared

import (
	"fmt"

	"github.com/runoshun/workforce/internal/domain"
)

// ActivityEntry describes one state change to record.
// OldValue and NewValue stay nil for creation and comment events.
type ActivityEntry struct {
	OldValue    *string
	NewValue    *string
	Type        domain.ActivityType
	Description string
	TaskID      int64
	UserID      int64
}

// ActivityLogger appends immutable history records for tasks.
// It has no update or delete operation.
type ActivityLogger struct {
	activities domain.ActivityRepository
	clock      domain.Clock
	logger     domain.Logger
}

// NewActivityLogger creates a new ActivityLogger.
// A nil logger disables operational logging.
func NewActivityLogger(activities domain.ActivityRepository, clock domain.Clock, logger domain.Logger) *ActivityLogger {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &ActivityLogger{
		activities: activities,
		clock:      clock,
		logger:     logger,
	}
}

// Log appends exactly one activity for the entry and returns it with ID and timestamp set.
func (l *ActivityLogger) Log(e ActivityEntry) (*domain.Activity, error) {
	activity := &domain.Activity{
		TaskID:      e.TaskID,
		Type:        e.Type,
		Description: e.Description,
		UserID:      e.UserID,
		OldValue:    e.OldValue,
		NewValue:    e.NewValue,
		Timestamp:   l.clock.Now(),
	}
	if err := l.activities.Append(activity); err != nil {
		return nil, fmt.Errorf("append activity: %w", err)
	}

	l.logger.Info(e.TaskID, "activity", fmt.Sprintf("%s by user %d: %s", e.Type, e.UserID, e.Description))
	return activity, nil
}
