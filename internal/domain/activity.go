package domain

import "time"

// ActivityType tags an entry in a task's history.
type ActivityType string

const (
	ActivityTaskCreated     ActivityType = "TASK_CREATED"
	ActivityTaskAssigned    ActivityType = "TASK_ASSIGNED"
	ActivityTaskStarted     ActivityType = "TASK_STARTED"
	ActivityTaskCompleted   ActivityType = "TASK_COMPLETED"
	ActivityTaskCancelled   ActivityType = "TASK_CANCELLED"
	ActivityPriorityChanged ActivityType = "PRIORITY_CHANGED"
	ActivityCommentAdded    ActivityType = "COMMENT_ADDED"
)

// ActivityTypeForStatus returns the activity type recorded when a task moves to status.
func ActivityTypeForStatus(s Status) ActivityType {
	switch s {
	case StatusStarted:
		return ActivityTaskStarted
	case StatusCompleted:
		return ActivityTaskCompleted
	case StatusCancelled:
		return ActivityTaskCancelled
	default:
		return ActivityTaskAssigned
	}
}

// Activity is an immutable audit-log entry capturing one state change to a task.
// Fields are ordered to minimize memory padding.
type Activity struct {
	Timestamp   time.Time    `json:"timestamp"`
	OldValue    *string      `json:"oldValue,omitempty"` // nil for creation and comment events
	NewValue    *string      `json:"newValue,omitempty"`
	Type        ActivityType `json:"activityType"`
	Description string       `json:"description"`
	ID          int64        `json:"id"`
	TaskID      int64        `json:"taskId"`
	UserID      int64        `json:"userId"`
}

// Value returns a pointer to s, for optional activity values.
func Value(s string) *string {
	return &s
}
