package domain

import "time"

// TaskRepository manages task persistence.
// List methods return tasks in creation order.
type TaskRepository interface {
	// Get retrieves a task by ID. Returns nil if not found.
	Get(id int64) (*Task, error)

	// Save creates or updates a task. A zero ID means create.
	Save(task *Task) error

	// List retrieves every task.
	List() ([]*Task, error)

	// ListByReference retrieves tasks attached to the reference.
	ListByReference(refID int64, refType ReferenceType) ([]*Task, error)

	// ListByAssignees retrieves tasks assigned to any of the users.
	ListByAssignees(assigneeIDs []int64) ([]*Task, error)

	// ListByPriority retrieves tasks with the given priority.
	ListByPriority(p Priority) ([]*Task, error)
}

// ActivityRepository is the append-only store of task history.
type ActivityRepository interface {
	// Append stores an activity, assigning its ID and, if zero, its timestamp.
	Append(activity *Activity) error

	// ListByTask retrieves a task's activities ordered by timestamp ascending.
	ListByTask(taskID int64) ([]Activity, error)

	// List retrieves all activities ordered by ID.
	List() ([]Activity, error)
}

// CommentRepository is the append-only store of task comments.
type CommentRepository interface {
	// Add stores a comment, assigning its ID and, if zero, its time.
	Add(comment *Comment) error

	// ListByTask retrieves a task's comments ordered by time ascending.
	ListByTask(taskID int64) ([]Comment, error)
}

// Logger writes operational log lines, optionally scoped to a task.
// A taskID of 0 means the entry is not about a particular task.
type Logger interface {
	Info(taskID int64, category, msg string)
	Debug(taskID int64, category, msg string)
	Warn(taskID int64, category, msg string)
	Error(taskID int64, category, msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Info(int64, string, string)  {}
func (NopLogger) Debug(int64, string, string) {}
func (NopLogger) Warn(int64, string, string)  {}
func (NopLogger) Error(int64, string, string) {}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults + global + local).
	Load() (*Config, error)
}

// ConfigInfo describes one configuration file on disk.
type ConfigInfo struct {
	Path    string // Absolute or relative path of the file
	Content string // File contents (empty if missing)
	Exists  bool   // Whether the file exists
}

// ConfigManager inspects and creates configuration files.
type ConfigManager interface {
	// GlobalConfigInfo returns information about the global config file.
	GlobalConfigInfo() ConfigInfo
	// LocalConfigInfo returns information about the local config file.
	LocalConfigInfo() ConfigInfo
	// InitGlobalConfig writes the template to the global config path.
	InitGlobalConfig(cfg *Config) error
	// InitLocalConfig writes the template to the local config path.
	InitLocalConfig(cfg *Config) error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
