package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/workforce/internal/domain"
	"github.com/runoshun/workforce/internal/usecase/shared"
)

// UpdatePriorityInput contains the parameters for changing a task's priority.
type UpdatePriorityInput struct {
	Priority domain.Priority // New priority (required)
	TaskID   int64           // Task ID (required)
	UserID   int64           // Acting user
}

// UpdatePriorityOutput contains the updated task.
type UpdatePriorityOutput struct {
	Task *domain.Task
}

// UpdatePriority is the use case for changing a task's priority.
type UpdatePriority struct {
	tasks      domain.TaskRepository
	activities *shared.ActivityLogger
}

// NewUpdatePriority creates a new UpdatePriority use case.
func NewUpdatePriority(tasks domain.TaskRepository, activities *shared.ActivityLogger) *UpdatePriority {
	return &UpdatePriority{
		tasks:      tasks,
		activities: activities,
	}
}

// Execute sets the priority and records a PRIORITY_CHANGED activity.
func (uc *UpdatePriority) Execute(_ context.Context, in UpdatePriorityInput) (*UpdatePriorityOutput, error) {
	if !in.Priority.IsValid() {
		return nil, fmt.Errorf("%q: %w", in.Priority, domain.ErrInvalidPriority)
	}

	task, err := shared.GetTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}

	old := task.Priority
	task.Priority = in.Priority
	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	if _, err := uc.activities.Log(shared.ActivityEntry{
		TaskID:      task.ID,
		Type:        domain.ActivityPriorityChanged,
		Description: fmt.Sprintf("Priority changed from %s to %s", old, in.Priority),
		UserID:      in.UserID,
		OldValue:    domain.Value(string(old)),
		NewValue:    domain.Value(string(in.Priority)),
	}); err != nil {
		return nil, err
	}

	return &UpdatePriorityOutput{Task: task}, nil
}
