package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/workforce/internal/domain"
	"github.com/runoshun/workforce/internal/usecase/shared"
)

// UpdateTaskItem describes the changes to one task.
// Only non-nil fields are updated.
type UpdateTaskItem struct {
	Status      *domain.Status // New status (nil = no change)
	Description *string        // New description (nil = no change)
	TaskID      int64          // Task ID (required)
}

// UpdateTasksInput contains the batch of updates.
type UpdateTasksInput struct {
	Items []UpdateTaskItem
}

// UpdateTasksOutput contains the updated tasks in request order.
type UpdateTasksOutput struct {
	Tasks []*domain.Task
}

// UpdateTasks is the use case for changing status and description of tasks.
type UpdateTasks struct {
	tasks      domain.TaskRepository
	activities *shared.ActivityLogger
	actorID    int64
}

// NewUpdateTasks creates a new UpdateTasks use case.
func NewUpdateTasks(tasks domain.TaskRepository, activities *shared.ActivityLogger, actorID int64) *UpdateTasks {
	return &UpdateTasks{
		tasks:      tasks,
		activities: activities,
		actorID:    actorID,
	}
}

// Execute applies each update in order.
// Every referenced task is resolved first, so a missing ID fails the batch before anything changes.
func (uc *UpdateTasks) Execute(_ context.Context, in UpdateTasksInput) (*UpdateTasksOutput, error) {
	for i, item := range in.Items {
		if item.Status != nil && !item.Status.IsValid() {
			return nil, fmt.Errorf("request %d: %q: %w", i+1, *item.Status, domain.ErrInvalidStatus)
		}
		if _, err := shared.GetTask(uc.tasks, item.TaskID); err != nil {
			return nil, err
		}
	}

	updated := make([]*domain.Task, 0, len(in.Items))
	for _, item := range in.Items {
		task, err := shared.GetTask(uc.tasks, item.TaskID)
		if err != nil {
			return nil, err
		}

		oldStatus := task.Status
		if item.Status != nil {
			task.Status = *item.Status
		}
		if item.Description != nil {
			task.Description = *item.Description
		}

		if err := uc.tasks.Save(task); err != nil {
			return nil, fmt.Errorf("save task: %w", err)
		}

		if item.Status != nil {
			if _, err := uc.activities.Log(shared.ActivityEntry{
				TaskID:      task.ID,
				Type:        domain.ActivityTypeForStatus(*item.Status),
				Description: fmt.Sprintf("Task status changed from %s to %s", oldStatus, *item.Status),
				UserID:      uc.actorID,
				OldValue:    domain.Value(string(oldStatus)),
				NewValue:    domain.Value(string(*item.Status)),
			}); err != nil {
				return nil, err
			}
		}

		updated = append(updated, task)
	}

	return &UpdateTasksOutput{Tasks: updated}, nil
}
