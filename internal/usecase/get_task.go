package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/workforce/internal/domain"
	"github.com/runoshun/workforce/internal/usecase/shared"
)

// GetTaskInput contains the parameters for loading a task.
type GetTaskInput struct {
	TaskID int64 // Task ID (required)
}

// GetTaskOutput contains the loaded task.
type GetTaskOutput struct {
	Task *domain.Task // Task with Activities and Comments hydrated
}

// GetTask is the use case for loading a task with its full history.
type GetTask struct {
	tasks      domain.TaskRepository
	activities domain.ActivityRepository
	comments   domain.CommentRepository
}

// NewGetTask creates a new GetTask use case.
func NewGetTask(tasks domain.TaskRepository, activities domain.ActivityRepository, comments domain.CommentRepository) *GetTask {
	return &GetTask{
		tasks:      tasks,
		activities: activities,
		comments:   comments,
	}
}

// Execute loads the task and attaches its activities and comments, oldest first.
func (uc *GetTask) Execute(_ context.Context, in GetTaskInput) (*GetTaskOutput, error) {
	task, err := shared.GetTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}

	activities, err := uc.activities.ListByTask(in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	comments, err := uc.comments.ListByTask(in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	task.Activities = activities
	task.Comments = comments
	return &GetTaskOutput{Task: task}, nil
}
