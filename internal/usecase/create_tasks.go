package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/workforce/internal/domain"
	"github.com/runoshun/workforce/internal/usecase/shared"
)

// CreateTaskItem describes one task to create.
// Fields are ordered to minimize memory padding.
type CreateTaskItem struct {
	Deadline      *int64               // Deadline in epoch ms (optional)
	StartDate     *int64               // Start date in epoch ms (optional, default now)
	ReferenceType domain.ReferenceType // Reference type (required)
	Kind          domain.Kind          // Task kind (required, must apply to ReferenceType)
	Priority      domain.Priority      // Priority (optional, default MEDIUM)
	ReferenceID   int64                // Reference ID (required)
	AssigneeID    int64                // Assignee user ID (required)
}

// CreateTasksInput contains the batch of tasks to create.
type CreateTasksInput struct {
	Items []CreateTaskItem
}

// CreateTasksOutput contains the created tasks in request order.
type CreateTasksOutput struct {
	Tasks []*domain.Task
}

// CreateTasks is the use case for creating tasks in a batch.
type CreateTasks struct {
	tasks      domain.TaskRepository
	activities *shared.ActivityLogger
	clock      domain.Clock
	actorID    int64
}

// NewCreateTasks creates a new CreateTasks use case.
// actorID is the user recorded on the creation activities.
func NewCreateTasks(tasks domain.TaskRepository, activities *shared.ActivityLogger, clock domain.Clock, actorID int64) *CreateTasks {
	return &CreateTasks{
		tasks:      tasks,
		activities: activities,
		clock:      clock,
		actorID:    actorID,
	}
}

// Execute validates every item, then creates the tasks in order.
func (uc *CreateTasks) Execute(_ context.Context, in CreateTasksInput) (*CreateTasksOutput, error) {
	for i, item := range in.Items {
		if err := validateCreateItem(item); err != nil {
			return nil, fmt.Errorf("request %d: %w", i+1, err)
		}
	}

	created := make([]*domain.Task, 0, len(in.Items))
	for _, item := range in.Items {
		task := &domain.Task{
			ReferenceID:   item.ReferenceID,
			ReferenceType: item.ReferenceType,
			Kind:          item.Kind,
			AssigneeID:    item.AssigneeID,
			Priority:      item.Priority,
			Deadline:      item.Deadline,
			StartDate:     item.StartDate,
			Status:        domain.StatusAssigned,
			Description:   "New task created.",
		}
		if task.Priority == "" {
			task.Priority = domain.DefaultPriority
		}
		if task.StartDate == nil {
			task.StartDate = domain.Millis(uc.clock.Now().UnixMilli())
		}

		if err := uc.tasks.Save(task); err != nil {
			return nil, fmt.Errorf("save task: %w", err)
		}

		if _, err := uc.activities.Log(shared.ActivityEntry{
			TaskID:      task.ID,
			Type:        domain.ActivityTaskCreated,
			Description: fmt.Sprintf("Task created and assigned to user %d", task.AssigneeID),
			UserID:      uc.actorID,
			NewValue:    domain.Value(string(domain.StatusAssigned)),
		}); err != nil {
			return nil, err
		}

		created = append(created, task)
	}

	return &CreateTasksOutput{Tasks: created}, nil
}

func validateCreateItem(item CreateTaskItem) error {
	if !item.ReferenceType.IsValid() {
		return fmt.Errorf("%q: %w", item.ReferenceType, domain.ErrInvalidReferenceType)
	}
	if !item.Kind.AppliesTo(item.ReferenceType) {
		return fmt.Errorf("%s for %s: %w", item.Kind, item.ReferenceType, domain.ErrKindNotApplicable)
	}
	if item.Priority != "" && !item.Priority.IsValid() {
		return fmt.Errorf("%q: %w", item.Priority, domain.ErrInvalidPriority)
	}
	return nil
}
