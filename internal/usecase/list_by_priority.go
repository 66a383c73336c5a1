package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/workforce/internal/domain"
)

// ListByPriorityInput contains the priority to filter by.
type ListByPriorityInput struct {
	Priority domain.Priority
}

// ListByPriorityOutput contains the matching tasks in creation order.
type ListByPriorityOutput struct {
	Tasks []*domain.Task
}

// ListByPriority is the use case for listing tasks of one priority.
type ListByPriority struct {
	tasks domain.TaskRepository
}

// NewListByPriority creates a new ListByPriority use case.
func NewListByPriority(tasks domain.TaskRepository) *ListByPriority {
	return &ListByPriority{tasks: tasks}
}

// Execute returns every non-cancelled task with the priority.
func (uc *ListByPriority) Execute(_ context.Context, in ListByPriorityInput) (*ListByPriorityOutput, error) {
	if !in.Priority.IsValid() {
		return nil, fmt.Errorf("%q: %w", in.Priority, domain.ErrInvalidPriority)
	}

	tasks, err := uc.tasks.ListByPriority(in.Priority)
	if err != nil {
		return nil, fmt.Errorf("list tasks by priority: %w", err)
	}

	result := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status != domain.StatusCancelled {
			result = append(result, t)
		}
	}
	return &ListByPriorityOutput{Tasks: result}, nil
}
