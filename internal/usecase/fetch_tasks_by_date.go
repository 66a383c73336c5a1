package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/workforce/internal/domain"
)

// FetchTasksByDateInput contains the parameters for the daily view query.
type FetchTasksByDateInput struct {
	AssigneeIDs []int64 // Users whose tasks are considered
	StartDate   int64   // Window start in epoch ms, inclusive
	EndDate     int64   // Window end in epoch ms, inclusive
}

// FetchTasksByDateOutput contains the matching tasks in creation order.
type FetchTasksByDateOutput struct {
	Tasks []*domain.Task
}

// FetchTasksByDate is the use case for the assignee daily view.
type FetchTasksByDate struct {
	tasks domain.TaskRepository
}

// NewFetchTasksByDate creates a new FetchTasksByDate use case.
func NewFetchTasksByDate(tasks domain.TaskRepository) *FetchTasksByDate {
	return &FetchTasksByDate{tasks: tasks}
}

// Execute returns the non-cancelled tasks that start in the window, plus
// earlier tasks that are still assigned or started.
func (uc *FetchTasksByDate) Execute(_ context.Context, in FetchTasksByDateInput) (*FetchTasksByDateOutput, error) {
	if in.StartDate > in.EndDate {
		return nil, fmt.Errorf("start %d after end %d: %w", in.StartDate, in.EndDate, domain.ErrInvalidDateRange)
	}

	tasks, err := uc.tasks.ListByAssignees(in.AssigneeIDs)
	if err != nil {
		return nil, fmt.Errorf("list tasks by assignees: %w", err)
	}

	window := domain.DateWindow{Start: in.StartDate, End: in.EndDate}
	return &FetchTasksByDateOutput{Tasks: window.FilterDailyView(tasks)}, nil
}
