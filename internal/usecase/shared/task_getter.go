package shared

import (
	"fmt"

	"github.com/runoshun/workforce/internal/domain"
)

// GetTask retrieves a task by ID and returns a *domain.NotFoundError if not found.
// This centralizes the common pattern of:
//
//	task, err := repo.Get(taskID)
//	if err != nil { return nil, fmt.Errorf("get task: %w", err) }
//	if task == nil { return nil, domain.NewNotFoundError(taskID) }
func GetTask(repo domain.TaskRepository, taskID int64) (*domain.Task, error) {
	task, err := repo.Get(taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, domain.NewNotFoundError(taskID)
	}
	return task, nil
}
