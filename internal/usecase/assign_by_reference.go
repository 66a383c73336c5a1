package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/runoshun/workforce/internal/domain"
	"github.com/runoshun/workforce/internal/usecase/shared"
)

// AssignByReferenceInput contains the parameters for reconciling a reference.
type AssignByReferenceInput struct {
	ReferenceType domain.ReferenceType // Reference type (required)
	ReferenceID   int64                // Reference ID (required)
	AssigneeID    int64                // Target assignee (required)
}

// AssignByReferenceOutput contains the result of the reconciliation.
// Fields are ordered to minimize memory padding.
type AssignByReferenceOutput struct {
	Message   string  // Confirmation message
	Kept      []int64 // Tasks reassigned to the target
	Cancelled []int64 // Tasks cancelled as duplicates
	Created   []int64 // Tasks created for kinds that had none
}

// AssignByReference is the use case that leaves exactly one active task per
// applicable kind of a reference, assigned to the target user.
type AssignByReference struct {
	tasks      domain.TaskRepository
	activities *shared.ActivityLogger
	clock      domain.Clock
	actorID    int64
}

// NewAssignByReference creates a new AssignByReference use case.
func NewAssignByReference(tasks domain.TaskRepository, activities *shared.ActivityLogger, clock domain.Clock, actorID int64) *AssignByReference {
	return &AssignByReference{
		tasks:      tasks,
		activities: activities,
		clock:      clock,
		actorID:    actorID,
	}
}

// Execute reconciles every kind applicable to the reference type.
// For each kind the earliest-created active task is kept and reassigned,
// later active ones are cancelled, and a new task is created if none exist.
// Completed and cancelled tasks are left alone.
func (uc *AssignByReference) Execute(_ context.Context, in AssignByReferenceInput) (*AssignByReferenceOutput, error) {
	if !in.ReferenceType.IsValid() {
		return nil, fmt.Errorf("%q: %w", in.ReferenceType, domain.ErrInvalidReferenceType)
	}

	existing, err := uc.tasks.ListByReference(in.ReferenceID, in.ReferenceType)
	if err != nil {
		return nil, fmt.Errorf("list tasks by reference: %w", err)
	}

	out := &AssignByReferenceOutput{}
	for _, kind := range domain.KindsFor(in.ReferenceType) {
		candidates := activeOfKind(existing, kind)

		if len(candidates) == 0 {
			task, err := uc.create(in, kind)
			if err != nil {
				return nil, err
			}
			out.Created = append(out.Created, task.ID)
			continue
		}

		if err := uc.reassign(candidates[0], in.AssigneeID); err != nil {
			return nil, err
		}
		out.Kept = append(out.Kept, candidates[0].ID)

		for _, dup := range candidates[1:] {
			if err := uc.cancel(dup); err != nil {
				return nil, err
			}
			out.Cancelled = append(out.Cancelled, dup.ID)
		}
	}

	out.Message = fmt.Sprintf("Tasks assigned successfully for reference %d", in.ReferenceID)
	return out, nil
}

// activeOfKind keeps input order, which is creation order.
func activeOfKind(tasks []*domain.Task, kind domain.Kind) []*domain.Task {
	var result []*domain.Task
	for _, t := range tasks {
		if t.Kind == kind && t.IsActive() {
			result = append(result, t)
		}
	}
	return result
}

func (uc *AssignByReference) create(in AssignByReferenceInput, kind domain.Kind) (*domain.Task, error) {
	task := &domain.Task{
		ReferenceID:   in.ReferenceID,
		ReferenceType: in.ReferenceType,
		Kind:          kind,
		AssigneeID:    in.AssigneeID,
		Status:        domain.StatusAssigned,
		Priority:      domain.DefaultPriority,
		StartDate:     domain.Millis(uc.clock.Now().UnixMilli()),
		Description:   "Task created via assign-by-reference",
	}
	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	if _, err := uc.activities.Log(shared.ActivityEntry{
		TaskID:      task.ID,
		Type:        domain.ActivityTaskCreated,
		Description: fmt.Sprintf("Task created and assigned to user %d", in.AssigneeID),
		UserID:      uc.actorID,
		NewValue:    domain.Value(string(domain.StatusAssigned)),
	}); err != nil {
		return nil, err
	}
	return task, nil
}

func (uc *AssignByReference) reassign(task *domain.Task, assigneeID int64) error {
	oldAssignee := task.AssigneeID
	task.AssigneeID = assigneeID
	if err := uc.tasks.Save(task); err != nil {
		return fmt.Errorf("save task: %w", err)
	}

	_, err := uc.activities.Log(shared.ActivityEntry{
		TaskID:      task.ID,
		Type:        domain.ActivityTaskAssigned,
		Description: fmt.Sprintf("Task reassigned from user %d to user %d", oldAssignee, assigneeID),
		UserID:      uc.actorID,
		OldValue:    domain.Value(strconv.FormatInt(oldAssignee, 10)),
		NewValue:    domain.Value(strconv.FormatInt(assigneeID, 10)),
	})
	return err
}

func (uc *AssignByReference) cancel(task *domain.Task) error {
	oldStatus := task.Status
	task.Status = domain.StatusCancelled
	if err := uc.tasks.Save(task); err != nil {
		return fmt.Errorf("save task: %w", err)
	}

	_, err := uc.activities.Log(shared.ActivityEntry{
		TaskID:      task.ID,
		Type:        domain.ActivityTaskCancelled,
		Description: "Task cancelled due to reassignment",
		UserID:      uc.actorID,
		OldValue:    domain.Value(string(oldStatus)),
		NewValue:    domain.Value(string(domain.StatusCancelled)),
	})
	return err
}
