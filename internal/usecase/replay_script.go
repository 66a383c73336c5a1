package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/workforce/internal/domain"
)

// ReplayScriptInput contains the script to replay.
type ReplayScriptInput struct {
	Script *domain.Script
}

// ReplayStep summarizes one executed operation.
type ReplayStep struct {
	Op      domain.ScriptOpKind
	Summary string
	TaskIDs []int64
	Line    int
}

// ReplayScriptOutput contains the replay trace, the final tasks and the
// consistency report for the resulting store.
type ReplayScriptOutput struct {
	Report *CheckConsistencyOutput
	Steps  []ReplayStep
	Tasks  []*domain.Task
}

// ReplayScript is the use case that applies a script's operations in order.
type ReplayScript struct {
	tasks    domain.TaskRepository
	clock    domain.Clock
	create   *CreateTasks
	update   *UpdateTasks
	assign   *AssignByReference
	priority *UpdatePriority
	comment  *AddComment
	check    *CheckConsistency
}

// NewReplayScript creates a new ReplayScript use case.
// When clock can Advance, it is moved by the script's step after each operation.
func NewReplayScript(
	tasks domain.TaskRepository,
	clock domain.Clock,
	create *CreateTasks,
	update *UpdateTasks,
	assign *AssignByReference,
	priority *UpdatePriority,
	comment *AddComment,
	check *CheckConsistency,
) *ReplayScript {
	return &ReplayScript{
		tasks:    tasks,
		clock:    clock,
		create:   create,
		update:   update,
		assign:   assign,
		priority: priority,
		comment:  comment,
		check:    check,
	}
}

type advancer interface {
	Advance(d time.Duration)
}

// Execute runs every operation and stops at the first failure.
func (uc *ReplayScript) Execute(ctx context.Context, in ReplayScriptInput) (*ReplayScriptOutput, error) {
	if in.Script == nil || len(in.Script.Operations) == 0 {
		return nil, domain.ErrEmptyScript
	}

	clock, canAdvance := uc.clock.(advancer)
	out := &ReplayScriptOutput{}
	for i, op := range in.Script.Operations {
		step, err := uc.apply(ctx, op)
		if err != nil {
			return nil, fmt.Errorf("operation %d (line %d): %w", i+1, op.Line, err)
		}
		out.Steps = append(out.Steps, step)

		if canAdvance && in.Script.Step > 0 {
			clock.Advance(in.Script.Step)
		}
	}

	tasks, err := uc.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	out.Tasks = tasks

	report, err := uc.check.Execute(ctx, CheckConsistencyInput{})
	if err != nil {
		return nil, err
	}
	out.Report = report
	return out, nil
}

func (uc *ReplayScript) apply(ctx context.Context, op domain.ScriptOp) (ReplayStep, error) {
	step := ReplayStep{Op: op.Op, Line: op.Line}

	switch op.Op {
	case domain.ScriptOpCreate:
		items := make([]CreateTaskItem, 0, len(op.Tasks))
		for _, t := range op.Tasks {
			items = append(items, CreateTaskItem{
				ReferenceID:   t.ReferenceID,
				ReferenceType: t.ReferenceType,
				Kind:          t.Kind,
				AssigneeID:    t.AssigneeID,
				Priority:      t.Priority,
				Deadline:      t.Deadline,
				StartDate:     t.StartDate,
			})
		}
		res, err := uc.create.Execute(ctx, CreateTasksInput{Items: items})
		if err != nil {
			return step, err
		}
		step.TaskIDs = taskIDs(res.Tasks)
		step.Summary = fmt.Sprintf("created %d task(s)", len(res.Tasks))

	case domain.ScriptOpUpdate:
		items := make([]UpdateTaskItem, 0, len(op.Tasks))
		for _, t := range op.Tasks {
			items = append(items, UpdateTaskItem{TaskID: t.TaskID, Status: t.Status, Description: t.Description})
		}
		res, err := uc.update.Execute(ctx, UpdateTasksInput{Items: items})
		if err != nil {
			return step, err
		}
		step.TaskIDs = taskIDs(res.Tasks)
		step.Summary = fmt.Sprintf("updated %d task(s)", len(res.Tasks))

	case domain.ScriptOpAssign:
		res, err := uc.assign.Execute(ctx, AssignByReferenceInput{
			ReferenceID:   op.ReferenceID,
			ReferenceType: op.ReferenceType,
			AssigneeID:    op.AssigneeID,
		})
		if err != nil {
			return step, err
		}
		step.TaskIDs = append(append(append([]int64{}, res.Kept...), res.Cancelled...), res.Created...)
		step.Summary = fmt.Sprintf("%s (kept %d, cancelled %d, created %d)",
			res.Message, len(res.Kept), len(res.Cancelled), len(res.Created))

	case domain.ScriptOpPriority:
		res, err := uc.priority.Execute(ctx, UpdatePriorityInput{TaskID: op.TaskID, Priority: op.Priority, UserID: op.UserID})
		if err != nil {
			return step, err
		}
		step.TaskIDs = []int64{res.Task.ID}
		step.Summary = fmt.Sprintf("priority set to %s", res.Task.Priority)

	case domain.ScriptOpComment:
		res, err := uc.comment.Execute(ctx, AddCommentInput{TaskID: op.TaskID, UserID: op.UserID, Message: op.Comment})
		if err != nil {
			return step, err
		}
		step.TaskIDs = []int64{res.Comment.TaskID}
		step.Summary = fmt.Sprintf("comment %d added", res.Comment.ID)

	default:
		return step, fmt.Errorf("%q: %w", op.Op, domain.ErrUnknownOperation)
	}

	return step, nil
}

func taskIDs(tasks []*domain.Task) []int64 {
	ids := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}
