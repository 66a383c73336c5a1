package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/runoshun/workforce/internal/domain"
)

// Consistency rules checked against each task's history.
const (
	RuleCreatedOnce     = "created_once"
	RuleStatusHistory   = "status_matches_history"
	RuleAssigneeHistory = "assignee_matches_history"
	RulePriorityHistory = "priority_matches_history"
)

// Violation is one task whose stored state disagrees with its history.
type Violation struct {
	Rule    string
	Message string
	TaskID  int64
}

// DuplicateGroup lists the active tasks sharing one reference and kind.
type DuplicateGroup struct {
	ReferenceType domain.ReferenceType
	Kind          domain.Kind
	TaskIDs       []int64
	ReferenceID   int64
}

// CheckConsistencyInput is empty; the whole store is checked.
type CheckConsistencyInput struct{}

// CheckConsistencyOutput contains the findings.
// Duplicates are informational: batch creation may produce them until the
// next assign-by-reference on that reference.
type CheckConsistencyOutput struct {
	Violations []Violation
	Duplicates []DuplicateGroup
	Checked    int
}

// OK reports whether no violations were found.
func (o *CheckConsistencyOutput) OK() bool {
	return len(o.Violations) == 0
}

// CheckConsistency replays every task's activity history and compares the
// result with the stored task.
type CheckConsistency struct {
	tasks      domain.TaskRepository
	activities domain.ActivityRepository
}

// NewCheckConsistency creates a new CheckConsistency use case.
func NewCheckConsistency(tasks domain.TaskRepository, activities domain.ActivityRepository) *CheckConsistency {
	return &CheckConsistency{
		tasks:      tasks,
		activities: activities,
	}
}

// Execute checks every task in creation order.
func (uc *CheckConsistency) Execute(_ context.Context, _ CheckConsistencyInput) (*CheckConsistencyOutput, error) {
	tasks, err := uc.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	out := &CheckConsistencyOutput{Checked: len(tasks)}
	for _, task := range tasks {
		history, err := uc.activities.ListByTask(task.ID)
		if err != nil {
			return nil, fmt.Errorf("list activities: %w", err)
		}
		out.Violations = append(out.Violations, checkTask(task, history)...)
	}
	out.Duplicates = findDuplicates(tasks)
	return out, nil
}

// replayed is the task state implied by an activity history.
type replayed struct {
	status   domain.Status
	priority domain.Priority
	assignee int64
	created  int
	assigned bool
}

func replay(history []domain.Activity) replayed {
	var r replayed
	for _, a := range history {
		switch a.Type {
		case domain.ActivityTaskCreated:
			r.created++
			r.status = domain.StatusAssigned
		case domain.ActivityTaskStarted:
			r.status = domain.StatusStarted
		case domain.ActivityTaskCompleted:
			r.status = domain.StatusCompleted
		case domain.ActivityTaskCancelled:
			r.status = domain.StatusCancelled
		case domain.ActivityTaskAssigned:
			// Status updates back to ASSIGNED share this type with reassignments.
			if a.NewValue == nil {
				continue
			}
			if *a.NewValue == string(domain.StatusAssigned) {
				r.status = domain.StatusAssigned
				continue
			}
			if id, err := strconv.ParseInt(*a.NewValue, 10, 64); err == nil {
				r.assignee = id
				r.assigned = true
			}
		case domain.ActivityPriorityChanged:
			if a.NewValue != nil {
				r.priority = domain.Priority(*a.NewValue)
			}
		}
	}
	return r
}

func checkTask(task *domain.Task, history []domain.Activity) []Violation {
	var violations []Violation
	add := func(rule, format string, args ...any) {
		violations = append(violations, Violation{
			TaskID:  task.ID,
			Rule:    rule,
			Message: fmt.Sprintf(format, args...),
		})
	}

	r := replay(history)
	if r.created != 1 {
		add(RuleCreatedOnce, "found %d TASK_CREATED activities", r.created)
	}
	if r.created > 0 && r.status != task.Status {
		add(RuleStatusHistory, "history implies %s, task is %s", r.status, task.Status)
	}
	if r.assigned && r.assignee != task.AssigneeID {
		add(RuleAssigneeHistory, "history implies assignee %d, task has %d", r.assignee, task.AssigneeID)
	}
	if r.priority != "" && r.priority != task.Priority {
		add(RulePriorityHistory, "history implies %s, task is %s", r.priority, task.Priority)
	}
	return violations
}

type groupKey struct {
	refType domain.ReferenceType
	kind    domain.Kind
	refID   int64
}

// findDuplicates keeps groups in the order their first task was created.
func findDuplicates(tasks []*domain.Task) []DuplicateGroup {
	index := make(map[groupKey]int)
	var groups []DuplicateGroup
	for _, t := range tasks {
		if !t.IsActive() {
			continue
		}
		key := groupKey{refType: t.ReferenceType, kind: t.Kind, refID: t.ReferenceID}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DuplicateGroup{
				ReferenceID:   t.ReferenceID,
				ReferenceType: t.ReferenceType,
				Kind:          t.Kind,
			})
		}
		groups[i].TaskIDs = append(groups[i].TaskIDs, t.ID)
	}

	var dups []DuplicateGroup
	for _, g := range groups {
		if len(g.TaskIDs) > 1 {
			dups = append(dups, g)
		}
	}
	return dups
}
