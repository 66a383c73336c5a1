package domain

import "time"

// ScriptOpKind names a replayable operation.
type ScriptOpKind string

// Replayable operations.
const (
	ScriptOpCreate   ScriptOpKind = "create"
	ScriptOpUpdate   ScriptOpKind = "update"
	ScriptOpAssign   ScriptOpKind = "assign"
	ScriptOpPriority ScriptOpKind = "priority"
	ScriptOpComment  ScriptOpKind = "comment"
)

// IsValid returns true if the operation kind is known.
func (k ScriptOpKind) IsValid() bool {
	switch k {
	case ScriptOpCreate, ScriptOpUpdate, ScriptOpAssign, ScriptOpPriority, ScriptOpComment:
		return true
	default:
		return false
	}
}

// Script is an ordered list of task operations replayed against a fresh store.
// Fields are ordered to minimize memory padding.
type Script struct {
	Start      time.Time     // Clock time at the first operation (zero = now)
	Name       string        // Free-form label
	Operations []ScriptOp    // Operations in execution order
	Step       time.Duration // Clock advance between operations
}

// ScriptOp is one operation of a Script.
// Which fields apply depends on Op.
// Fields are ordered to minimize memory padding.
type ScriptOp struct {
	Op            ScriptOpKind
	ReferenceType ReferenceType // assign
	Priority      Priority      // priority
	Comment       string        // comment
	Tasks         []ScriptTask  // create, update
	Line          int           // Source line, for error messages
	TaskID        int64         // priority, comment
	ReferenceID   int64         // assign
	AssigneeID    int64         // assign
	UserID        int64         // priority, comment
}

// ScriptTask is one item of a create or update operation.
// Fields are ordered to minimize memory padding.
type ScriptTask struct {
	Deadline      *int64
	StartDate     *int64
	Status        *Status
	Description   *string
	ReferenceType ReferenceType
	Kind          Kind
	Priority      Priority
	TaskID        int64
	ReferenceID   int64
	AssigneeID    int64
}
