// Package domain contains core business entities and interfaces.
package domain

import "time"

// Task represents a work item attached to an external reference (e.g. an order).
// Fields are ordered to minimize memory padding.
type Task struct {
	Created       time.Time     `json:"created"`             // Creation time
	Updated       time.Time     `json:"updated"`             // Last save time
	Deadline      *int64        `json:"deadline,omitempty"`  // Deadline in epoch milliseconds (optional)
	StartDate     *int64        `json:"startDate,omitempty"` // Start date in epoch milliseconds (optional)
	Description   string        `json:"description,omitempty"`
	ReferenceType ReferenceType `json:"referenceType"`
	Kind          Kind          `json:"kind"`
	Status        Status        `json:"status"`
	Priority      Priority      `json:"priority"`
	Activities    []Activity    `json:"activities,omitempty"` // Hydrated history (not stored on the task)
	Comments      []Comment     `json:"comments,omitempty"`   // Hydrated comments (not stored on the task)
	ID            int64         `json:"id"`
	ReferenceID   int64         `json:"referenceId"`
	AssigneeID    int64         `json:"assigneeId"`
	Seq           int64         `json:"-"` // Creation sequence assigned by the store
}

// IsActive returns true if the task is neither completed nor cancelled.
func (t *Task) IsActive() bool {
	return t.Status.IsActive()
}

// EffectiveStart returns the start date in epoch milliseconds.
// Falls back to the creation time (UTC) when no start date is set.
func (t *Task) EffectiveStart() int64 {
	if t.StartDate != nil {
		return *t.StartDate
	}
	return t.Created.UTC().UnixMilli()
}

// Clone returns a copy of the task that shares no mutable state with t.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.Deadline != nil {
		d := *t.Deadline
		c.Deadline = &d
	}
	if t.StartDate != nil {
		s := *t.StartDate
		c.StartDate = &s
	}
	if t.Activities != nil {
		c.Activities = append([]Activity(nil), t.Activities...)
	}
	if t.Comments != nil {
		c.Comments = append([]Comment(nil), t.Comments...)
	}
	return &c
}

// Comment represents a note attached to a task.
// Fields are ordered to minimize memory padding.
type Comment struct {
	Time   time.Time `json:"time"` // Creation time
	Text   string    `json:"text"` // Comment text
	ID     int64     `json:"id"`
	TaskID int64     `json:"taskId"`
	UserID int64     `json:"userId"`
}

// Millis returns a pointer to ms, for optional epoch-millisecond fields.
func Millis(ms int64) *int64 {
	return &ms
}
