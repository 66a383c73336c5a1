package domain

import (
	"fmt"
	"strings"
)

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusAssigned  Status = "ASSIGNED"  // Created or reassigned, not yet started
	StatusStarted   Status = "STARTED"   // Work in progress
	StatusCompleted Status = "COMPLETED" // Done
	StatusCancelled Status = "CANCELLED" // Superseded or abandoned
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{
		StatusAssigned,
		StatusStarted,
		StatusCompleted,
		StatusCancelled,
	}
}

// IsActive returns true if the status is neither completed nor cancelled.
func (s Status) IsActive() bool {
	return s == StatusAssigned || s == StatusStarted
}

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusAssigned:
		return "Assigned"
	case StatusStarted:
		return "Started"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusAssigned, StatusStarted, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// ParseStatus parses a status name case-insensitively.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidStatus)
	}
	return status, nil
}

// Priority represents the urgency of a task.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// DefaultPriority is assigned when a request does not specify one.
const DefaultPriority = PriorityMedium

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// ParsePriority parses a priority name case-insensitively.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidPriority)
	}
	return p, nil
}
