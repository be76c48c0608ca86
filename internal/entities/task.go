// Package entities contains core business entities.
package entities

import (
	"fmt"
	"strings"
	"time"
)

// TaskStatus is the workflow state of a task. Each status maps to exactly one board column.
type TaskStatus string

const (
	// StatusTodo marks work not yet started.
	StatusTodo TaskStatus = "todo"
	// StatusInProgress marks work being done.
	StatusInProgress TaskStatus = "inProgress"
	// StatusDone marks finished work.
	StatusDone TaskStatus = "done"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work shown on the kanban board.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	DueDate     time.Time
	Priority    Priority
	Team        TeamSnapshot
	// ProjectID is empty for tasks that belong to no project.
	ProjectID string
}

// Clone returns a copy that shares no slices with t.
func (t Task) Clone() Task {
	t.Team = t.Team.Clone()
	return t
}

// Validate checks the fields required before a task is written.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, t.Status)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidArgument, t.Priority)
	}
	return nil
}

// TaskFilter narrows a task listing. A nil ProjectID lists every task.
type TaskFilter struct {
	ProjectID *string
}
