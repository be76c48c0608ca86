// Package entities contains core business entities.
package entities

import "time"

// ColumnID identifies one of the fixed board columns.
type ColumnID string

const (
	ColumnTodo       ColumnID = "todo"
	ColumnInProgress ColumnID = "inProgress"
	ColumnDone       ColumnID = "done"
)

// Column is an in-memory grouping of tasks sharing a status. It is never persisted.
type Column struct {
	ID     ColumnID
	Title  string
	Status TaskStatus
	Tasks  []Task
}

// BoardLayout returns the three fixed columns, empty, in display order.
func BoardLayout() []Column {
	return []Column{
		{ID: ColumnTodo, Title: "To Do", Status: StatusTodo, Tasks: []Task{}},
		{ID: ColumnInProgress, Title: "In Progress", Status: StatusInProgress, Tasks: []Task{}},
		{ID: ColumnDone, Title: "Done", Status: StatusDone, Tasks: []Task{}},
	}
}

// Drag is an in-progress drag of a task out of its column.
type Drag struct {
	TaskID    string
	From      ColumnID
	StartedAt time.Time
}

// BoardView is what a caller sees of a board: its scope, columns and drag slot.
type BoardView struct {
	// ProjectID is nil for the board of every task.
	ProjectID *string
	Columns   []Column
	// Dropped counts fetched tasks left off the board because of an unknown status.
	Dropped int
	Drag    *Drag
}
