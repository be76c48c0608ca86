package board

import (
	"time"

	"project-tracker/internal/entities"
)

// drag is the board's drag slot: idle when active is false, otherwise dragging a task out of a column.
type drag struct {
	active    bool
	taskID    string
	from      entities.ColumnID
	startedAt time.Time
}

func (d drag) expired(now time.Time, timeout time.Duration) bool {
	return d.active && timeout > 0 && now.Sub(d.startedAt) > timeout
}

// DragState is a read-only view of the drag slot.
type DragState struct {
	Active    bool
	TaskID    string
	From      entities.ColumnID
	StartedAt time.Time
}
