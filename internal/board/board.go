// Package board implements the kanban board: three fixed status columns kept in step with the task
// table, and the drag and drop state machine that moves tasks between them.
package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"project-tracker/internal/entities"
	"project-tracker/internal/notify"
	"project-tracker/internal/reconcile"
	"project-tracker/internal/repository"

	"go.llib.dev/testcase/clock"
	"go.uber.org/zap"
)

// SessionLookup resolves the caller's session. Task creation calls it right before writing.
type SessionLookup func(ctx context.Context) (*entities.Session, error)

// Board holds the columns of the currently viewed scope. Local state changes only after the backend
// accepted the corresponding write.
type Board struct {
	log         *zap.SugaredLogger
	repo        repository.TaskInterface
	rc          *reconcile.Reconciler
	session     SessionLookup
	dragTimeout time.Duration

	mu        sync.Mutex
	projectID *string
	columns   []entities.Column
	drag      drag
	dropped   int
}

// New creates a board with three empty columns.
func New(log *zap.SugaredLogger, repo repository.TaskInterface, rc *reconcile.Reconciler, session SessionLookup, dragTimeout time.Duration) *Board {
	return &Board{
		log:         log.Named("board"),
		repo:        repo,
		rc:          rc,
		session:     session,
		dragTimeout: dragTimeout,
		columns:     entities.BoardLayout(),
	}
}

func failure(description string) *entities.Notification {
	n := notify.Failure("Error", description)
	return &n
}

func success(title, description string) *entities.Notification {
	n := notify.Success(title, description)
	return &n
}

// Load fetches the tasks of projectID, or every task when projectID is nil, and partitions them by
// status. Tasks with an unknown status are left out and counted in Dropped. A failed fetch is logged
// and leaves the board unchanged.
func (b *Board) Load(ctx context.Context, projectID *string) error {
	var scope *string
	if projectID != nil {
		// The board outlives the request; request strings may alias reused buffers.
		id := strings.Clone(*projectID)
		scope = &id
	}

	_, err := reconcile.Run(ctx, b.rc, reconcile.Policy{
		Operation:  "fetch tasks",
		Visibility: reconcile.Silent,
	}, func(ctx context.Context) ([]entities.Task, error) {
		return b.repo.ListTasks(ctx, entities.TaskFilter{ProjectID: scope})
	}, func(tasks []entities.Task) {
		columns, dropped := partition(tasks)
		if dropped > 0 {
			b.log.Warnw("tasks with unknown status left off the board", "count", dropped)
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		b.projectID = scope
		b.columns = columns
		b.dropped = dropped
		b.drag = drag{}
	})
	return err
}

func partition(tasks []entities.Task) ([]entities.Column, int) {
	columns := entities.BoardLayout()
	dropped := 0
	for _, t := range tasks {
		i := statusIndex(columns, t.Status)
		if i < 0 {
			dropped++
			continue
		}
		columns[i].Tasks = append(columns[i].Tasks, t.Clone())
	}
	return columns, dropped
}

func columnIndex(columns []entities.Column, id entities.ColumnID) int {
	for i := range columns {
		if columns[i].ID == id {
			return i
		}
	}
	return -1
}

func statusIndex(columns []entities.Column, status entities.TaskStatus) int {
	for i := range columns {
		if columns[i].Status == status {
			return i
		}
	}
	return -1
}

func taskIndex(tasks []entities.Task, taskID string) int {
	for i := range tasks {
		if tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

// ProjectID returns the scope of the loaded columns; nil means unscoped.
func (b *Board) ProjectID() *string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.projectID == nil {
		return nil
	}
	id := *b.projectID
	return &id
}

// Columns returns a copy of the three columns in display order.
func (b *Board) Columns() []entities.Column {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]entities.Column, len(b.columns))
	for i, c := range b.columns {
		out[i] = c
		out[i].Tasks = make([]entities.Task, 0, len(c.Tasks))
		for _, t := range c.Tasks {
			out[i].Tasks = append(out[i].Tasks, t.Clone())
		}
	}
	return out
}

// Tasks returns every task on the board in column order.
func (b *Board) Tasks() []entities.Task {
	var out []entities.Task
	for _, c := range b.Columns() {
		out = append(out, c.Tasks...)
	}
	return out
}

// Dropped reports how many fetched tasks the last load left off the board.
func (b *Board) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// DragStart records that taskID is being dragged out of column from.
func (b *Board) DragStart(taskID string, from entities.ColumnID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := clock.Now()
	if b.drag.expired(now, b.dragTimeout) {
		b.log.Infow("stale drag abandoned", "task_id", b.drag.taskID, "started_at", b.drag.startedAt)
	}

	ci := columnIndex(b.columns, from)
	if ci < 0 {
		return fmt.Errorf("%w: %q", entities.ErrUnknownColumn, from)
	}
	if taskIndex(b.columns[ci].Tasks, taskID) < 0 {
		return fmt.Errorf("%w: %s is not in column %s", entities.ErrTaskNotFound, taskID, from)
	}

	b.drag = drag{active: true, taskID: taskID, from: from, startedAt: now}
	return nil
}

// Abandon returns the drag slot to idle and reports whether a drag was in progress.
func (b *Board) Abandon() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	was := b.drag.active
	b.drag = drag{}
	return was
}

// Drag returns the current drag slot.
func (b *Board) Drag() DragState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return DragState{Active: b.drag.active, TaskID: b.drag.taskID, From: b.drag.from, StartedAt: b.drag.startedAt}
}

// Drop moves the dragged task to column to. The drag slot is consumed before the status is written,
// so a repeated drop of the same drag does nothing. Columns change only when the write succeeds.
// Without a drag, or with an unknown target column, nothing changes. A task that left its origin
// column after the drag started abandons the drag with ErrTaskNotFound and is not written.
func (b *Board) Drop(ctx context.Context, to entities.ColumnID) error {
	b.mu.Lock()
	d := b.drag
	if !d.active {
		b.mu.Unlock()
		return entities.ErrNoDragInProgress
	}
	if d.expired(clock.Now(), b.dragTimeout) {
		b.drag = drag{}
		b.mu.Unlock()
		b.log.Infow("drop after drag window closed", "task_id", d.taskID, "started_at", d.startedAt)
		return entities.ErrDragExpired
	}
	ti := columnIndex(b.columns, to)
	if ti < 0 {
		b.mu.Unlock()
		return fmt.Errorf("%w: %q", entities.ErrUnknownColumn, to)
	}
	status := b.columns[ti].Status
	b.drag = drag{}
	if fi := columnIndex(b.columns, d.from); taskIndex(b.columns[fi].Tasks, d.taskID) < 0 {
		b.mu.Unlock()
		b.log.Infow("dragged task left its origin column", "task_id", d.taskID, "from", d.from)
		return fmt.Errorf("%w: %s is no longer in column %s", entities.ErrTaskNotFound, d.taskID, d.from)
	}
	b.mu.Unlock()

	_, err := reconcile.Run(ctx, b.rc, reconcile.Policy{
		Operation:  "move task",
		Visibility: reconcile.Notify,
		Success:    success("Task moved", "The task has been moved successfully."),
		Failure:    failure("Failed to update task status."),
	}, func(ctx context.Context) (*entities.Task, error) {
		return b.repo.UpdateTaskStatus(ctx, d.taskID, status)
	}, func(*entities.Task) {
		b.mu.Lock()
		defer b.mu.Unlock()
		task, ok := b.take(d.taskID)
		if !ok {
			b.log.Warnw("moved task no longer on the board", "task_id", d.taskID, "from", d.from)
			return
		}
		task.Status = status
		b.columns[ti].Tasks = append(b.columns[ti].Tasks, task)
	})
	return err
}

// CreateTask writes a new task under the board's project and appends it to the column of its status.
// The caller's session is looked up first; without one nothing is written.
func (b *Board) CreateTask(ctx context.Context, task entities.Task) (*entities.Task, error) {
	task = withDefaults(task)
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if _, err := b.session(ctx); err != nil {
		b.log.Warnw("task creation without session", "error", err)
		b.rc.Notifier().Notify(*failure("You must be authenticated to create tasks."))
		if errors.Is(err, entities.ErrUnauthenticated) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", entities.ErrUnauthenticated, err)
	}

	task.ID = ""
	task.ProjectID = ""
	if scope := b.ProjectID(); scope != nil {
		task.ProjectID = *scope
	}

	return reconcile.Run(ctx, b.rc, reconcile.Policy{
		Operation:  "create task",
		Visibility: reconcile.Notify,
		Success:    success("Task added", "New task has been created successfully."),
		Failure:    failure("Failed to create task."),
	}, func(ctx context.Context) (*entities.Task, error) {
		return b.repo.InsertTask(ctx, task)
	}, func(created *entities.Task) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if i := statusIndex(b.columns, created.Status); i >= 0 {
			b.columns[i].Tasks = append(b.columns[i].Tasks, created.Clone())
		}
	})
}

// EditTask writes the full task by id and replaces it on the board. A task whose status changed
// moves to the end of its new column.
func (b *Board) EditTask(ctx context.Context, task entities.Task) (*entities.Task, error) {
	task = withDefaults(task)
	if task.ID == "" {
		return nil, fmt.Errorf("%w: id is required", entities.ErrInvalidArgument)
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	return reconcile.Run(ctx, b.rc, reconcile.Policy{
		Operation:  "update task",
		Visibility: reconcile.Notify,
		Success:    success("Task updated", "The task has been updated successfully."),
		Failure:    failure("Failed to update task."),
	}, func(ctx context.Context) (*entities.Task, error) {
		return b.repo.UpdateTask(ctx, task)
	}, func(updated *entities.Task) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.replace(*updated)
	})
}

// take removes the task from whichever column currently holds it.
func (b *Board) take(taskID string) (entities.Task, bool) {
	for ci := range b.columns {
		tasks := b.columns[ci].Tasks
		if i := taskIndex(tasks, taskID); i >= 0 {
			task := tasks[i]
			b.columns[ci].Tasks = append(tasks[:i:i], tasks[i+1:]...)
			return task, true
		}
	}
	return entities.Task{}, false
}

// replace swaps every copy of t on the board in a single pass over the columns.
func (b *Board) replace(t entities.Task) {
	moved := false
	for ci := range b.columns {
		tasks := b.columns[ci].Tasks
		for i := range tasks {
			if tasks[i].ID != t.ID {
				continue
			}
			if b.columns[ci].Status == t.Status {
				tasks[i] = t.Clone()
				continue
			}
			b.columns[ci].Tasks = append(tasks[:i:i], tasks[i+1:]...)
			moved = true
			break
		}
	}
	if moved {
		if i := statusIndex(b.columns, t.Status); i >= 0 {
			b.columns[i].Tasks = append(b.columns[i].Tasks, t.Clone())
		}
	}
}

// DeleteTask removes the task from the backend and then from column.
func (b *Board) DeleteTask(ctx context.Context, taskID string, column entities.ColumnID) error {
	b.mu.Lock()
	known := columnIndex(b.columns, column) >= 0
	b.mu.Unlock()
	if !known {
		return fmt.Errorf("%w: %q", entities.ErrUnknownColumn, column)
	}

	deleted := notify.Failure("Task deleted", "The task has been deleted successfully.")
	_, err := reconcile.Run(ctx, b.rc, reconcile.Policy{
		Operation:  "delete task",
		Visibility: reconcile.Notify,
		Success:    &deleted,
		Failure:    failure("Failed to delete task."),
	}, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, b.repo.DeleteTask(ctx, taskID)
	}, func(struct{}) {
		b.mu.Lock()
		defer b.mu.Unlock()
		ci := columnIndex(b.columns, column)
		kept := make([]entities.Task, 0, len(b.columns[ci].Tasks))
		for _, t := range b.columns[ci].Tasks {
			if t.ID != taskID {
				kept = append(kept, t)
			}
		}
		b.columns[ci].Tasks = kept
	})
	return err
}

func withDefaults(t entities.Task) entities.Task {
	t.Title = strings.TrimSpace(t.Title)
	if t.Status == "" {
		t.Status = entities.StatusTodo
	}
	if t.Priority == "" {
		t.Priority = entities.PriorityMedium
	}
	return t.Clone()
}
