package domain

import (
	"context"
	"fmt"

	"project-tracker/internal/entities"
)

// Board loads the board of projectID, or of every task when projectID is nil, and returns it.
func (u *Usecase) Board(ctx context.Context, session *entities.Session, projectID *string) (entities.BoardView, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return entities.BoardView{}, err
	}
	if projectID != nil {
		if _, err := ws.project(*projectID); err != nil {
			return entities.BoardView{}, err
		}
	}
	// A failed load keeps the previous columns.
	_ = ws.board.Load(ctx, projectID)
	return ws.boardView(), nil
}

// CreateTask adds a task to the currently loaded board.
func (u *Usecase) CreateTask(ctx context.Context, session *entities.Session, task entities.Task) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return nil, err
	}
	team, err := ws.resolveTeam(task.Team, nil)
	if err != nil {
		u.log.Errorw("failed to create task", "error", err)
		return nil, err
	}
	task.Team = team
	return ws.board.CreateTask(ctx, task)
}

// EditTask rewrites a task on the currently loaded board. The task keeps its project.
func (u *Usecase) EditTask(ctx context.Context, session *entities.Session, task entities.Task) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return nil, err
	}
	if task.ID == "" {
		u.log.Errorw("failed to edit task: missing id")
		return nil, fmt.Errorf("%w: id is required", entities.ErrInvalidArgument)
	}
	current, ok := ws.boardTask(task.ID)
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	team, err := ws.resolveTeam(task.Team, current.Team)
	if err != nil {
		u.log.Errorw("failed to edit task", "task_id", task.ID, "error", err)
		return nil, err
	}
	task.Team = team
	task.ProjectID = current.ProjectID
	return ws.board.EditTask(ctx, task)
}

// DeleteTask deletes a task shown in column.
func (u *Usecase) DeleteTask(ctx context.Context, session *entities.Session, taskID string, column entities.ColumnID) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return err
	}
	if taskID == "" {
		u.log.Errorw("failed to delete task: missing id")
		return fmt.Errorf("%w: id is required", entities.ErrInvalidArgument)
	}
	return ws.board.DeleteTask(ctx, taskID, column)
}

// StartDrag begins dragging a task out of column from.
func (u *Usecase) StartDrag(ctx context.Context, session *entities.Session, taskID string, from entities.ColumnID) (entities.BoardView, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return entities.BoardView{}, err
	}
	if taskID == "" {
		return entities.BoardView{}, fmt.Errorf("%w: task id is required", entities.ErrInvalidArgument)
	}
	if err := ws.board.DragStart(taskID, from); err != nil {
		return entities.BoardView{}, err
	}
	return ws.boardView(), nil
}

// AbandonDrag ends a drag without moving anything and reports whether one was in progress.
func (u *Usecase) AbandonDrag(ctx context.Context, session *entities.Session) (bool, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return false, err
	}
	return ws.board.Abandon(), nil
}

// Drop moves the dragged task into column to and returns the board afterwards.
func (u *Usecase) Drop(ctx context.Context, session *entities.Session, to entities.ColumnID) (entities.BoardView, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return entities.BoardView{}, err
	}
	if err := ws.board.Drop(ctx, to); err != nil {
		return entities.BoardView{}, err
	}
	return ws.boardView(), nil
}

func (ws *workspace) boardTask(taskID string) (entities.Task, bool) {
	for _, t := range ws.board.Tasks() {
		if t.ID == taskID {
			return t, true
		}
	}
	return entities.Task{}, false
}

func (ws *workspace) boardView() entities.BoardView {
	view := entities.BoardView{
		ProjectID: ws.board.ProjectID(),
		Columns:   ws.board.Columns(),
		Dropped:   ws.board.Dropped(),
	}
	if d := ws.board.Drag(); d.Active {
		view.Drag = &entities.Drag{TaskID: d.TaskID, From: d.From, StartedAt: d.StartedAt}
	}
	return view
}
