package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"project-tracker/internal/entities"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	taskColumns               = `id, title, description, status, due_date, priority, team, COALESCE(project_id, '')`
	listTasksQuery            = `SELECT ` + taskColumns + ` FROM tasks ORDER BY seq`
	listProjectTasksQuery     = `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = $1 ORDER BY seq`
	insertTaskQuery           = `INSERT INTO tasks(id, title, description, status, due_date, priority, team, project_id) VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, '')) RETURNING ` + taskColumns
	updateTaskQuery           = `UPDATE tasks SET title = $2, description = $3, status = $4, due_date = $5, priority = $6, team = $7, project_id = NULLIF($8, '') WHERE id = $1 RETURNING ` + taskColumns
	updateTaskStatusQuery     = `UPDATE tasks SET status = $2 WHERE id = $1 RETURNING ` + taskColumns
	deleteTaskQuery           = `DELETE FROM tasks WHERE id = $1`
	deleteTasksByProjectQuery = `DELETE FROM tasks WHERE project_id = $1`
)

// ListTasks returns tasks in insertion order, optionally only those of one project.
func (p *Postgres) ListTasks(ctx context.Context, filter entities.TaskFilter) ([]entities.Task, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if filter.ProjectID != nil {
		rows, err = p.db.Query(ctx, listProjectTasksQuery, *filter.ProjectID)
	} else {
		rows, err = p.db.Query(ctx, listTasksQuery)
	}
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]entities.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			p.log.Errorw("failed to scan task", "error", err)
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// InsertTask stores a task under a generated id.
func (p *Postgres) InsertTask(ctx context.Context, task entities.Task) (*entities.Task, error) {
	team, err := encodeTeam(task.Team)
	if err != nil {
		return nil, err
	}

	row := p.db.QueryRow(ctx, insertTaskQuery, uuid.NewString(), task.Title, task.Description,
		string(task.Status), dueDateParam(task.DueDate), string(task.Priority), team, task.ProjectID)
	res, err := scanTask(row)
	if err != nil {
		p.log.Errorw("failed to insert task", "error", err, "project_id", task.ProjectID)
		return nil, fmt.Errorf("insert task: %w", err)
	}

	p.log.Infow("task inserted", "task_id", res.ID, "project_id", res.ProjectID)
	return res, nil
}

// UpdateTask overwrites a task by id.
func (p *Postgres) UpdateTask(ctx context.Context, task entities.Task) (*entities.Task, error) {
	team, err := encodeTeam(task.Team)
	if err != nil {
		return nil, err
	}

	row := p.db.QueryRow(ctx, updateTaskQuery, task.ID, task.Title, task.Description,
		string(task.Status), dueDateParam(task.DueDate), string(task.Priority), team, task.ProjectID)
	res, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		p.log.Errorw("failed to update task", "error", err, "task_id", task.ID)
		return nil, fmt.Errorf("update task: %w", err)
	}
	return res, nil
}

// UpdateTaskStatus changes only the status column.
func (p *Postgres) UpdateTaskStatus(ctx context.Context, taskID string, status entities.TaskStatus) (*entities.Task, error) {
	res, err := scanTask(p.db.QueryRow(ctx, updateTaskStatusQuery, taskID, string(status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		p.log.Errorw("failed to update task status", "error", err, "task_id", taskID)
		return nil, fmt.Errorf("update task status: %w", err)
	}
	return res, nil
}

// DeleteTask removes a task by id.
func (p *Postgres) DeleteTask(ctx context.Context, taskID string) error {
	tag, err := p.db.Exec(ctx, deleteTaskQuery, taskID)
	if err != nil {
		p.log.Errorw("failed to delete task", "error", err, "task_id", taskID)
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrTaskNotFound
	}
	return nil
}

// DeleteTasksByProject removes every task of a project and reports how many were removed.
func (p *Postgres) DeleteTasksByProject(ctx context.Context, projectID string) (int64, error) {
	tag, err := p.db.Exec(ctx, deleteTasksByProjectQuery, projectID)
	if err != nil {
		p.log.Errorw("failed to delete project tasks", "error", err, "project_id", projectID)
		return 0, fmt.Errorf("delete project tasks: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanTask(row pgx.Row) (*entities.Task, error) {
	var (
		t        entities.Task
		status   string
		priority string
		due      *time.Time
		team     []byte
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &due, &priority, &team, &t.ProjectID); err != nil {
		return nil, err
	}
	decoded, err := decodeTeam(team)
	if err != nil {
		return nil, err
	}
	t.Status = entities.TaskStatus(status)
	t.Priority = entities.Priority(priority)
	t.Team = decoded
	if due != nil {
		t.DueDate = *due
	}
	return &t, nil
}

func dueDateParam(due time.Time) *time.Time {
	if due.IsZero() {
		return nil
	}
	return &due
}
