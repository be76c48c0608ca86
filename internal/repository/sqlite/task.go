package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"project-tracker/internal/entities"

	"github.com/google/uuid"
)

const (
	taskColumns               = `id, title, description, status, due_date, priority, team, COALESCE(project_id, '')`
	listTasksQuery            = `SELECT ` + taskColumns + ` FROM tasks ORDER BY seq`
	listProjectTasksQuery     = `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ? ORDER BY seq`
	insertTaskQuery           = `INSERT INTO tasks(id, title, description, status, due_date, priority, team, project_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING ` + taskColumns
	updateTaskQuery           = `UPDATE tasks SET title = ?, description = ?, status = ?, due_date = ?, priority = ?, team = ?, project_id = ? WHERE id = ? RETURNING ` + taskColumns
	updateTaskStatusQuery     = `UPDATE tasks SET status = ? WHERE id = ? RETURNING ` + taskColumns
	deleteTaskQuery           = `DELETE FROM tasks WHERE id = ?`
	deleteTasksByProjectQuery = `DELETE FROM tasks WHERE project_id = ?`
)

// ListTasks returns tasks in insertion order, optionally only those of one project.
func (s *SQLite) ListTasks(ctx context.Context, filter entities.TaskFilter) ([]entities.Task, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if filter.ProjectID != nil {
		rows, err = s.db.QueryContext(ctx, listProjectTasksQuery, *filter.ProjectID)
	} else {
		rows, err = s.db.QueryContext(ctx, listTasksQuery)
	}
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]entities.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			s.log.Errorw("failed to scan task", "error", err)
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
func (s *SQLite) InsertTask(ctx context.Context, task entities.Task) (*entities.Task, error) {
	team, err := encodeTeam(task.Team)
	if err != nil {
		return nil, err
	}

	res, err := scanTask(s.db.QueryRowContext(ctx, insertTaskQuery, uuid.NewString(), task.Title, task.Description,
		string(task.Status), nullableDate(task.DueDate), string(task.Priority), team, nullableText(task.ProjectID)))
	if err != nil {
		s.log.Errorw("failed to insert task", "error", err, "project_id", task.ProjectID)
		return nil, fmt.Errorf("insert task: %w", err)
	}

	s.log.Infow("task inserted", "task_id", res.ID, "project_id", res.ProjectID)
	return res, nil
}

// UpdateTask overwrites a task by id.
func (s *SQLite) UpdateTask(ctx context.Context, task entities.Task) (*entities.Task, error) {
	team, err := encodeTeam(task.Team)
	if err != nil {
		return nil, err
	}

	res, err := scanTask(s.db.QueryRowContext(ctx, updateTaskQuery, task.Title, task.Description, string(task.Status),
		nullableDate(task.DueDate), string(task.Priority), team, nullableText(task.ProjectID), task.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		s.log.Errorw("failed to update task", "error", err, "task_id", task.ID)
		return nil, fmt.Errorf("update task: %w", err)
	}
	return res, nil
}

// UpdateTaskStatus changes only the status column.
func (s *SQLite) UpdateTaskStatus(ctx context.Context, taskID string, status entities.TaskStatus) (*entities.Task, error) {
	res, err := scanTask(s.db.QueryRowContext(ctx, updateTaskStatusQuery, string(status), taskID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		s.log.Errorw("failed to update task status", "error", err, "task_id", taskID)
		return nil, fmt.Errorf("update task status: %w", err)
	}
	return res, nil
}

// DeleteTask removes a task by id.
func (s *SQLite) DeleteTask(ctx context.Context, taskID string) error {
	res, err := s.db.ExecContext(ctx, deleteTaskQuery, taskID)
	if err != nil {
		s.log.Errorw("failed to delete task", "error", err, "task_id", taskID)
		return fmt.Errorf("delete task: %w", err)
	}
	return requireAffected(res, entities.ErrTaskNotFound)
}

// DeleteTasksByProject removes every task of a project and reports how many were removed.
func (s *SQLite) DeleteTasksByProject(ctx context.Context, projectID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, deleteTasksByProjectQuery, projectID)
	if err != nil {
		s.log.Errorw("failed to delete project tasks", "error", err, "project_id", projectID)
		return 0, fmt.Errorf("delete project tasks: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func scanTask(row scanner) (*entities.Task, error) {
	var (
		t        entities.Task
		status   string
		priority string
		due      sql.NullString
		team     string
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &due, &priority, &team, &t.ProjectID); err != nil {
		return nil, err
	}

	var err error
	if due.Valid && due.String != "" {
		if t.DueDate, err = parseDate(due.String); err != nil {
			return nil, err
		}
	}
	if t.Team, err = decodeTeam(team); err != nil {
		return nil, err
	}
	t.Status = entities.TaskStatus(status)
	t.Priority = entities.Priority(priority)
	return &t, nil
}
