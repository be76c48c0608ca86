package memory

import (
	"context"
	"fmt"

	"project-tracker/internal/entities"
)

type taskRecord struct {
	Seq  int64
	Task entities.Task
}

func (r taskRecord) sequence() int64 { return r.Seq }

// ListTasks returns tasks in insertion order, optionally only those of one project.
func (m *Memory) ListTasks(ctx context.Context, filter entities.TaskFilter) ([]entities.Task, error) {
	records, err := collect(m.tasks.QueryMany(ctx, func(r taskRecord) bool {
		return filter.ProjectID == nil || r.Task.ProjectID == *filter.ProjectID
	}))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	out := make([]entities.Task, 0, len(records))
	for _, r := range records {
		out = append(out, r.Task.Clone())
	}
	return out, nil
}

// InsertTask stores a task under a generated id.
func (m *Memory) InsertTask(ctx context.Context, task entities.Task) (*entities.Task, error) {
	task = task.Clone()
	task.ID = ""
	rec := taskRecord{Seq: m.nextSeq(), Task: task}
	if err := m.tasks.Create(ctx, &rec); err != nil {
		m.log.Errorw("failed to insert task", "error", err)
		return nil, fmt.Errorf("insert task: %w", err)
	}

	m.log.Infow("task inserted", "task_id", rec.Task.ID, "project_id", rec.Task.ProjectID)
	out := rec.Task.Clone()
	return &out, nil
}

// UpdateTask overwrites a task by id.
func (m *Memory) UpdateTask(ctx context.Context, task entities.Task) (*entities.Task, error) {
	return m.modifyTask(ctx, task.ID, func(t *entities.Task) { *t = task.Clone() })
}

// UpdateTaskStatus changes only the status of a task.
func (m *Memory) UpdateTaskStatus(ctx context.Context, taskID string, status entities.TaskStatus) (*entities.Task, error) {
	return m.modifyTask(ctx, taskID, func(t *entities.Task) { t.Status = status })
}

func (m *Memory) modifyTask(ctx context.Context, taskID string, change func(*entities.Task)) (*entities.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, found, err := m.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if !found {
		return nil, entities.ErrTaskNotFound
	}
	change(&rec.Task)
	rec.Task.ID = taskID
	if err := m.tasks.Update(ctx, &rec); err != nil {
		return nil, mapNotFound(err, entities.ErrTaskNotFound)
	}
	out := rec.Task.Clone()
	return &out, nil
}

// DeleteTask removes a task by id.
func (m *Memory) DeleteTask(ctx context.Context, taskID string) error {
	if err := m.tasks.DeleteByID(ctx, taskID); err != nil {
		return mapNotFound(err, entities.ErrTaskNotFound)
	}
	return nil
}

// DeleteTasksByProject removes every task of a project and reports how many were removed.
func (m *Memory) DeleteTasksByProject(ctx context.Context, projectID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records, err := collect(m.tasks.QueryMany(ctx, func(r taskRecord) bool { return r.Task.ProjectID == projectID }))
	if err != nil {
		return 0, fmt.Errorf("delete project tasks: %w", err)
	}

	var removed int64
	for _, r := range records {
		if err := m.tasks.DeleteByID(ctx, r.Task.ID); err != nil {
			return removed, fmt.Errorf("delete project tasks: %w", err)
		}
		removed++
	}
	return removed, nil
}
