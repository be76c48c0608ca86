package memory

import (
	"context"
	"fmt"

	"project-tracker/internal/entities"
)

type projectRecord struct {
	Seq     int64
	Project entities.Project
}

func (r projectRecord) sequence() int64 { return r.Seq }

// ListProjects returns all projects in insertion order.
func (m *Memory) ListProjects(ctx context.Context) ([]entities.Project, error) {
	records, err := collect(m.projects.QueryMany(ctx, everything[projectRecord]))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	out := make([]entities.Project, 0, len(records))
	for _, r := range records {
		out = append(out, r.Project.Clone())
	}
	return out, nil
}

// InsertProject stores a project under a generated id.
func (m *Memory) InsertProject(ctx context.Context, project entities.Project) (*entities.Project, error) {
	project = project.Clone()
	project.ID = ""
	rec := projectRecord{Seq: m.nextSeq(), Project: project}
	if err := m.projects.Create(ctx, &rec); err != nil {
		m.log.Errorw("failed to insert project", "error", err)
		return nil, fmt.Errorf("insert project: %w", err)
	}

	m.log.Infow("project inserted", "project_id", rec.Project.ID)
	out := rec.Project.Clone()
	return &out, nil
}

// UpdateProject overwrites a project by id.
func (m *Memory) UpdateProject(ctx context.Context, project entities.Project) (*entities.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, found, err := m.projects.FindByID(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if !found {
		return nil, entities.ErrProjectNotFound
	}
	rec.Project = project.Clone()
	if err := m.projects.Update(ctx, &rec); err != nil {
		return nil, mapNotFound(err, entities.ErrProjectNotFound)
	}
	out := rec.Project.Clone()
	return &out, nil
}

// DeleteProject removes the project record only.
func (m *Memory) DeleteProject(ctx context.Context, projectID string) error {
	if err := m.projects.DeleteByID(ctx, projectID); err != nil {
		return mapNotFound(err, entities.ErrProjectNotFound)
	}
	m.log.Infow("project deleted", "project_id", projectID)
	return nil
}
