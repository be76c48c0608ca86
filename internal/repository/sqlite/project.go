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
	projectColumns     = `id, name, description, start_date, end_date, team`
	listProjectsQuery  = `SELECT ` + projectColumns + ` FROM projects ORDER BY seq`
	insertProjectQuery = `INSERT INTO projects(id, name, description, start_date, end_date, team) VALUES (?, ?, ?, ?, ?, ?) RETURNING ` + projectColumns
	updateProjectQuery = `UPDATE projects SET name = ?, description = ?, start_date = ?, end_date = ?, team = ? WHERE id = ? RETURNING ` + projectColumns
	deleteProjectQuery = `DELETE FROM projects WHERE id = ?`
)

type scanner interface {
	Scan(dest ...any) error
}

// ListProjects returns all projects in insertion order.
func (s *SQLite) ListProjects(ctx context.Context) ([]entities.Project, error) {
	rows, err := s.db.QueryContext(ctx, listProjectsQuery)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]entities.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			s.log.Errorw("failed to scan project", "error", err)
			return nil, err
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

// InsertProject stores a project under a generated id.
func (s *SQLite) InsertProject(ctx context.Context, project entities.Project) (*entities.Project, error) {
	team, err := encodeTeam(project.Team)
	if err != nil {
		return nil, err
	}

	res, err := scanProject(s.db.QueryRowContext(ctx, insertProjectQuery, uuid.NewString(), project.Name,
		project.Description, formatDate(project.StartDate), formatDate(project.EndDate), team))
	if err != nil {
		s.log.Errorw("failed to insert project", "error", err)
		return nil, fmt.Errorf("insert project: %w", err)
	}

	s.log.Infow("project inserted", "project_id", res.ID)
	return res, nil
}

// UpdateProject overwrites a project by id.
func (s *SQLite) UpdateProject(ctx context.Context, project entities.Project) (*entities.Project, error) {
	team, err := encodeTeam(project.Team)
	if err != nil {
		return nil, err
	}

	res, err := scanProject(s.db.QueryRowContext(ctx, updateProjectQuery, project.Name, project.Description,
		formatDate(project.StartDate), formatDate(project.EndDate), team, project.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrProjectNotFound
		}
		s.log.Errorw("failed to update project", "error", err, "project_id", project.ID)
		return nil, fmt.Errorf("update project: %w", err)
	}
	return res, nil
}

// DeleteProject removes the project row only.
func (s *SQLite) DeleteProject(ctx context.Context, projectID string) error {
	res, err := s.db.ExecContext(ctx, deleteProjectQuery, projectID)
	if err != nil {
		s.log.Errorw("failed to delete project", "error", err, "project_id", projectID)
		return fmt.Errorf("delete project: %w", err)
	}
	if err := requireAffected(res, entities.ErrProjectNotFound); err != nil {
		return err
	}

	s.log.Infow("project deleted", "project_id", projectID)
	return nil
}

func scanProject(row scanner) (*entities.Project, error) {
	var (
		p          entities.Project
		start, end string
		team       string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &start, &end, &team); err != nil {
		return nil, err
	}

	var err error
	if p.StartDate, err = parseDate(start); err != nil {
		return nil, err
	}
	if p.EndDate, err = parseDate(end); err != nil {
		return nil, err
	}
	if p.Team, err = decodeTeam(team); err != nil {
		return nil, err
	}
	return &p, nil
}
