package postgres

import (
	"context"
	"errors"
	"fmt"

	"project-tracker/internal/entities"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	projectColumns     = `id, name, description, start_date, end_date, team`
	listProjectsQuery  = `SELECT ` + projectColumns + ` FROM projects ORDER BY seq`
	insertProjectQuery = `INSERT INTO projects(id, name, description, start_date, end_date, team) VALUES ($1, $2, $3, $4, $5, $6) RETURNING ` + projectColumns
	updateProjectQuery = `UPDATE projects SET name = $2, description = $3, start_date = $4, end_date = $5, team = $6 WHERE id = $1 RETURNING ` + projectColumns
	deleteProjectQuery = `DELETE FROM projects WHERE id = $1`
)

// ListProjects returns all projects in insertion order.
func (p *Postgres) ListProjects(ctx context.Context) ([]entities.Project, error) {
	rows, err := p.db.Query(ctx, listProjectsQuery)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]entities.Project, 0)
	for rows.Next() {
		pr, err := scanProject(rows)
		if err != nil {
			p.log.Errorw("failed to scan project", "error", err)
			return nil, err
		}
		projects = append(projects, *pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

// InsertProject stores a project under a generated id.
func (p *Postgres) InsertProject(ctx context.Context, project entities.Project) (*entities.Project, error) {
	team, err := encodeTeam(project.Team)
	if err != nil {
		return nil, err
	}

	row := p.db.QueryRow(ctx, insertProjectQuery,
		uuid.NewString(), project.Name, project.Description, project.StartDate, project.EndDate, team)
	res, err := scanProject(row)
	if err != nil {
		p.log.Errorw("failed to insert project", "error", err)
		return nil, fmt.Errorf("insert project: %w", err)
	}

	p.log.Infow("project inserted", "project_id", res.ID)
	return res, nil
}

// UpdateProject overwrites a project by id.
func (p *Postgres) UpdateProject(ctx context.Context, project entities.Project) (*entities.Project, error) {
	team, err := encodeTeam(project.Team)
	if err != nil {
		return nil, err
	}

	row := p.db.QueryRow(ctx, updateProjectQuery,
		project.ID, project.Name, project.Description, project.StartDate, project.EndDate, team)
	res, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrProjectNotFound
		}
		p.log.Errorw("failed to update project", "error", err, "project_id", project.ID)
		return nil, fmt.Errorf("update project: %w", err)
	}
	return res, nil
}

// DeleteProject removes the project row only; tasks are removed by DeleteTasksByProject beforehand.
func (p *Postgres) DeleteProject(ctx context.Context, projectID string) error {
	tag, err := p.db.Exec(ctx, deleteProjectQuery, projectID)
	if err != nil {
		p.log.Errorw("failed to delete project", "error", err, "project_id", projectID)
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrProjectNotFound
	}

	p.log.Infow("project deleted", "project_id", projectID)
	return nil
}

func scanProject(row pgx.Row) (*entities.Project, error) {
	var (
		pr   entities.Project
		team []byte
	)
	if err := row.Scan(&pr.ID, &pr.Name, &pr.Description, &pr.StartDate, &pr.EndDate, &team); err != nil {
		return nil, err
	}
	decoded, err := decodeTeam(team)
	if err != nil {
		return nil, err
	}
	pr.Team = decoded
	return &pr, nil
}
