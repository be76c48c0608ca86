package domain

import (
	"context"
	"fmt"

	"project-tracker/internal/entities"
	"project-tracker/internal/notify"
)

// Projects returns the session's project list with its loading and error state. With refresh the
// list is fetched from the backend first.
func (u *Usecase) Projects(ctx context.Context, session *entities.Session, refresh bool) (entities.ProjectList, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return entities.ProjectList{}, err
	}
	if refresh {
		// A failed fetch keeps the previous list and is reported through Error.
		_ = ws.projects.FetchAll(ctx)
	}
	return entities.ProjectList{
		Projects: ws.projects.All(),
		Loading:  ws.projects.Loading(),
		Error:    ws.projects.Error(),
	}, nil
}

// Project returns one project of the session's list.
func (u *Usecase) Project(ctx context.Context, session *entities.Session, projectID string) (*entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return nil, err
	}
	p, err := ws.project(projectID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProject creates a project whose team is resolved against the roster.
func (u *Usecase) CreateProject(ctx context.Context, session *entities.Session, project entities.Project) (*entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return nil, err
	}
	team, err := ws.resolveTeam(project.Team, nil)
	if err != nil {
		u.log.Errorw("failed to create project", "error", err)
		return nil, err
	}
	project.ID = ""
	project.Team = team
	return ws.projects.Create(ctx, project)
}

// UpdateProject rewrites a project. Members already in its team snapshot may stay even when they
// have since left the roster.
func (u *Usecase) UpdateProject(ctx context.Context, session *entities.Session, project entities.Project) (*entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return nil, err
	}
	current, err := ws.project(project.ID)
	if err != nil {
		return nil, err
	}
	team, err := ws.resolveTeam(project.Team, current.Team)
	if err != nil {
		u.log.Errorw("failed to update project", "project_id", project.ID, "error", err)
		return nil, err
	}
	project.Team = team
	return ws.projects.Update(ctx, project)
}

// DeleteProject deletes a project together with its tasks.
func (u *Usecase) DeleteProject(ctx context.Context, session *entities.Session, projectID string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return err
	}
	if _, err := ws.project(projectID); err != nil {
		return err
	}
	return ws.projects.Delete(ctx, projectID)
}

// project looks a project up in the local list and notifies when it is missing.
func (ws *workspace) project(projectID string) (entities.Project, error) {
	if projectID == "" {
		return entities.Project{}, fmt.Errorf("%w: project id is required", entities.ErrInvalidArgument)
	}
	p, ok := ws.projects.GetByID(projectID)
	if !ok {
		ws.notifications.Notify(notify.Failure("Project not found", "The requested project could not be found"))
		return entities.Project{}, entities.ErrProjectNotFound
	}
	return p, nil
}

// resolveTeam replaces the requested members, of which only ids are used, by their roster records.
// Ids missing from the roster are taken from previous when present there.
func (ws *workspace) resolveTeam(requested, previous entities.TeamSnapshot) (entities.TeamSnapshot, error) {
	team := entities.TeamSnapshot{}
	for _, m := range requested {
		if team.Contains(m.ID) {
			continue
		}
		if member, ok := ws.team.GetByID(m.ID); ok {
			team = append(team, member)
			continue
		}
		found := false
		for _, old := range previous {
			if old.ID == m.ID {
				team = append(team, old)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: unknown team member %q", entities.ErrInvalidArgument, m.ID)
		}
	}
	return team, nil
}
