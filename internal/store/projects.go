package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"project-tracker/internal/entities"
	"project-tracker/internal/notify"
	"project-tracker/internal/reconcile"
	"project-tracker/internal/repository"

	"go.uber.org/zap"
)

// ProjectRepository is the backend surface the Projects store writes through.
type ProjectRepository interface {
	repository.ProjectInterface
	DeleteTasksByProject(ctx context.Context, projectID string) (int64, error)
}

// Projects is the project metadata store. Every backend call is retried under the configured
// policy; final failures set Error() and emit a destructive notification.
type Projects struct {
	log   *zap.SugaredLogger
	repo  ProjectRepository
	rc    *reconcile.Reconciler
	retry reconcile.RetryPolicy

	mu       sync.RWMutex
	projects []entities.Project
	inFlight int
	lastErr  string
}

// NewProjects creates an empty Projects store.
func NewProjects(log *zap.SugaredLogger, repo ProjectRepository, rc *reconcile.Reconciler, retry reconcile.RetryPolicy) *Projects {
	return &Projects{
		log:      log.Named("store.projects"),
		repo:     repo,
		rc:       rc,
		retry:    retry,
		projects: []entities.Project{},
	}
}

func permanent(err error) bool {
	return errors.Is(err, entities.ErrInvalidArgument) || errors.Is(err, entities.ErrProjectNotFound)
}

func (s *Projects) policy(operation, failureMessage string, success *entities.Notification) reconcile.Policy {
	failure := notify.Failure("Error", failureMessage)
	return reconcile.Policy{
		Operation:  operation,
		Retry:      s.retry,
		Visibility: reconcile.Notify,
		Permanent:  permanent,
		Success:    success,
		Failure:    &failure,
	}
}

// begin marks an operation in flight and clears the previous error.
func (s *Projects) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight++
	s.lastErr = ""
}

func (s *Projects) end(err error, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	if err != nil {
		s.lastErr = message
	}
}

// FetchAll replaces the local list with the backend's.
func (s *Projects) FetchAll(ctx context.Context) error {
	const message = "Failed to fetch projects. Please try again later."
	s.begin()
	_, err := reconcile.Run(ctx, s.rc, s.policy("fetch projects", message, nil), s.repo.ListProjects,
		func(projects []entities.Project) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.projects = projects
		})
	s.end(err, message)
	return err
}

// Create inserts a project and appends the stored record.
func (s *Projects) Create(ctx context.Context, project entities.Project) (*entities.Project, error) {
	project, err := normalizeProject(project)
	if err != nil {
		return nil, err
	}

	const message = "Failed to create project. Please try again later."
	success := notify.Success("Success", "Project created successfully")
	s.begin()
	created, err := reconcile.Run(ctx, s.rc, s.policy("create project", message, &success),
		func(ctx context.Context) (*entities.Project, error) {
			return s.repo.InsertProject(ctx, project)
		},
		func(created *entities.Project) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.projects = append(s.projects, created.Clone())
		})
	s.end(err, message)
	return created, err
}

// Update writes the project by id and replaces the local entry.
func (s *Projects) Update(ctx context.Context, project entities.Project) (*entities.Project, error) {
	project, err := normalizeProject(project)
	if err != nil {
		return nil, err
	}
	if project.ID == "" {
		return nil, fmt.Errorf("%w: id is required", entities.ErrInvalidArgument)
	}

	const message = "Failed to update project. Please try again later."
	success := notify.Success("Success", "Project updated successfully")
	s.begin()
	updated, err := reconcile.Run(ctx, s.rc, s.policy("update project", message, &success),
		func(ctx context.Context) (*entities.Project, error) {
			return s.repo.UpdateProject(ctx, project)
		},
		func(updated *entities.Project) {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i := range s.projects {
				if s.projects[i].ID == updated.ID {
					s.projects[i] = updated.Clone()
				}
			}
		})
	s.end(err, message)
	return updated, err
}

// Delete removes the project's tasks and then the project. When the task step fails the project
// row is not touched.
func (s *Projects) Delete(ctx context.Context, projectID string) error {
	if projectID == "" {
		return fmt.Errorf("%w: id is required", entities.ErrInvalidArgument)
	}

	const message = "Failed to delete project. Please try again later."
	s.begin()
	err := s.delete(ctx, projectID, message)
	s.end(err, message)
	return err
}

func (s *Projects) delete(ctx context.Context, projectID, message string) error {
	removed, err := reconcile.Run(ctx, s.rc, s.policy("delete project tasks", message, nil),
		func(ctx context.Context) (int64, error) {
			return s.repo.DeleteTasksByProject(ctx, projectID)
		}, nil)
	if err != nil {
		return err
	}
	s.log.Infow("project tasks removed", "project_id", projectID, "tasks", removed)

	success := notify.Success("Success", "Project deleted successfully")
	_, err = reconcile.Run(ctx, s.rc, s.policy("delete project", message, &success),
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.repo.DeleteProject(ctx, projectID)
		},
		func(struct{}) {
			s.mu.Lock()
			defer s.mu.Unlock()
			kept := s.projects[:0:0]
			for _, p := range s.projects {
				if p.ID != projectID {
					kept = append(kept, p)
				}
			}
			s.projects = kept
		})
	return err
}

// GetByID looks the project up in the local list.
func (s *Projects) GetByID(projectID string) (entities.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == projectID {
			return p.Clone(), true
		}
	}
	return entities.Project{}, false
}

// All returns a copy of the local list.
func (s *Projects) All() []entities.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p.Clone())
	}
	return out
}

// Loading reports whether a backend call is in flight.
func (s *Projects) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}

// Error returns the message of the last failed operation, or "" after a success.
func (s *Projects) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func normalizeProject(p entities.Project) (entities.Project, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	switch {
	case p.Name == "":
		return p, fmt.Errorf("%w: name is required", entities.ErrInvalidArgument)
	case p.StartDate.IsZero() || p.EndDate.IsZero():
		return p, fmt.Errorf("%w: start and end dates are required", entities.ErrInvalidArgument)
	case p.EndDate.Before(p.StartDate):
		return p, fmt.Errorf("%w: end date is before start date", entities.ErrInvalidArgument)
	}
	return p.Clone(), nil
}
