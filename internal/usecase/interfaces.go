package usecase

import (
	"context"

	"project-tracker/internal/entities"
)

// AuthUsecaseInterface abstracts sign-in and session handling for delivery layer.
type AuthUsecaseInterface interface {
	SignIn(ctx context.Context, email, password string) (*entities.Session, error)
	Session(ctx context.Context, token string) (*entities.Session, error)
	SignOut(ctx context.Context, token string) error
}

// TeamUsecaseInterface abstracts roster operations.
type TeamUsecaseInterface interface {
	TeamMembers(ctx context.Context, session *entities.Session, query string) ([]entities.TeamMember, error)
	TeamMember(ctx context.Context, session *entities.Session, memberID string) (*entities.TeamMember, error)
	AddTeamMember(ctx context.Context, session *entities.Session, member entities.TeamMember) (*entities.TeamMember, error)
	UpdateTeamMember(ctx context.Context, session *entities.Session, member entities.TeamMember) (*entities.TeamMember, error)
	DeleteTeamMember(ctx context.Context, session *entities.Session, memberID string) error
	Workload(ctx context.Context, session *entities.Session, projectID *string, query string) ([]entities.MemberWorkload, error)
}

// ProjectUsecaseInterface abstracts project operations.
type ProjectUsecaseInterface interface {
	Projects(ctx context.Context, session *entities.Session, refresh bool) (entities.ProjectList, error)
	Project(ctx context.Context, session *entities.Session, projectID string) (*entities.Project, error)
	CreateProject(ctx context.Context, session *entities.Session, project entities.Project) (*entities.Project, error)
	UpdateProject(ctx context.Context, session *entities.Session, project entities.Project) (*entities.Project, error)
	DeleteProject(ctx context.Context, session *entities.Session, projectID string) error
}

// BoardUsecaseInterface abstracts kanban board operations.
type BoardUsecaseInterface interface {
	Board(ctx context.Context, session *entities.Session, projectID *string) (entities.BoardView, error)
	CreateTask(ctx context.Context, session *entities.Session, task entities.Task) (*entities.Task, error)
	EditTask(ctx context.Context, session *entities.Session, task entities.Task) (*entities.Task, error)
	DeleteTask(ctx context.Context, session *entities.Session, taskID string, column entities.ColumnID) error
	StartDrag(ctx context.Context, session *entities.Session, taskID string, from entities.ColumnID) (entities.BoardView, error)
	AbandonDrag(ctx context.Context, session *entities.Session) (bool, error)
	Drop(ctx context.Context, session *entities.Session, to entities.ColumnID) (entities.BoardView, error)
}

// DashboardUsecaseInterface abstracts the landing page summary.
type DashboardUsecaseInterface interface {
	Dashboard(ctx context.Context, session *entities.Session) (entities.Dashboard, error)
}

// NotificationUsecaseInterface abstracts access to queued notifications.
type NotificationUsecaseInterface interface {
	Notifications(ctx context.Context, session *entities.Session) ([]entities.Notification, error)
}
