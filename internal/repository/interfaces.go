// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"project-tracker/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// TeamMemberInterface exposes the team_members table.
type TeamMemberInterface interface {
	ListTeamMembers(ctx context.Context) ([]entities.TeamMember, error)
	InsertTeamMember(ctx context.Context, member entities.TeamMember) (*entities.TeamMember, error)
	UpdateTeamMember(ctx context.Context, member entities.TeamMember) (*entities.TeamMember, error)
	DeleteTeamMember(ctx context.Context, memberID string) error
}

// ProjectInterface exposes the projects table.
type ProjectInterface interface {
	ListProjects(ctx context.Context) ([]entities.Project, error)
	InsertProject(ctx context.Context, project entities.Project) (*entities.Project, error)
	UpdateProject(ctx context.Context, project entities.Project) (*entities.Project, error)
	DeleteProject(ctx context.Context, projectID string) error
}

// TaskInterface exposes the tasks table.
type TaskInterface interface {
	ListTasks(ctx context.Context, filter entities.TaskFilter) ([]entities.Task, error)
	InsertTask(ctx context.Context, task entities.Task) (*entities.Task, error)
	UpdateTask(ctx context.Context, task entities.Task) (*entities.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID string, status entities.TaskStatus) (*entities.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
	DeleteTasksByProject(ctx context.Context, projectID string) (int64, error)
}

// UserInterface exposes accounts used by authentication.
type UserInterface interface {
	CreateUser(ctx context.Context, user entities.User) (*entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	GetUserByID(ctx context.Context, userID string) (*entities.User, error)
}
