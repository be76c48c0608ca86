// Package repositorytest holds behaviour checks shared by every repository backend.
package repositorytest

import (
	"context"
	"testing"
	"time"

	"project-tracker/internal/entities"

	"github.com/stretchr/testify/require"
)

// Subject is the row store under test.
type Subject interface {
	ListTeamMembers(ctx context.Context) ([]entities.TeamMember, error)
	InsertTeamMember(ctx context.Context, member entities.TeamMember) (*entities.TeamMember, error)
	UpdateTeamMember(ctx context.Context, member entities.TeamMember) (*entities.TeamMember, error)
	DeleteTeamMember(ctx context.Context, memberID string) error

	ListProjects(ctx context.Context) ([]entities.Project, error)
	InsertProject(ctx context.Context, project entities.Project) (*entities.Project, error)
	UpdateProject(ctx context.Context, project entities.Project) (*entities.Project, error)
	DeleteProject(ctx context.Context, projectID string) error

	ListTasks(ctx context.Context, filter entities.TaskFilter) ([]entities.Task, error)
	InsertTask(ctx context.Context, task entities.Task) (*entities.Task, error)
	UpdateTask(ctx context.Context, task entities.Task) (*entities.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID string, status entities.TaskStatus) (*entities.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
	DeleteTasksByProject(ctx context.Context, projectID string) (int64, error)

	CreateUser(ctx context.Context, user entities.User) (*entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	GetUserByID(ctx context.Context, userID string) (*entities.User, error)
}

// Run exercises a freshly migrated, empty repository.
func Run(t *testing.T, repo Subject) {
	t.Run("team members", func(t *testing.T) { teamMembers(t, repo) })
	t.Run("projects and tasks", func(t *testing.T) { projectsAndTasks(t, repo) })
	t.Run("users", func(t *testing.T) { users(t, repo) })
}

func date(s string) time.Time {
	d, err := time.Parse(entities.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func teamMembers(t *testing.T, repo Subject) {
	ctx := context.Background()

	alice, err := repo.InsertTeamMember(ctx, entities.TeamMember{Name: "Alice", Role: "Dev"})
	require.NoError(t, err)
	require.NotEmpty(t, alice.ID)
	require.Equal(t, "Dev", alice.Role)

	bob, err := repo.InsertTeamMember(ctx, entities.TeamMember{Name: "Bob"})
	require.NoError(t, err)
	require.NotEqual(t, alice.ID, bob.ID)
	require.Empty(t, bob.Role)

	members, err := repo.ListTeamMembers(ctx)
	require.NoError(t, err)
	require.Equal(t, []entities.TeamMember{*alice, *bob}, members)

	bob.Role = "QA"
	updated, err := repo.UpdateTeamMember(ctx, *bob)
	require.NoError(t, err)
	require.Equal(t, "QA", updated.Role)

	_, err = repo.UpdateTeamMember(ctx, entities.TeamMember{ID: "missing", Name: "Nobody"})
	require.ErrorIs(t, err, entities.ErrTeamMemberNotFound)

	require.NoError(t, repo.DeleteTeamMember(ctx, alice.ID))
	require.ErrorIs(t, repo.DeleteTeamMember(ctx, alice.ID), entities.ErrTeamMemberNotFound)

	members, err = repo.ListTeamMembers(ctx)
	require.NoError(t, err)
	require.Equal(t, []entities.TeamMember{*updated}, members)
}

func projectsAndTasks(t *testing.T, repo Subject) {
	ctx := context.Background()
	team := entities.TeamSnapshot{{ID: "m1", Name: "Alice", Role: "Dev"}}

	website, err := repo.InsertProject(ctx, entities.Project{
		Name:        "Website",
		Description: "Relaunch",
		StartDate:   date("2024-01-01"),
		EndDate:     date("2024-06-30"),
		Team:        team,
	})
	require.NoError(t, err)
	require.NotEmpty(t, website.ID)
	require.Equal(t, team, website.Team)
	require.True(t, website.StartDate.Equal(date("2024-01-01")))

	mobile, err := repo.InsertProject(ctx, entities.Project{
		Name:      "Mobile",
		StartDate: date("2024-02-01"),
		EndDate:   date("2024-03-01"),
	})
	require.NoError(t, err)
	require.NotNil(t, mobile.Team)
	require.Empty(t, mobile.Team)

	projects, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.Equal(t, website.ID, projects[0].ID)
	require.Equal(t, mobile.ID, projects[1].ID)

	website.Name = "Website v2"
	website.Team = append(website.Team, entities.TeamMember{ID: "m2", Name: "Bob"})
	renamed, err := repo.UpdateProject(ctx, *website)
	require.NoError(t, err)
	require.Equal(t, "Website v2", renamed.Name)
	require.Len(t, renamed.Team, 2)

	_, err = repo.UpdateProject(ctx, entities.Project{ID: "missing", Name: "x", StartDate: date("2024-01-01"), EndDate: date("2024-01-02")})
	require.ErrorIs(t, err, entities.ErrProjectNotFound)

	t1, err := repo.InsertTask(ctx, entities.Task{
		Title:     "Design",
		Status:    entities.StatusTodo,
		Priority:  entities.PriorityHigh,
		DueDate:   date("2024-02-15"),
		Team:      team,
		ProjectID: website.ID,
	})
	require.NoError(t, err)
	require.Equal(t, website.ID, t1.ProjectID)
	require.True(t, t1.DueDate.Equal(date("2024-02-15")))

	t2, err := repo.InsertTask(ctx, entities.Task{Title: "Build", Status: entities.StatusInProgress, Priority: entities.PriorityMedium, ProjectID: website.ID})
	require.NoError(t, err)
	require.True(t, t2.DueDate.IsZero())

	loose, err := repo.InsertTask(ctx, entities.Task{Title: "Triage", Status: entities.StatusTodo, Priority: entities.PriorityLow})
	require.NoError(t, err)
	require.Empty(t, loose.ProjectID)

	_, err = repo.InsertTask(ctx, entities.Task{Title: "Spec", Status: entities.StatusDone, Priority: entities.PriorityLow, ProjectID: mobile.ID})
	require.NoError(t, err)

	all, err := repo.ListTasks(ctx, entities.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	require.Equal(t, t1.ID, all[0].ID)

	scoped, err := repo.ListTasks(ctx, entities.TaskFilter{ProjectID: &website.ID})
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	require.Equal(t, []string{t1.ID, t2.ID}, []string{scoped[0].ID, scoped[1].ID})

	moved, err := repo.UpdateTaskStatus(ctx, t1.ID, entities.StatusDone)
	require.NoError(t, err)
	require.Equal(t, entities.StatusDone, moved.Status)
	require.Equal(t, "Design", moved.Title)

	_, err = repo.UpdateTaskStatus(ctx, "missing", entities.StatusDone)
	require.ErrorIs(t, err, entities.ErrTaskNotFound)

	t2.Title = "Build it"
	t2.Priority = entities.PriorityHigh
	edited, err := repo.UpdateTask(ctx, *t2)
	require.NoError(t, err)
	require.Equal(t, "Build it", edited.Title)
	require.Equal(t, entities.PriorityHigh, edited.Priority)

	_, err = repo.UpdateTask(ctx, entities.Task{ID: "missing", Title: "x", Status: entities.StatusTodo, Priority: entities.PriorityLow})
	require.ErrorIs(t, err, entities.ErrTaskNotFound)

	require.NoError(t, repo.DeleteTask(ctx, loose.ID))
	require.ErrorIs(t, repo.DeleteTask(ctx, loose.ID), entities.ErrTaskNotFound)

	removed, err := repo.DeleteTasksByProject(ctx, website.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), removed)
	require.NoError(t, repo.DeleteProject(ctx, website.ID))
	require.ErrorIs(t, repo.DeleteProject(ctx, website.ID), entities.ErrProjectNotFound)

	remaining, err := repo.ListTasks(ctx, entities.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, mobile.ID, remaining[0].ProjectID)

	projects, err = repo.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, mobile.ID, projects[0].ID)
}

func users(t *testing.T, repo Subject) {
	ctx := context.Background()

	u, err := repo.CreateUser(ctx, entities.User{Email: "Ada@Example.com", PasswordHash: "hash"})
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", u.Email)
	require.False(t, u.CreatedAt.IsZero())

	_, err = repo.CreateUser(ctx, entities.User{Email: "ada@example.com", PasswordHash: "other"})
	require.ErrorIs(t, err, entities.ErrUserExists)

	byEmail, err := repo.GetUserByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
	require.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)

	_, err = repo.GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, entities.ErrUserNotFound)
	_, err = repo.GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, entities.ErrUserNotFound)
}
