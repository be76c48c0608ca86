package store

import (
	"context"
	"testing"
	"time"

	"project-tracker/internal/entities"
	"project-tracker/internal/notify"
	"project-tracker/internal/reconcile"
	"project-tracker/internal/repository/memory"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProjectStore(repo ProjectRepository) (*Projects, *notify.Queue) {
	q := notify.NewQueue(0)
	log := zap.NewNop().Sugar()
	return NewProjects(log, repo, reconcile.New(log, q), reconcile.Backoff(3, 2*time.Millisecond)), q
}

func day(s string) time.Time {
	d, _ := time.Parse(entities.DateLayout, s)
	return d
}

func website() entities.Project {
	return entities.Project{
		Name:        "Website Redesign",
		Description: "Redesign the company website with new branding",
		StartDate:   day("2024-04-01"),
		EndDate:     day("2024-05-15"),
		Team:        entities.TeamSnapshot{{ID: "1", Name: "Alice Cooper", Role: "Project Manager"}},
	}
}

func TestCreateRetriesUntilSuccess(t *testing.T) {
	ctx := context.Background()
	repo := &projectRepoMock{}
	stored := website()
	stored.ID = "p1"
	repo.On("InsertProject", mock.Anything, website()).Return(nil, errBackend).Twice()
	repo.On("InsertProject", mock.Anything, website()).Return(&stored, nil).Once()

	s, q := newProjectStore(repo)
	created, err := s.Create(ctx, website())
	require.NoError(t, err)
	require.Equal(t, "p1", created.ID)
	repo.AssertNumberOfCalls(t, "InsertProject", 3)

	require.Equal(t, []entities.Project{stored}, s.All())
	require.Empty(t, s.Error())
	require.False(t, s.Loading())

	got := q.Drain()
	require.Len(t, got, 1)
	require.Equal(t, "Project created successfully", got[0].Description)
}

func TestCreateGivesUpAfterFourAttempts(t *testing.T) {
	ctx := context.Background()
	repo := &projectRepoMock{}
	repo.On("InsertProject", mock.Anything, mock.Anything).Return(nil, errBackend)

	s, q := newProjectStore(repo)
	_, err := s.Create(ctx, website())
	require.ErrorIs(t, err, errBackend)
	repo.AssertNumberOfCalls(t, "InsertProject", 4)

	require.Empty(t, s.All())
	require.Equal(t, "Failed to create project. Please try again later.", s.Error())

	got := q.Drain()
	require.Len(t, got, 1)
	require.Equal(t, entities.VariantDestructive, got[0].Variant)
	require.Equal(t, "Failed to create project. Please try again later.", got[0].Description)
}

func TestCreateValidatesBeforeWriting(t *testing.T) {
	repo := &projectRepoMock{}
	s, _ := newProjectStore(repo)

	bad := website()
	bad.EndDate = day("2024-01-01")
	_, err := s.Create(context.Background(), bad)
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	_, err = s.Create(context.Background(), entities.Project{StartDate: day("2024-01-01"), EndDate: day("2024-01-02")})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	repo.AssertNotCalled(t, "InsertProject", mock.Anything, mock.Anything)
}

func TestUpdateOfMissingProjectIsNotRetried(t *testing.T) {
	ctx := context.Background()
	repo := &projectRepoMock{}
	p := website()
	p.ID = "gone"
	repo.On("UpdateProject", mock.Anything, p).Return(nil, entities.ErrProjectNotFound).Once()

	s, _ := newProjectStore(repo)
	_, err := s.Update(ctx, p)
	require.ErrorIs(t, err, entities.ErrProjectNotFound)
	repo.AssertNumberOfCalls(t, "UpdateProject", 1)
	require.Equal(t, "Failed to update project. Please try again later.", s.Error())
}

func TestUpdateReplacesLocalEntry(t *testing.T) {
	ctx := context.Background()
	repo := memory.New(zap.NewNop().Sugar())
	s, _ := newProjectStore(repo)

	created, err := s.Create(ctx, website())
	require.NoError(t, err)

	changed := *created
	changed.Name = "Website v2"
	_, err = s.Update(ctx, changed)
	require.NoError(t, err)

	got, ok := s.GetByID(created.ID)
	require.True(t, ok)
	require.Equal(t, "Website v2", got.Name)
	require.Len(t, s.All(), 1)
}

func TestDeleteRemovesTasksBeforeProject(t *testing.T) {
	ctx := context.Background()
	repo := memory.New(zap.NewNop().Sugar())
	s, _ := newProjectStore(repo)

	created, err := s.Create(ctx, website())
	require.NoError(t, err)
	for _, title := range []string{"Design", "Build"} {
		_, err := repo.InsertTask(ctx, entities.Task{Title: title, Status: entities.StatusTodo,
			Priority: entities.PriorityLow, ProjectID: created.ID})
		require.NoError(t, err)
	}

	require.NoError(t, s.Delete(ctx, created.ID))

	tasks, err := repo.ListTasks(ctx, entities.TaskFilter{ProjectID: &created.ID})
	require.NoError(t, err)
	require.Empty(t, tasks)
	_, ok := s.GetByID(created.ID)
	require.False(t, ok)

	projects, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	require.Empty(t, projects)
}

func TestDeleteKeepsProjectWhenTaskRemovalFails(t *testing.T) {
	ctx := context.Background()
	repo := &projectRepoMock{}
	stored := website()
	stored.ID = "p1"
	repo.On("ListProjects", mock.Anything).Return([]entities.Project{stored}, nil).Once()
	repo.On("DeleteTasksByProject", mock.Anything, "p1").Return(int64(0), errBackend)

	s, q := newProjectStore(repo)
	require.NoError(t, s.FetchAll(ctx))

	err := s.Delete(ctx, "p1")
	require.ErrorIs(t, err, errBackend)
	repo.AssertNumberOfCalls(t, "DeleteTasksByProject", 4)
	repo.AssertNotCalled(t, "DeleteProject", mock.Anything, mock.Anything)

	_, ok := s.GetByID("p1")
	require.True(t, ok)
	require.Equal(t, "Failed to delete project. Please try again later.", s.Error())
	require.Equal(t, entities.VariantDestructive, q.Drain()[0].Variant)
}

func TestFetchFailureSetsErrorAndNotifies(t *testing.T) {
	ctx := context.Background()
	repo := &projectRepoMock{}
	repo.On("ListProjects", mock.Anything).Return(nil, errBackend)

	s, q := newProjectStore(repo)
	require.ErrorIs(t, s.FetchAll(ctx), errBackend)
	repo.AssertNumberOfCalls(t, "ListProjects", 4)
	require.Equal(t, "Failed to fetch projects. Please try again later.", s.Error())
	require.Equal(t, 1, q.Len())
	require.False(t, s.Loading())
}

func TestGetByIDReturnsIndependentCopy(t *testing.T) {
	ctx := context.Background()
	s, _ := newProjectStore(memory.New(zap.NewNop().Sugar()))

	created, err := s.Create(ctx, website())
	require.NoError(t, err)

	got, _ := s.GetByID(created.ID)
	got.Team[0].Name = "Mallory"

	again, _ := s.GetByID(created.ID)
	require.Equal(t, "Alice Cooper", again.Team[0].Name)
}
