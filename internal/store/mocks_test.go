package store

import (
	"context"

	"project-tracker/internal/entities"
	"project-tracker/internal/repository"

	"github.com/stretchr/testify/mock"
)

type teamRepoMock struct {
	mock.Mock
}

var _ repository.TeamMemberInterface = (*teamRepoMock)(nil)

func (m *teamRepoMock) ListTeamMembers(ctx context.Context) ([]entities.TeamMember, error) {
	args := m.Called(ctx)
	members, _ := args.Get(0).([]entities.TeamMember)
	return members, args.Error(1)
}

func (m *teamRepoMock) InsertTeamMember(ctx context.Context, member entities.TeamMember) (*entities.TeamMember, error) {
	args := m.Called(ctx, member)
	res, _ := args.Get(0).(*entities.TeamMember)
	return res, args.Error(1)
}

func (m *teamRepoMock) UpdateTeamMember(ctx context.Context, member entities.TeamMember) (*entities.TeamMember, error) {
	args := m.Called(ctx, member)
	res, _ := args.Get(0).(*entities.TeamMember)
	return res, args.Error(1)
}

func (m *teamRepoMock) DeleteTeamMember(ctx context.Context, memberID string) error {
	return m.Called(ctx, memberID).Error(0)
}

type projectRepoMock struct {
	mock.Mock
}

var _ ProjectRepository = (*projectRepoMock)(nil)

func (m *projectRepoMock) ListProjects(ctx context.Context) ([]entities.Project, error) {
	args := m.Called(ctx)
	projects, _ := args.Get(0).([]entities.Project)
	return projects, args.Error(1)
}

func (m *projectRepoMock) InsertProject(ctx context.Context, project entities.Project) (*entities.Project, error) {
	args := m.Called(ctx, project)
	res, _ := args.Get(0).(*entities.Project)
	return res, args.Error(1)
}

func (m *projectRepoMock) UpdateProject(ctx context.Context, project entities.Project) (*entities.Project, error) {
	args := m.Called(ctx, project)
	res, _ := args.Get(0).(*entities.Project)
	return res, args.Error(1)
}

func (m *projectRepoMock) DeleteProject(ctx context.Context, projectID string) error {
	return m.Called(ctx, projectID).Error(0)
}

func (m *projectRepoMock) DeleteTasksByProject(ctx context.Context, projectID string) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}
