package memory

import (
	"context"
	"sync"
	"testing"

	"project-tracker/internal/entities"
	"project-tracker/internal/repository/repositorytest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRepository(t *testing.T) {
	repositorytest.Run(t, New(zap.NewNop().Sugar()))
}

func TestListingsDoNotShareTeamSlices(t *testing.T) {
	ctx := context.Background()
	repo := New(zap.NewNop().Sugar())

	created, err := repo.InsertTask(ctx, entities.Task{
		Title:    "Design",
		Status:   entities.StatusTodo,
		Priority: entities.PriorityLow,
		Team:     entities.TeamSnapshot{{ID: "m1", Name: "Alice"}},
	})
	require.NoError(t, err)
	created.Team[0].Name = "Mallory"

	tasks, err := repo.ListTasks(ctx, entities.TaskFilter{})
	require.NoError(t, err)
	require.Equal(t, "Alice", tasks[0].Team[0].Name)
}

func TestConcurrentInsertsKeepEveryRecord(t *testing.T) {
	ctx := context.Background()
	repo := New(zap.NewNop().Sugar())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.InsertTeamMember(ctx, entities.TeamMember{Name: "member"})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	members, err := repo.ListTeamMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 20)
}
