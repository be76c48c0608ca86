package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"project-tracker/config"
	"project-tracker/internal/entities"
	"project-tracker/internal/repository/repositorytest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()
	ctx := context.Background()

	migrationsDir, err := filepath.Abs(filepath.Join("..", "..", "..", "db", "migrations", "sqlite"))
	require.NoError(t, err)
	require.DirExists(t, migrationsDir)

	cfg := &config.Config{
		Backend: config.BackendSQLite,
		SQLite: config.SQLiteConfig{
			Path:          filepath.Join(t.TempDir(), "tracker.db"),
			MigrationsDir: migrationsDir,
		},
	}

	repo := New(ctx, zap.NewNop().Sugar(), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })
	return repo
}

func TestRepository(t *testing.T) {
	repositorytest.Run(t, newTestRepo(t))
}

func TestUnknownStatusIsStoredVerbatim(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO tasks(id, title, status, priority, team) VALUES ('legacy', 'Old', 'archived', 'low', '[]')`)
	require.NoError(t, err)

	tasks, err := repo.ListTasks(ctx, entities.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "archived", string(tasks[0].Status))
	require.Empty(t, tasks[0].ProjectID)
	require.NotNil(t, tasks[0].Team)
}
