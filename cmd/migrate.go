package main

import (
	"project-tracker/config"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the configured backend",
		Long: `Apply the goose migrations of the configured SQL backend and exit.

The postgres backend reads postgres.migrations_dir, the sqlite backend sqlite.migrations_dir.
The memory backend has nothing to migrate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			switch a.cfg.Backend {
			case config.BackendPostgres:
				a.log.Infow("migrations applied", "backend", a.cfg.Backend, "dir", a.cfg.Postgres.MigrationsDir)
			case config.BackendSQLite:
				a.log.Infow("migrations applied", "backend", a.cfg.Backend, "dir", a.cfg.SQLite.MigrationsDir)
			default:
				a.log.Infow("nothing to migrate", "backend", a.cfg.Backend)
			}
			return nil
		},
	}
}
