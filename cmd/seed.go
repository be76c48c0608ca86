package main

import (
	"fmt"

	"project-tracker/internal/auth"
	"project-tracker/internal/seed"

	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [fixture.yaml]",
		Short: "Insert users, team members, projects and tasks from a YAML fixture",
		Long: `Insert the content of a YAML fixture into the configured backend.

Passwords are stored bcrypt-hashed; users that already exist are skipped.
See db/seed.example.yaml for the format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := seed.Load(args[0])
			if err != nil {
				return err
			}

			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			users := auth.NewService(a.log, a.repo, a.cfg.Auth)
			sum, err := seed.Apply(cmd.Context(), a.log, a.repo, users, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d team members, %d projects, %d tasks\n",
				sum.Users, sum.TeamMembers, sum.Projects, sum.Tasks)
			return nil
		},
	}
}
