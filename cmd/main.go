// Package main is the project tracker command: the HTTP server plus migration and seeding tools.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"project-tracker/config"
	"project-tracker/internal/repository"
	"project-tracker/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serve := serveCmd()
	rootCmd := &cobra.Command{
		Use:          "tracker",
		Short:        "Project tracker with teams, projects and a kanban board",
		Version:      Version,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is what every subcommand starts from: configuration, logger and a started repository.
type app struct {
	cfg  *config.Config
	log  *zap.SugaredLogger
	repo repository.Repository
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	repo, err := repository.New(ctx, cfg.Backend, log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return nil, err
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "backend", cfg.Backend, "error", err)
		return nil, err
	}
	return &app{cfg: cfg, log: log, repo: repo}, nil
}

func (a *app) close() {
	if err := a.repo.OnStop(context.Background()); err != nil {
		a.log.Warnw("repository stop error", "error", err)
	}
	_ = a.log.Sync()
}
