package main

import (
	"context"

	"project-tracker/internal/auth"
	"project-tracker/internal/reconcile"
	"project-tracker/internal/transport/http/middleware"
	"project-tracker/internal/transport/http/server/handlers-fiber"
	"project-tracker/internal/usecase"
	"project-tracker/internal/usecase/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	cfg, log := a.cfg, a.log

	authSvc := auth.NewService(log, a.repo, cfg.Auth)
	uc := usecase.New(log, ctx, a.repo, authSvc, domain.Options{
		Timeout:     cfg.HTTP.RequestTimeout,
		Retry:       reconcile.Backoff(cfg.Retry.Attempts, cfg.Retry.InitialDelay),
		DragTimeout: cfg.Board.DragTimeout,
	})

	serv := fiber.New(handlers_fiber.Config(cfg.HTTP.RequestTimeout))
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(middleware.RequestLogger(log))

	h := handlers_fiber.NewHandler(log, uc)
	handlers_fiber.RegisterHandlers(serv, h)

	go func() {
		log.Infow("http server listening", "addr", cfg.ServerAddr(), "backend", cfg.Backend)
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = serv.Shutdown()
		close(done)
	}()

	select {
	case <-done:
		log.Infow("http server stopped")
	case <-shutdownCtx.Done():
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout)
	}
	return nil
}
