// Package domain contains application usecases orchestrating the per-session stores.
package domain

import (
	"context"
	"sync"
	"time"

	"project-tracker/internal/auth"
	"project-tracker/internal/reconcile"
	"project-tracker/internal/repository"

	"go.uber.org/zap"
)

// Options tunes the usecase layer.
type Options struct {
	// Timeout bounds every usecase call. Zero means no bound beyond the caller's context.
	Timeout time.Duration
	// Retry is applied to project writes.
	Retry reconcile.RetryPolicy
	// DragTimeout abandons board drags older than it.
	DragTimeout time.Duration
}

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	ctx         context.Context
	log         *zap.SugaredLogger
	repo        repository.Repository
	auth        *auth.Service
	retry       reconcile.RetryPolicy
	dragTimeout time.Duration
	timeout     time.Duration

	mu         sync.Mutex
	workspaces map[string]*workspace
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	authSvc *auth.Service,
	opts Options,
) *Usecase {
	retry := opts.Retry
	if retry == nil {
		retry = reconcile.None()
	}
	return &Usecase{
		ctx:         ctx,
		log:         log,
		repo:        repo,
		auth:        authSvc,
		retry:       retry,
		dragTimeout: opts.DragTimeout,
		timeout:     opts.Timeout,
		workspaces:  make(map[string]*workspace),
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
