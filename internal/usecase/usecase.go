package usecase

import (
	"context"

	"project-tracker/internal/auth"
	"project-tracker/internal/repository"
	"project-tracker/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	AuthUsecaseInterface
	TeamUsecaseInterface
	ProjectUsecaseInterface
	BoardUsecaseInterface
	DashboardUsecaseInterface
	NotificationUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	authSvc *auth.Service,
	opts domain.Options,
) InterfaceUsecase {
	return domain.New(log, ctx, repo, authSvc, opts)
}
