package domain

import (
	"context"

	"project-tracker/internal/entities"
)

// Notifications drains the notifications queued for the session, oldest first.
func (u *Usecase) Notifications(ctx context.Context, session *entities.Session) ([]entities.Notification, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	ws, err := u.workspace(ctx, session)
	if err != nil {
		return nil, err
	}
	return ws.notifications.Drain(), nil
}
