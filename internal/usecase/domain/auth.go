package domain

import (
	"context"
	"fmt"
	"strings"

	"project-tracker/internal/entities"
)

// SignIn checks credentials and opens a session.
func (u *Usecase) SignIn(ctx context.Context, email, password string) (*entities.Session, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if strings.TrimSpace(email) == "" || password == "" {
		u.log.Errorw("failed to sign in: missing credentials")
		return nil, fmt.Errorf("%w: email and password are required", entities.ErrInvalidArgument)
	}
	return u.auth.SignIn(ctx, email, password)
}

// Session resolves a token into a live session.
func (u *Usecase) Session(ctx context.Context, token string) (*entities.Session, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.auth.Session(ctx, token)
}

// SignOut revokes the token's session and drops its workspace.
func (u *Usecase) SignOut(ctx context.Context, token string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	session, err := u.auth.Session(ctx, token)
	if err != nil {
		return err
	}
	if err := u.auth.SignOut(ctx, token); err != nil {
		return err
	}
	u.forget(session.ID)
	return nil
}
