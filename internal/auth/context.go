package auth

import (
	"context"

	"project-tracker/internal/entities"
)

type tokenKey struct{}

// WithToken attaches the caller's session token to ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the token attached by WithToken.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// CurrentSession re-resolves the token carried by ctx.
func (s *Service) CurrentSession(ctx context.Context) (*entities.Session, error) {
	return s.Session(ctx, TokenFromContext(ctx))
}
