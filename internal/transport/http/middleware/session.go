package middleware

import (
	"context"
	"strings"

	"project-tracker/internal/auth"
	"project-tracker/internal/entities"
	api "project-tracker/internal/transport/http/api"

	"github.com/gofiber/fiber/v2"
)

const (
	sessionLocal = "session"
	// SessionCookie is the cookie a browser client may carry the token in.
	SessionCookie = "session"
	// LoginPath is where unauthenticated clients are sent.
	LoginPath = "/login"
)

// SessionResolver resolves a session token.
type SessionResolver interface {
	Session(ctx context.Context, token string) (*entities.Session, error)
}

// RequireSession rejects requests without a live session with 401 and a redirect to the login page.
// Accepted requests carry the session in locals and the token in the user context.
func RequireSession(resolver SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := Token(c)
		if token == "" {
			return unauthorized(c)
		}
		session, err := resolver.Session(c.UserContext(), token)
		if err != nil {
			return unauthorized(c)
		}
		c.Locals(sessionLocal, session)
		c.SetUserContext(auth.WithToken(c.UserContext(), token))
		return c.Next()
	}
}

// Token extracts the bearer token from the Authorization header or the session cookie.
func Token(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(c.Cookies(SessionCookie))
}

// SessionFrom returns the session stored by RequireSession, or nil.
func SessionFrom(c *fiber.Ctx) *entities.Session {
	s, _ := c.Locals(sessionLocal).(*entities.Session)
	return s
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(api.NewError(api.UNAUTHENTICATED, "authentication required", LoginPath))
}
