package handlers_fiber

import (
	"net/http"

	"project-tracker/internal/mapper"
	api "project-tracker/internal/transport/http/api"
	"project-tracker/internal/transport/http/middleware"

	"github.com/gofiber/fiber/v2"
)

// PostLogin signs a user in and returns the session token.
func (h *Handler) PostLogin(c *fiber.Ctx) error {
	var body api.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}

	s, err := h.uc.SignIn(c.UserContext(), body.Email, body.Password)
	if err != nil {
		h.log.Infow("sign in rejected", "email", body.Email, "error", err)
		return writeError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    s.Token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Status(http.StatusOK).JSON(mapper.ToAPISession(*s, true))
}

// GetSession returns the caller's session.
func (h *Handler) GetSession(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(mapper.ToAPISession(*session(c), false))
}

// PostLogout revokes the caller's session.
func (h *Handler) PostLogout(c *fiber.Ctx) error {
	if err := h.uc.SignOut(c.UserContext(), middleware.Token(c)); err != nil {
		return writeError(c, err)
	}
	c.ClearCookie(middleware.SessionCookie)
	return c.SendStatus(http.StatusNoContent)
}
