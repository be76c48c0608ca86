package handlers_fiber

import (
	"context"
	"errors"
	"net/http"

	"project-tracker/internal/entities"
	api "project-tracker/internal/transport/http/api"
	"project-tracker/internal/transport/http/middleware"

	"github.com/gofiber/fiber/v2"
)

// projectsPath is where clients go when the project they asked for is gone.
const projectsPath = "/projects"

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	code := api.INTERNAL
	msg := "internal error"
	redirect := ""

	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		code = api.INVALIDARGUMENT
		msg = err.Error()
	case errors.Is(err, entities.ErrUnknownColumn):
		status = http.StatusBadRequest
		code = api.UNKNOWNCOLUMN
		msg = err.Error()
	case errors.Is(err, entities.ErrUnauthenticated):
		status = http.StatusUnauthorized
		code = api.UNAUTHENTICATED
		msg = "authentication required"
		redirect = middleware.LoginPath
	case errors.Is(err, entities.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		code = api.INVALIDCREDENTIALS
		msg = "invalid email or password"
	case errors.Is(err, entities.ErrProjectNotFound):
		status = http.StatusNotFound
		code = api.NOTFOUND
		msg = "project not found"
		redirect = projectsPath
	case errors.Is(err, entities.ErrTeamMemberNotFound), errors.Is(err, entities.ErrTaskNotFound), errors.Is(err, entities.ErrUserNotFound):
		status = http.StatusNotFound
		code = api.NOTFOUND
		msg = "resource not found"
	case errors.Is(err, entities.ErrUserExists):
		status = http.StatusConflict
		code = api.CONFLICT
		msg = "user already exists"
	case errors.Is(err, entities.ErrNoDragInProgress):
		status = http.StatusConflict
		code = api.NODRAG
		msg = "no drag in progress"
	case errors.Is(err, entities.ErrDragExpired):
		status = http.StatusConflict
		code = api.DRAGEXPIRED
		msg = "drag expired, start it again"
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
		code = api.TIMEOUT
		msg = "request timed out"
	default:
		msg = err.Error()
	}

	return c.Status(status).JSON(api.NewError(code, msg, redirect))
}

func badBody(c *fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(api.NewError(api.INVALIDARGUMENT, "invalid body", ""))
}

// session returns the caller's session. RequireSession runs before every handler using it.
func session(c *fiber.Ctx) *entities.Session {
	return middleware.SessionFrom(c)
}

// NotFound answers unknown routes.
func NotFound(c *fiber.Ctx) error {
	return c.Status(http.StatusNotFound).JSON(api.NewError(api.NOTFOUND, "route not found", ""))
}
