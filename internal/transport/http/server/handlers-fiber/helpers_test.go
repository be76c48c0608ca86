package handlers_fiber

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"project-tracker/internal/entities"
	api "project-tracker/internal/transport/http/api"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		code     api.ErrorCode
		message  string
		redirect string
	}{
		{
			name:    "invalid argument keeps message",
			err:     fmt.Errorf("%w: title is required", entities.ErrInvalidArgument),
			status:  http.StatusBadRequest,
			code:    api.INVALIDARGUMENT,
			message: "invalid argument: title is required",
		},
		{
			name:     "unauthenticated redirects to login",
			err:      fmt.Errorf("%w: token expired", entities.ErrUnauthenticated),
			status:   http.StatusUnauthorized,
			code:     api.UNAUTHENTICATED,
			message:  "authentication required",
			redirect: "/login",
		},
		{
			name:     "missing project redirects to list",
			err:      entities.ErrProjectNotFound,
			status:   http.StatusNotFound,
			code:     api.NOTFOUND,
			message:  "project not found",
			redirect: "/projects",
		},
		{
			name:    "missing task",
			err:     entities.ErrTaskNotFound,
			status:  http.StatusNotFound,
			code:    api.NOTFOUND,
			message: "resource not found",
		},
		{
			name:    "no drag",
			err:     entities.ErrNoDragInProgress,
			status:  http.StatusConflict,
			code:    api.NODRAG,
			message: "no drag in progress",
		},
		{
			name:    "expired drag",
			err:     entities.ErrDragExpired,
			status:  http.StatusConflict,
			code:    api.DRAGEXPIRED,
			message: "drag expired, start it again",
		},
		{
			name:    "timeout",
			err:     fmt.Errorf("create project: %w", context.DeadlineExceeded),
			status:  http.StatusGatewayTimeout,
			code:    api.TIMEOUT,
			message: "request timed out",
		},
		{
			name:    "backend failure",
			err:     fmt.Errorf("insert task: connection refused"),
			status:  http.StatusInternalServerError,
			code:    api.INTERNAL,
			message: "insert task: connection refused",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return writeError(c, tt.err)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.status, resp.StatusCode)

			var body api.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, tt.code, body.Error.Code)
			require.Equal(t, tt.message, body.Error.Message)
			require.Equal(t, tt.redirect, body.Error.Redirect)
		})
	}
}
