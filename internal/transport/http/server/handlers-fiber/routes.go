package handlers_fiber

import (
	"time"

	"project-tracker/internal/transport/http/middleware"

	"github.com/gofiber/fiber/v2"
)

// Config is the fiber configuration the API runs with. Request values are copied out of fiber's
// buffers because the session stores keep some of them across requests.
func Config(requestTimeout time.Duration) fiber.Config {
	return fiber.Config{
		Immutable:    true,
		ReadTimeout:  requestTimeout,
		WriteTimeout: requestTimeout,
	}
}

// RegisterHandlers mounts every route. Everything under /api except login requires a session;
// unknown routes answer 404.
func RegisterHandlers(router fiber.Router, h *Handler) {
	router.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	router.Post("/api/auth/login", h.PostLogin)

	r := router.Group("/api", middleware.RequireSession(h.uc))

	r.Get("/auth/session", h.GetSession)
	r.Post("/auth/logout", h.PostLogout)

	r.Get("/dashboard", h.GetDashboard)
	r.Get("/notifications", h.GetNotifications)

	r.Get("/projects", h.GetProjects)
	r.Post("/projects", h.PostProject)
	r.Get("/projects/:id", h.GetProject)
	r.Put("/projects/:id", h.PutProject)
	r.Delete("/projects/:id", h.DeleteProject)
	r.Get("/projects/:id/board", h.GetProjectBoard)

	r.Get("/board", h.GetBoard)
	r.Post("/board/tasks", h.PostTask)
	r.Put("/board/tasks/:taskId", h.PutTask)
	r.Delete("/board/columns/:columnId/tasks/:taskId", h.DeleteTask)
	r.Post("/board/drag", h.PostDrag)
	r.Delete("/board/drag", h.DeleteDrag)
	r.Post("/board/columns/:columnId/drop", h.PostDrop)

	r.Get("/team", h.GetTeam)
	r.Post("/team", h.PostTeam)
	r.Get("/team/workload", h.GetWorkload)
	r.Get("/team/:id", h.GetTeamMember)
	r.Put("/team/:id", h.PutTeamMember)
	r.Delete("/team/:id", h.DeleteTeamMember)

	router.Use(NotFound)
}
