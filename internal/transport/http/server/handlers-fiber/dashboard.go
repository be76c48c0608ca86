package handlers_fiber

import (
	"net/http"

	"project-tracker/internal/mapper"
	api "project-tracker/internal/transport/http/api"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard returns the landing page summary.
func (h *Handler) GetDashboard(c *fiber.Ctx) error {
	d, err := h.uc.Dashboard(c.UserContext(), session(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIDashboard(d))
}

// GetNotifications drains the caller's notifications.
func (h *Handler) GetNotifications(c *fiber.Ctx) error {
	ns, err := h.uc.Notifications(c.UserContext(), session(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Notifications []api.Notification `json:"notifications"`
	}{Notifications: mapper.ToAPINotifications(ns)})
}
