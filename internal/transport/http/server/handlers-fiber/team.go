package handlers_fiber

import (
	"net/http"

	"project-tracker/internal/mapper"
	api "project-tracker/internal/transport/http/api"

	"github.com/gofiber/fiber/v2"
)

// GetTeam lists the roster, optionally filtered by the q query parameter.
func (h *Handler) GetTeam(c *fiber.Ctx) error {
	members, err := h.uc.TeamMembers(c.UserContext(), session(c), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Members []api.TeamMember `json:"members"`
	}{Members: mapper.ToAPITeamMembers(members)})
}

// GetTeamMember returns one roster entry.
func (h *Handler) GetTeamMember(c *fiber.Ctx) error {
	m, err := h.uc.TeamMember(c.UserContext(), session(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPITeamMember(*m))
}

// PostTeam adds a roster entry.
func (h *Handler) PostTeam(c *fiber.Ctx) error {
	var body api.TeamMemberInput
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}

	m, err := h.uc.AddTeamMember(c.UserContext(), session(c), mapper.FromAPITeamMember("", body))
	if err != nil {
		h.log.Warnw("add team member failed", "error", err)
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToAPITeamMember(*m))
}

// PutTeamMember rewrites a roster entry and returns it as the roster holds it afterwards.
func (h *Handler) PutTeamMember(c *fiber.Ctx) error {
	var body api.TeamMemberInput
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}

	m, err := h.uc.UpdateTeamMember(c.UserContext(), session(c), mapper.FromAPITeamMember(c.Params("id"), body))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPITeamMember(*m))
}

// DeleteTeamMember removes a roster entry.
func (h *Handler) DeleteTeamMember(c *fiber.Ctx) error {
	if err := h.uc.DeleteTeamMember(c.UserContext(), session(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// GetWorkload returns per-member task counts, optionally for the project_id query parameter.
func (h *Handler) GetWorkload(c *fiber.Ctx) error {
	var projectID *string
	if id := c.Query("project_id"); id != "" {
		projectID = &id
	}

	w, err := h.uc.Workload(c.UserContext(), session(c), projectID, c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Members []api.MemberWorkload `json:"members"`
	}{Members: mapper.ToAPIWorkload(w)})
}
