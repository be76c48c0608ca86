package handlers_fiber

import (
	"net/http"

	"project-tracker/internal/mapper"
	api "project-tracker/internal/transport/http/api"

	"github.com/gofiber/fiber/v2"
)

// GetProjects lists projects. refresh=true refetches them first.
func (h *Handler) GetProjects(c *fiber.Ctx) error {
	list, err := h.uc.Projects(c.UserContext(), session(c), c.QueryBool("refresh"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIProjectList(list))
}

// GetProject returns one project.
func (h *Handler) GetProject(c *fiber.Ctx) error {
	p, err := h.uc.Project(c.UserContext(), session(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIProject(*p))
}

// PostProject creates a project.
func (h *Handler) PostProject(c *fiber.Ctx) error {
	var body api.ProjectInput
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}
	in, err := mapper.FromAPIProject("", body)
	if err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.CreateProject(c.UserContext(), session(c), in)
	if err != nil {
		h.log.Warnw("create project failed", "error", err)
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToAPIProject(*p))
}

// PutProject rewrites a project.
func (h *Handler) PutProject(c *fiber.Ctx) error {
	var body api.ProjectInput
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}
	in, err := mapper.FromAPIProject(c.Params("id"), body)
	if err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.UpdateProject(c.UserContext(), session(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIProject(*p))
}

// DeleteProject deletes a project and its tasks.
func (h *Handler) DeleteProject(c *fiber.Ctx) error {
	if err := h.uc.DeleteProject(c.UserContext(), session(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
