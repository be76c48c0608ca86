package handlers_fiber

import (
	"net/http"

	"project-tracker/internal/entities"
	"project-tracker/internal/mapper"
	api "project-tracker/internal/transport/http/api"

	"github.com/gofiber/fiber/v2"
)

// GetProjectBoard loads the board of one project.
func (h *Handler) GetProjectBoard(c *fiber.Ctx) error {
	projectID := c.Params("id")
	return h.board(c, &projectID)
}

// GetBoard loads the board of every task.
func (h *Handler) GetBoard(c *fiber.Ctx) error {
	return h.board(c, nil)
}

func (h *Handler) board(c *fiber.Ctx, projectID *string) error {
	b, err := h.uc.Board(c.UserContext(), session(c), projectID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIBoard(b))
}

// PostTask adds a task to the loaded board.
func (h *Handler) PostTask(c *fiber.Ctx) error {
	var body api.TaskInput
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}
	in, err := mapper.FromAPITask("", body)
	if err != nil {
		return writeError(c, err)
	}

	t, err := h.uc.CreateTask(c.UserContext(), session(c), in)
	if err != nil {
		h.log.Warnw("create task failed", "error", err)
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToAPITask(*t))
}

// PutTask rewrites a task of the loaded board.
func (h *Handler) PutTask(c *fiber.Ctx) error {
	var body api.TaskInput
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}
	in, err := mapper.FromAPITask(c.Params("taskId"), body)
	if err != nil {
		return writeError(c, err)
	}

	t, err := h.uc.EditTask(c.UserContext(), session(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPITask(*t))
}

// DeleteTask deletes a task shown in the given column.
func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	column := entities.ColumnID(c.Params("columnId"))
	if err := h.uc.DeleteTask(c.UserContext(), session(c), c.Params("taskId"), column); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// PostDrag starts dragging a task.
func (h *Handler) PostDrag(c *fiber.Ctx) error {
	var body api.DragRequest
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}

	b, err := h.uc.StartDrag(c.UserContext(), session(c), body.TaskID, entities.ColumnID(body.From))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIBoard(b))
}

// DeleteDrag abandons the current drag.
func (h *Handler) DeleteDrag(c *fiber.Ctx) error {
	abandoned, err := h.uc.AbandonDrag(c.UserContext(), session(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Abandoned bool `json:"abandoned"`
	}{Abandoned: abandoned})
}

// PostDrop drops the dragged task into a column.
func (h *Handler) PostDrop(c *fiber.Ctx) error {
	b, err := h.uc.Drop(c.UserContext(), session(c), entities.ColumnID(c.Params("columnId")))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIBoard(b))
}
