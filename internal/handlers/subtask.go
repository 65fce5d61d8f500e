package handlers

import (
	"taskora/internal/models"
	"taskora/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubtaskHandler handles subtask CRUD under a parent task
type SubtaskHandler struct {
	subtasks *services.SubtaskStore
}

// NewSubtaskHandler creates a new subtask handler
func NewSubtaskHandler(subtasks *services.SubtaskStore) *SubtaskHandler {
	return &SubtaskHandler{subtasks: subtasks}
}

// List returns the subtasks of one of the caller's tasks
// GET /api/subtasks?task_id=
func (h *SubtaskHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	taskID, err := primitive.ObjectIDFromHex(c.Query("task_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "task_id query parameter is required",
		})
	}

	subtasks, err := h.subtasks.ListByTask(c.Context(), userID, taskID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(subtasks)
}

// Create creates a subtask on one of the caller's tasks
// POST /api/subtasks
func (h *SubtaskHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.CreateSubtaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	subtask, err := h.subtasks.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(subtask)
}

// Update updates a subtask
// PUT /api/subtasks/:id
func (h *SubtaskHandler) Update(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	subtaskID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req models.UpdateSubtaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	subtask, err := h.subtasks.Update(c.Context(), userID, subtaskID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(subtask)
}

// Delete removes a subtask
// DELETE /api/subtasks/:id
func (h *SubtaskHandler) Delete(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	subtaskID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.subtasks.Delete(c.Context(), userID, subtaskID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Subtask deleted"})
}
