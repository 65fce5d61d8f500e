package handlers

import (
	"taskora/internal/models"
	"taskora/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentHandler handles task comments
type CommentHandler struct {
	comments *services.CommentStore
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(comments *services.CommentStore) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// List returns the comments of one of the caller's tasks, oldest first
// GET /api/comments?task_id=
func (h *CommentHandler) List(c *fiber.Ctx) error {
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

	comments, err := h.comments.ListByTask(c.Context(), userID, taskID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// Create adds a comment to one of the caller's tasks
// POST /api/comments
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "content is required",
		})
	}

	comment, err := h.comments.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// Delete removes one of the caller's comments
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	commentID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.comments.Delete(c.Context(), userID, commentID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
