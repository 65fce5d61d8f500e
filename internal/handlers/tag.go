package handlers

import (
	"taskora/internal/models"
	"taskora/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TagHandler handles tag CRUD
type TagHandler struct {
	tags *services.TagStore
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tags *services.TagStore) *TagHandler {
	return &TagHandler{tags: tags}
}

// List returns the caller's tags
// GET /api/tags
func (h *TagHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	tags, err := h.tags.List(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tags)
}

// Create creates a new tag
// POST /api/tags
func (h *TagHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.TagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}

	tag, err := h.tags.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// Get returns one tag
// GET /api/tags/:id
func (h *TagHandler) Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	tagID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tag, err := h.tags.GetByID(c.Context(), userID, tagID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tag)
}

// Update updates a tag
// PUT /api/tags/:id
func (h *TagHandler) Update(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	tagID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req models.TagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	tag, err := h.tags.Update(c.Context(), userID, tagID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tag)
}

// Delete removes a tag and detaches it from every task that carried it
// DELETE /api/tags/:id
func (h *TagHandler) Delete(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	tagID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.tags.Delete(c.Context(), userID, tagID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Tag deleted"})
}
