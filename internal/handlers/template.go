package handlers

import (
	"taskora/internal/models"
	"taskora/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TemplateHandler handles task templates and their expansion
type TemplateHandler struct {
	templates *services.TemplateStore
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templates *services.TemplateStore) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// List returns the caller's templates
// GET /api/templates
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	templates, err := h.templates.List(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(templates)
}

// Create creates a new template
// POST /api/templates
func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.TemplateRequest
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

	template, err := h.templates.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(template)
}

// Get returns one template
// GET /api/templates/:id
func (h *TemplateHandler) Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	templateID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	template, err := h.templates.GetByID(c.Context(), userID, templateID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(template)
}

// Update updates a template, replacing its items wholesale
// PUT /api/templates/:id
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	templateID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req models.TemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	template, err := h.templates.Update(c.Context(), userID, templateID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(template)
}

// Delete removes a template
// DELETE /api/templates/:id
func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	templateID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.templates.Delete(c.Context(), userID, templateID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Template deleted"})
}

// Use materializes a template into a new task with its checklist
// POST /api/templates/:id/use
func (h *TemplateHandler) Use(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	templateID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	taskID, err := h.templates.Use(c.Context(), userID, templateID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.UseTemplateResponse{
		TaskID: taskID.Hex(),
	})
}
