package handlers

import (
	"taskora/internal/models"
	"taskora/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProjectHandler handles project CRUD
type ProjectHandler struct {
	projects *services.ProjectStore
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projects *services.ProjectStore) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// List returns the caller's projects
// GET /api/projects
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	projects, err := h.projects.List(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(projects)
}

// Create creates a new project
// POST /api/projects
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.ProjectRequest
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

	project, err := h.projects.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// Get returns one project
// GET /api/projects/:id
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	projectID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	project, err := h.projects.GetByID(c.Context(), userID, projectID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(project)
}

// Update updates a project
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	projectID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req models.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	project, err := h.projects.Update(c.Context(), userID, projectID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(project)
}

// Delete removes a project. Its tasks survive with the project reference
// cleared.
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	projectID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.projects.Delete(c.Context(), userID, projectID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Project deleted"})
}
