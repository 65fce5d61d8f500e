package handlers

import (
	"time"

	"taskora/internal/logging"
	"taskora/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles account data export and deletion
type UserHandler struct {
	userService *services.UserService
	tasks       *services.TaskStore
	projects    *services.ProjectStore
	tags        *services.TagStore
	templates   *services.TemplateStore
	activity    *services.ActivityService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, tasks *services.TaskStore, projects *services.ProjectStore, tags *services.TagStore, templates *services.TemplateStore, activity *services.ActivityService) *UserHandler {
	return &UserHandler{
		userService: userService,
		tasks:       tasks,
		projects:    projects,
		tags:        tags,
		templates:   templates,
		activity:    activity,
	}
}

// ExportData returns everything the caller owns as one JSON document
// GET /api/user/data
func (h *UserHandler) ExportData(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	user, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	tasks, err := h.tasks.ListActive(c.Context(), userID, services.TaskFilters{})
	if err != nil {
		return respondError(c, err)
	}
	trash, err := h.tasks.ListTrash(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	projects, err := h.projects.List(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	tags, err := h.tags.List(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	templates, err := h.templates.List(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	activity, err := h.activity.List(c.Context(), userID, 200)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"exported_at": time.Now().UTC(),
		"user":        user.ToResponse(),
		"tasks":       tasks,
		"trash":       trash,
		"projects":    projects,
		"tags":        tags,
		"templates":   templates,
		"activity":    activity,
	})
}

// DeleteAccount removes the caller's account and everything it owns
// DELETE /api/user/account
func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	if err := h.userService.DeleteAllData(c.Context(), userID); err != nil {
		return respondError(c, err)
	}

	logging.WithOwner(userID).Info("Account deleted")
	return c.JSON(fiber.Map{"message": "Account and all data deleted"})
}
