package handlers

import (
	"strconv"

	"taskora/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ActivityHandler exposes the read side of the audit trail
type ActivityHandler struct {
	activity *services.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activity *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// List returns the caller's recent activity, newest first
// GET /api/activity?limit=
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)

	entries, err := h.activity.List(c.Context(), userID, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}
