package handlers

import (
	"taskora/internal/services"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler exposes the statistics engine
type StatsHandler struct {
	stats *services.StatsService
}

// NewStatsHandler creates a new statistics handler
func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Get computes the caller's statistics as of now
// GET /api/statistics
func (h *StatsHandler) Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	stats, err := h.stats.Compute(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
