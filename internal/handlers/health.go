package handlers

import (
	"taskora/internal/database"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports service liveness
type HealthHandler struct {
	mongodb *database.MongoDB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(mongodb *database.MongoDB) *HealthHandler {
	return &HealthHandler{mongodb: mongodb}
}

// Check reports whether the service and its database are reachable
// GET /health
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := h.mongodb.Ping(c.Context()); err != nil {
		dbStatus = "unreachable"
	}

	if dbStatus != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "degraded",
			"database": dbStatus,
		})
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": dbStatus,
	})
}
