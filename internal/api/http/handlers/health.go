package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"careerfit-workers/internal/common/database"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	backends []database.Pinger
	timeout  time.Duration
}

func NewHealthHandler(timeout time.Duration, backends ...database.Pinger) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{backends: backends, timeout: timeout}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready pings every configured backend.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	failures := database.CheckAll(c.UserContext(), h.timeout, h.backends...)
	if len(failures) > 0 {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "not_ready",
			"details": failures,
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ready"})
}
