package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"careerfit-workers/internal/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, career *handlers.CareerHandler, health *handlers.HealthHandler) {
	RegisterProbes(app, health)

	cg := app.Group("/api/career")
	cg.Post("/predict", career.Predict)
	cg.Post("/resources", career.Resources)
	cg.Get("/history/:userId", career.History)
}

// RegisterProbes adds only the health, readiness and metrics endpoints.
func RegisterProbes(app *fiber.App, health *handlers.HealthHandler) {
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
