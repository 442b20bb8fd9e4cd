package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"careerfit-workers/internal/api/http/presenter"
	"careerfit-workers/internal/common/logger"
)

const requestIDHeader = "X-Request-ID"

type ServerConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewApp builds the fiber app with recovery, request ids and access logs.
func NewApp(cfg ServerConfig, log logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "careerfit",
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return presenter.Error(c, code, err.Error())
		},
	})
	app.Use(recover.New())
	app.Use(requestLogger(log))
	return app
}

func requestLogger(log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDHeader, requestID)

		err := c.Next()

		log.Debug("http request", map[string]interface{}{
			"requestId": requestID,
			"method":    c.Method(),
			"path":      c.Path(),
			"status":    c.Response().StatusCode(),
			"latencyMs": time.Since(start).Milliseconds(),
		})
		return err
	}
}

// Serve listens until ctx is cancelled, then shuts the app down.
func Serve(ctx context.Context, app *fiber.App, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}
