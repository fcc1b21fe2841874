// Package health serves the liveness endpoint polled by uptime monitors.
package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	coreconfig "github.com/m3rciful/portfoliobot/core/config"
	"github.com/m3rciful/portfoliobot/core/logger"
)

const shutdownTimeout = 5 * time.Second

// NewApp builds the fiber app answering GET / with body.
func NewApp(body string) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "portfoliobot",
	})
	app.Use(recover.New())
	app.Use(requestLogger)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(body)
	})
	return app
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	if logger.ShouldSampleDebug() {
		logger.HTTP.Debug("request",
			slog.String("event", "http.request"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("code", c.Response().StatusCode()),
			slog.Duration("duration", logger.Took(start)),
		)
	}
	return err
}

// Run listens on cfg.Port until ctx is done.
func Run(ctx context.Context, cfg coreconfig.HTTPConfig) error {
	app := NewApp(cfg.Body)
	addr := fmt.Sprintf(":%d", cfg.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()
	logger.HTTP.Info("health listener started",
		slog.String("event", "listen"),
		slog.String("addr", addr),
	)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("health: listen %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.Canceled) {
		logger.HTTP.Warn("health shutdown failed",
			slog.String("event", "shutdown"),
			slog.String("err", err.Error()),
		)
		return err
	}
	logger.HTTP.Info("health listener stopped", slog.String("event", "shutdown"))
	return nil
}
