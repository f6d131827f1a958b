package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"propsite_backend/pkg/database"
)

var startedAt = time.Now()

func Health(c *fiber.Ctx) error {
	if err := database.Ping(c.UserContext()); err != nil {
		zap.L().Warn("health check: database unreachable", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "degraded",
			"database": "down",
		})
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": "up",
		"uptime":   time.Since(startedAt).Round(time.Second).String(),
	})
}
