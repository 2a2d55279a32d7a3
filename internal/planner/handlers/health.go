package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// ============================================================
// Health Check Handlers
// ============================================================

// LivenessProbe проверяет, что приложение работает
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe готов, если журнал сессии доступен.
func (h *PlannerHandler) ReadinessProbe(c fiber.Ctx) error {
	if err := h.log.Ping(context.Background()); err != nil {
		h.logger.Warn("journal not ready", zap.Error(err))
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status":  "ready",
		"session": h.session.ID(),
	})
}
