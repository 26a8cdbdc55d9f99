package middleware

import (
	"time"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs one line per request after the error handler has run,
// so the logged status is the one the client sees.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []interface{}{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start).String(),
			"ip", c.IP(),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			logger.L().Errorw("request", fields...)
		case status >= fiber.StatusBadRequest:
			logger.L().Warnw("request", fields...)
		default:
			logger.L().Infow("request", fields...)
		}
		return nil
	}
}
