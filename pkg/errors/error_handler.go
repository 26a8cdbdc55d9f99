package errors

import (
	stderrors "errors"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/logger"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/errors/i18n"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error code onto an HTTP status.
func StatusFor(code string) int {
	switch code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleError is installed as the fiber ErrorHandler so every handler can
// simply return its error.
func HandleError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var ae *AppError
	if stderrors.As(err, &ae) {
		status := StatusFor(ae.Code)
		if status >= fiber.StatusInternalServerError {
			logger.Errorf("request failed [%s] %s %s: %v", ae.Code, c.Method(), c.Path(), ae)
		} else if ae.Err != nil {
			logger.Debugf("request rejected [%s] %s %s: %v", ae.Code, c.Method(), c.Path(), ae.Err)
		}

		body := fiber.Map{
			"error":   ae.Code,
			"message": ae.Message,
		}
		if ae.Hint != "" {
			body["hint"] = i18n.T(ae.Hint)
		}
		if ae.UpstreamStatus != 0 {
			body["upstream_status"] = ae.UpstreamStatus
		}
		if ae.Code == CodeInternal && ae.Err != nil {
			body["details"] = ae.Err.Error()
		}
		return c.Status(status).JSON(body)
	}

	var fe *fiber.Error
	if stderrors.As(err, &fe) {
		code := CodeInternal
		switch fe.Code {
		case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge, fiber.StatusUnprocessableEntity:
			code = CodeValidation
		case fiber.StatusUnauthorized:
			code = CodeUnauthorized
		case fiber.StatusNotFound:
			code = CodeNotFound
		}
		return c.Status(fe.Code).JSON(fiber.Map{
			"error":   code,
			"message": fe.Message,
		})
	}

	logger.Errorf("unexpected error %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   CodeInternal,
		"message": "Internal server error",
		"details": err.Error(),
	})
}
