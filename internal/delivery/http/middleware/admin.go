package middleware

import (
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/constants"
	apperrors "github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/errors"

	"github.com/gofiber/fiber/v2"
)

const adminLocalsKey = "admin"

// AdminSession resolves the admin flag from the cookie once per request and
// stores it in the request locals.
func AdminSession(cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(adminLocalsKey, c.Cookies(cookieName) == constants.AdminCookieValue)
		return c.Next()
	}
}

func IsAdmin(c *fiber.Ctx) bool {
	admin, _ := c.Locals(adminLocalsKey).(bool)
	return admin
}

func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsAdmin(c) {
			return apperrors.ErrUnauthorized("Admin session required")
		}
		return c.Next()
	}
}
