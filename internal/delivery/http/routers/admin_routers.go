package routers

import (
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/delivery/http/handlers"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(api fiber.Router, adminHandler *handlers.AdminHandler) {
	admin := api.Group("/admin")
	admin.Get("/me", adminHandler.Me)
	admin.Post("/login", adminHandler.Login)
	admin.Post("/logout", adminHandler.Logout)
}
