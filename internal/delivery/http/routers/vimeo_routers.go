package routers

import (
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/delivery/http/handlers"

	"github.com/gofiber/fiber/v2"
)

func SetupVimeoRoutes(api fiber.Router, vimeoHandler *handlers.VimeoHandler) {
	api.Get("/vimeo", vimeoHandler.ListVimeo)
	api.Get("/vimeo/verify", vimeoHandler.VerifyVimeo)
}
