package routers

import (
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/delivery/http/handlers"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/delivery/http/middleware"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/config"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/usecases"
	consts "github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/constants"
	apperrors "github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/errors"

	_ "github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

type Dependencies struct {
	Videos usecases.VideoService
	Vimeo  usecases.VimeoService
	Admin  usecases.AdminService
}

// NewApp builds the fiber application with every route mounted under /api.
func NewApp(cfg *config.Config, deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "portfolio-videos",
		BodyLimit:    int(cfg.Server.BodyLimit),
		ErrorHandler: apperrors.HandleError,
		Immutable:    true,
	})

	app.Use(middleware.RequestLogger())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowCredentials: cfg.Server.AllowOrigins != "*",
	}))
	if cfg.Admin.CookieKey != "" {
		app.Use(encryptcookie.New(encryptcookie.Config{Key: cfg.Admin.CookieKey}))
	}
	app.Use(middleware.AdminSession(cfg.Admin.CookieName))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": consts.StatusOK})
	})
	if cfg.Blob.Driver == "local" {
		app.Static("/blobs", cfg.Blob.LocalDir)
	}

	videoHandler := handlers.NewVideoHandler(deps.Videos)
	vimeoHandler := handlers.NewVimeoHandler(deps.Vimeo, cfg.Vimeo.PerPage)
	adminHandler := handlers.NewAdminHandler(deps.Admin, cfg.Admin)

	api := app.Group("/api")
	SetupVideoRoutes(api, videoHandler, vimeoHandler)
	SetupVimeoRoutes(api, vimeoHandler)
	SetupAdminRoutes(api, adminHandler)

	return app
}
