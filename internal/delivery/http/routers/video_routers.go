package routers

import (
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/delivery/http/handlers"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupVideoRoutes(api fiber.Router, videoHandler *handlers.VideoHandler, vimeoHandler *handlers.VimeoHandler) {
	admin := middleware.RequireAdmin()

	videos := api.Group("/videos")
	videos.Get("/", videoHandler.ListVideos)
	// before /:id so "vimeo-thumbnail" is not read as an id
	videos.Get("/vimeo-thumbnail", vimeoHandler.VimeoThumbnail)
	videos.Get("/:id", videoHandler.GetVideo)

	videos.Post("/", admin, videoHandler.UploadVideo)
	videos.Post("/create-from-blob", admin, videoHandler.CreateFromBlob)
	videos.Post("/reorder", admin, videoHandler.ReorderVideos)
	videos.Post("/:id/thumbnail", admin, videoHandler.UploadThumbnail)
	videos.Patch("/:id", admin, videoHandler.UpdateVideo)
	videos.Delete("/:id", admin, videoHandler.DeleteVideo)
}
