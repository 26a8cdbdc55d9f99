package handlers

import (
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/dto"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/usecases"
	apperrors "github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/errors"

	"github.com/gofiber/fiber/v2"
)

type VimeoHandler struct {
	service usecases.VimeoService
	perPage int
}

func NewVimeoHandler(service usecases.VimeoService, perPage int) *VimeoHandler {
	return &VimeoHandler{service: service, perPage: perPage}
}

// ListVimeo
//
// @Summary      Vimeo passthrough
// @Description  With id: a single video (numeric id or any Vimeo URL). With page: one page of the account's videos. Otherwise every page up to the configured limit; complete=false means the listing was cut short.
// @Tags         Vimeo
// @Produce      json
// @Param        id        query     string false "Vimeo id or URL"
// @Param        page      query     int    false "Page number"
// @Param        per_page  query     int    false "Page size (max 100)"
// @Success      200       {object}  dto.VimeoCollection
// @Failure      404       {object}  dto.ErrorResponse
// @Failure      500       {object}  dto.ErrorResponse
// @Router       /vimeo [get]
func (h *VimeoHandler) ListVimeo(c *fiber.Ctx) error {
	ctx := c.UserContext()
	perPage := c.QueryInt("per_page", h.perPage)

	if id := c.Query("id"); id != "" {
		video, err := h.service.Lookup(ctx, id)
		if err != nil {
			return err
		}
		return c.JSON(dto.VimeoVideoResponse{Video: *video})
	}

	if page := c.QueryInt("page", 0); page > 0 {
		result, err := h.service.ListPage(ctx, perPage, page)
		if err != nil {
			return err
		}
		return c.JSON(result)
	}

	col, err := h.service.ListAll(ctx, perPage)
	if err != nil {
		return err
	}
	return c.JSON(col)
}

// VerifyVimeo
//
// @Summary      Check the Vimeo connection
// @Description  Always answers 200; ok=false carries the reason.
// @Tags         Vimeo
// @Produce      json
// @Success      200  {object}  dto.VimeoVerifyResult
// @Router       /vimeo/verify [get]
func (h *VimeoHandler) VerifyVimeo(c *fiber.Ctx) error {
	return c.JSON(h.service.Verify(c.UserContext()))
}

// VimeoThumbnail
//
// @Summary      Vimeo thumbnail
// @Description  Largest thumbnail of a Vimeo video.
// @Tags         Vimeo
// @Produce      json
// @Param        vimeoId  query     string true "Vimeo id or URL"
// @Success      200      {object}  dto.VimeoThumbnailResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /videos/vimeo-thumbnail [get]
func (h *VimeoHandler) VimeoThumbnail(c *fiber.Ctx) error {
	vimeoID := c.Query("vimeoId")
	if vimeoID == "" {
		return apperrors.ErrValidation("vimeoId is required")
	}
	link, err := h.service.Thumbnail(c.UserContext(), vimeoID)
	if err != nil {
		return err
	}
	return c.JSON(dto.VimeoThumbnailResponse{ThumbnailURL: link})
}
