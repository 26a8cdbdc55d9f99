package handlers

import (
	"strings"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/dto"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/usecases"
	apperrors "github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/errors"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/helper"

	"github.com/gofiber/fiber/v2"
)

type VideoHandler struct {
	service usecases.VideoService
}

func NewVideoHandler(service usecases.VideoService) *VideoHandler {
	return &VideoHandler{service: service}
}

// ListVideos
//
// @Summary      List videos
// @Description  Returns the catalog ordered by sort_order, then newest first. The intro video is left out unless includeIntro=true.
// @Tags         Videos
// @Produce      json
// @Param        category      query     string false "Exact category match"
// @Param        includeIntro  query     bool   false "Include the intro video"
// @Success      200           {object}  dto.VideoListResponse
// @Failure      500           {object}  dto.ErrorResponse
// @Router       /videos [get]
func (h *VideoHandler) ListVideos(c *fiber.Ctx) error {
	var category *string
	if v := c.Query("category"); v != "" {
		category = &v
	}

	videos, err := h.service.List(c.UserContext(), category, c.QueryBool("includeIntro", false))
	if err != nil {
		return err
	}
	return c.JSON(dto.VideoListResponse{Videos: videos})
}

// GetVideo
//
// @Summary      Get a video
// @Tags         Videos
// @Produce      json
// @Param        id   path      int true "Video ID"
// @Success      200  {object}  dto.VideoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /videos/{id} [get]
func (h *VideoHandler) GetVideo(c *fiber.Ctx) error {
	id, err := videoID(c)
	if err != nil {
		return err
	}
	video, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.VideoResponse{Video: *video})
}

// UploadVideo
//
// @Summary      Upload a video
// @Description  Stores the file in the blob store and creates the record. Requires the admin cookie.
// @Tags         Videos
// @Accept       multipart/form-data
// @Produce      json
// @Param        video        formData  file   true  "Video file"
// @Param        title        formData  string true  "Title"
// @Param        description  formData  string false "Description"
// @Param        category     formData  string false "Category"
// @Success      201          {object}  dto.VideoResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Failure      401          {object}  dto.ErrorResponse
// @Failure      500          {object}  dto.ErrorResponse "Blob credential missing"
// @Router       /videos [post]
func (h *VideoHandler) UploadVideo(c *fiber.Ctx) error {
	form := dto.UploadVideoForm{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
	}

	fileHeader, err := c.FormFile("video")
	if err != nil {
		return apperrors.ErrValidation("video file is required")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return apperrors.ErrInternal(err)
	}
	defer f.Close()

	video, err := h.service.CreateFromUpload(c.UserContext(), form, usecases.FileInput{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Size:        fileHeader.Size,
		Body:        f,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.VideoResponse{Video: *video})
}

// CreateFromBlob
//
// @Summary      Create a video from an uploaded blob or a Vimeo reference
// @Description  vimeo_id accepts a numeric id or any Vimeo URL. Requires the admin cookie.
// @Tags         Videos
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateFromBlobRequest true "Video fields"
// @Success      201   {object}  dto.VideoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /videos/create-from-blob [post]
func (h *VideoHandler) CreateFromBlob(c *fiber.Ctx) error {
	var req dto.CreateFromBlobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.ErrValidation("request body must be a JSON object")
	}
	video, err := h.service.CreateFromBlob(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.VideoResponse{Video: *video})
}

// UpdateVideo
//
// @Summary      Update a video
// @Description  Only the fields present are changed; an empty string clears an optional field. Requires the admin cookie.
// @Tags         Videos
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true "Video ID"
// @Param        body  body      dto.UpdateVideoRequest  true "Fields to change"
// @Success      200   {object}  dto.VideoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /videos/{id} [patch]
func (h *VideoHandler) UpdateVideo(c *fiber.Ctx) error {
	id, err := videoID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.ErrValidation("request body must be a JSON object")
	}
	video, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(dto.VideoResponse{Video: *video})
}

// DeleteVideo
//
// @Summary      Delete a video
// @Description  Blob files are removed best effort. Requires the admin cookie.
// @Tags         Videos
// @Produce      json
// @Param        id   path      int true "Video ID"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /videos/{id} [delete]
func (h *VideoHandler) DeleteVideo(c *fiber.Ctx) error {
	id, err := videoID(c)
	if err != nil {
		return err
	}
	removed, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrNotFound("Video not found")
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// UploadThumbnail
//
// @Summary      Upload a thumbnail
// @Description  JPEG, PNG, GIF or WebP up to 10 MiB. Requires the admin cookie.
// @Tags         Videos
// @Accept       multipart/form-data
// @Produce      json
// @Param        id         path      int  true "Video ID"
// @Param        thumbnail  formData  file true "Image file"
// @Success      200        {object}  dto.ThumbnailResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      401        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /videos/{id}/thumbnail [post]
func (h *VideoHandler) UploadThumbnail(c *fiber.Ctx) error {
	id, err := videoID(c)
	if err != nil {
		return err
	}
	fileHeader, err := c.FormFile("thumbnail")
	if err != nil {
		return apperrors.ErrValidation("thumbnail file is required")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return apperrors.ErrInternal(err)
	}
	defer f.Close()

	url, video, err := h.service.AttachThumbnail(c.UserContext(), id, usecases.FileInput{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Size:        fileHeader.Size,
		Body:        f,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.ThumbnailResponse{ThumbnailURL: url, Video: *video})
}

// ReorderVideos
//
// @Summary      Reorder videos
// @Description  Sets sort_order to each id's position. Not atomic. Requires the admin cookie.
// @Tags         Videos
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ReorderRequest true "Ids in display order"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse "sort_order column missing"
// @Router       /videos/reorder [post]
func (h *VideoHandler) ReorderVideos(c *fiber.Ctx) error {
	var req dto.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.ErrValidation("videoIds must be an array of video ids")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}
	if err := h.service.Reorder(c.UserContext(), req.VideoIDs); err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func videoID(c *fiber.Ctx) (uint, error) {
	raw := strings.TrimSpace(c.Params("id"))
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperrors.ErrValidation("invalid video id: " + raw)
	}
	return uint(id), nil
}
