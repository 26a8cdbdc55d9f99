package handlers

import (
	"time"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/delivery/http/middleware"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/dto"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/config"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/usecases"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/constants"
	apperrors "github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/errors"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/helper"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	service usecases.AdminService
	cookie  config.AdminConfig
}

func NewAdminHandler(service usecases.AdminService, cookie config.AdminConfig) *AdminHandler {
	return &AdminHandler{service: service, cookie: cookie}
}

// Me
//
// @Summary      Admin status
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  dto.AdminStatusResponse
// @Router       /admin/me [get]
func (h *AdminHandler) Me(c *fiber.Ctx) error {
	return c.JSON(dto.AdminStatusResponse{Admin: middleware.IsAdmin(c)})
}

// Login
//
// @Summary      Admin login
// @Description  Sets the admin cookie when the password matches ADMIN_PASSWORD.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest true "Password"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse "ADMIN_PASSWORD not set"
// @Router       /admin/login [post]
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.ErrValidation("request body must be a JSON object")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}
	if err := h.service.Login(req.Password); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.CookieName,
		Value:    constants.AdminCookieValue,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Logout
//
// @Summary      Admin logout
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse
// @Router       /admin/logout [post]
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.CookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	return c.JSON(dto.SuccessResponse{Success: true})
}
