package handler

import (
	"net/http"

	"najia-backend/internal/dto"
	"najia-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) RequestOtp(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RequestOtpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PhoneNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "phone_number is required")
	}

	if err := h.authService.RequestOtp(ctx, req.PhoneNumber); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "otp sent",
	})
}

func (h *AuthHandler) VerifyOtp(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.VerifyOtpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PhoneNumber == "" || req.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "phone_number and code are required")
	}

	resp, err := h.authService.VerifyOtpAndLogin(ctx, req.PhoneNumber, req.Code)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, resp)
}
