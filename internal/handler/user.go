package handler

import (
	"net/http"

	"najia-backend/internal/dto"
	"najia-backend/internal/middleware"
	"najia-backend/internal/model"
	"najia-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.userService.GetProfile(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, userProfile(user))
}

func (h *UserHandler) CompleteProfile(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CompleteProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.userService.CompleteProfile(ctx, middleware.UserID(c), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, userProfile(user))
}

func (h *UserHandler) EditProfile(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.EditProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.userService.EditProfile(ctx, middleware.UserID(c), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, userProfile(user))
}

func userProfile(user *model.User) *dto.UserProfile {
	return &dto.UserProfile{
		ID:                user.ID,
		PhoneNumber:       user.PhoneNumber,
		Email:             user.Email,
		Name:              user.Name,
		Gender:            user.Gender,
		IsProfileComplete: user.IsProfileComplete,
		AccountType:       user.AccountType,
	}
}
