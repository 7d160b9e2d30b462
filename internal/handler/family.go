package handler

import (
	"net/http"

	"najia-backend/internal/dto"
	"najia-backend/internal/middleware"
	"najia-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type FamilyHandler struct {
	familyService service.FamilyService
}

func NewFamilyHandler(familyService service.FamilyService) *FamilyHandler {
	return &FamilyHandler{
		familyService: familyService,
	}
}

func (h *FamilyHandler) CreateChild(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateChildRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	child, err := h.familyService.CreateChild(ctx, middleware.UserID(c), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, child)
}

func (h *FamilyHandler) ListChildren(c echo.Context) error {
	ctx := c.Request().Context()

	children, err := h.familyService.ListChildren(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, children)
}

func (h *FamilyHandler) AssignTask(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AssignTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	task, err := h.familyService.AssignTask(ctx, middleware.UserID(c), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *FamilyHandler) ValidateTask(c echo.Context) error {
	ctx := c.Request().Context()

	taskID := c.Param("taskId")
	if err := h.familyService.ValidateTask(ctx, middleware.UserID(c), taskID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "task validated",
	})
}

func (h *FamilyHandler) ChildLogin(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ChildLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.LoginCode == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "login_code is required")
	}

	dashboard, err := h.familyService.ChildLogin(ctx, req.LoginCode)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dashboard)
}

func (h *FamilyHandler) ChildDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	dashboard, err := h.familyService.ChildDashboard(ctx, c.Param("childId"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dashboard)
}

func (h *FamilyHandler) CompleteTask(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CompleteTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.LoginCode == "" || req.TaskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "login_code and task_id are required")
	}

	if err := h.familyService.CompleteTask(ctx, req.LoginCode, req.TaskID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "task completed",
	})
}
