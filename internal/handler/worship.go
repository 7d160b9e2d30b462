package handler

import (
	"net/http"
	"strconv"

	"najia-backend/internal/dto"
	"najia-backend/internal/middleware"
	"najia-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type WorshipHandler struct {
	worshipService service.WorshipService
}

func NewWorshipHandler(worshipService service.WorshipService) *WorshipHandler {
	return &WorshipHandler{
		worshipService: worshipService,
	}
}

func (h *WorshipHandler) RecordSelawat(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RecordCountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	record, err := h.worshipService.RecordSelawat(ctx, middleware.UserID(c), req.Count, req.Notes)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, record)
}

func (h *WorshipHandler) RecordIstigfar(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RecordCountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	record, err := h.worshipService.RecordIstigfar(ctx, middleware.UserID(c), req.Count, req.Notes)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, record)
}

func (h *WorshipHandler) RecordQuran(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RecordQuranRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	record, err := h.worshipService.RecordQuran(ctx, middleware.UserID(c), req.Minutes, req.Notes)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, record)
}

func (h *WorshipHandler) DailyProgress(c echo.Context) error {
	ctx := c.Request().Context()

	summary, err := h.worshipService.DailyProgress(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, summary)
}

func (h *WorshipHandler) WeeklyProgress(c echo.Context) error {
	ctx := c.Request().Context()

	progress, err := h.worshipService.WeeklyProgress(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, progress)
}

func (h *WorshipHandler) MonthlyProgress(c echo.Context) error {
	ctx := c.Request().Context()

	month, err := optionalIntQuery(c, "month")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "month must be a number")
	}
	year, err := optionalIntQuery(c, "year")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "year must be a number")
	}

	progress, err := h.worshipService.MonthlyProgress(ctx, middleware.UserID(c), month, year)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, progress)
}

func (h *WorshipHandler) WeeklyLeaderboard(c echo.Context) error {
	ctx := c.Request().Context()

	entries, err := h.worshipService.WeeklyLeaderboard(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, entries)
}

func (h *WorshipHandler) MonthlyLeaderboard(c echo.Context) error {
	ctx := c.Request().Context()

	entries, err := h.worshipService.MonthlyLeaderboard(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, entries)
}

func (h *WorshipHandler) UserRank(c echo.Context) error {
	ctx := c.Request().Context()

	period := c.Param("period")

	rank, err := h.worshipService.UserRank(ctx, middleware.UserID(c), period)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, rank)
}

func optionalIntQuery(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
