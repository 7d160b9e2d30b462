package handler

import (
	"net/http"

	"najia-backend/internal/dto"
	"najia-backend/internal/middleware"
	"najia-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type QadaHandler struct {
	qadaService  service.QadaService
	puasaService service.QadaPuasaService
}

func NewQadaHandler(qadaService service.QadaService, puasaService service.QadaPuasaService) *QadaHandler {
	return &QadaHandler{
		qadaService:  qadaService,
		puasaService: puasaService,
	}
}

func (h *QadaHandler) CreateTracker(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateQadaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	progress, err := h.qadaService.Create(ctx, middleware.UserID(c), req.TotalYears)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, progress)
}

func (h *QadaHandler) RecordPrayer(c echo.Context) error {
	ctx := c.Request().Context()

	prayerType := c.Param("prayerType")
	progress, err := h.qadaService.RecordPrayer(ctx, middleware.UserID(c), prayerType)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, progress)
}

func (h *QadaHandler) Progress(c echo.Context) error {
	ctx := c.Request().Context()

	progress, err := h.qadaService.Progress(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, progress)
}

func (h *QadaHandler) CreatePuasaTracker(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateQadaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	progress, err := h.puasaService.Create(ctx, middleware.UserID(c), req.TotalYears)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, progress)
}

func (h *QadaHandler) RecordPuasaDay(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RecordQadaPuasaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	progress, err := h.puasaService.RecordDay(ctx, middleware.UserID(c), req.Notes)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, progress)
}

func (h *QadaHandler) PuasaProgress(c echo.Context) error {
	ctx := c.Request().Context()

	progress, err := h.puasaService.Progress(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, progress)
}

func (h *QadaHandler) PuasaHistory(c echo.Context) error {
	ctx := c.Request().Context()

	history, err := h.puasaService.History(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, history)
}
