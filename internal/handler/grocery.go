package handler

import (
	"net/http"

	"najia-backend/internal/dto"
	"najia-backend/internal/middleware"
	"najia-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type GroceryHandler struct {
	groceryService service.GroceryService
}

func NewGroceryHandler(groceryService service.GroceryService) *GroceryHandler {
	return &GroceryHandler{
		groceryService: groceryService,
	}
}

func (h *GroceryHandler) CreateRequest(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateGroceryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	request, err := h.groceryService.CreateRequest(ctx, middleware.UserID(c), req.Items, req.AmountRequested)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, request)
}

func (h *GroceryHandler) ListRequests(c echo.Context) error {
	ctx := c.Request().Context()

	requests, err := h.groceryService.ListRequests(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, requests)
}

func (h *GroceryHandler) GetRequest(c echo.Context) error {
	ctx := c.Request().Context()

	request, err := h.groceryService.GetRequest(ctx, c.Param("requestId"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, request)
}

func (h *GroceryHandler) Approve(c echo.Context) error {
	ctx := c.Request().Context()

	request, err := h.groceryService.Approve(ctx, c.Param("requestId"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, request)
}

func (h *GroceryHandler) Reject(c echo.Context) error {
	ctx := c.Request().Context()

	request, err := h.groceryService.Reject(ctx, c.Param("requestId"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, request)
}
