package handler

import (
	"io"
	"net/http"

	"najia-backend/internal/dto"
	"najia-backend/internal/middleware"
	"najia-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type StorageHandler struct {
	storageService service.StorageService
}

func NewStorageHandler(storageService service.StorageService) *StorageHandler {
	return &StorageHandler{
		storageService: storageService,
	}
}

// Upload accepts a multipart form with a single "file" field.
func (h *StorageHandler) Upload(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file field is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot open uploaded file")
	}
	defer src.Close()

	body, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	key, err := h.storageService.Upload(ctx, middleware.UserID(c), fileHeader.Filename, contentType, body)
	if err != nil {
		return httpError(err)
	}

	url, err := h.storageService.DownloadURL(ctx, key)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, dto.PresignResponse{
		Key: key,
		URL: url,
	})
}

func (h *StorageHandler) DownloadURL(c echo.Context) error {
	ctx := c.Request().Context()

	key := c.QueryParam("key")
	url, err := h.storageService.DownloadURL(ctx, key)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.PresignResponse{
		Key: key,
		URL: url,
	})
}
