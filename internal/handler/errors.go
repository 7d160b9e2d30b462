package handler

import (
	"net/http"

	"najia-backend/internal/apperr"

	"github.com/labstack/echo/v4"
)

// httpError converts service-layer errors into echo HTTP errors. Anything
// outside the known taxonomy surfaces as a 500.
func httpError(err error) error {
	switch {
	case apperr.IsValidation(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case apperr.IsUnauthorized(err):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case apperr.IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case apperr.IsConflict(err):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return err
	}
}
