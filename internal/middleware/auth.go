package middleware

import (
	"net/http"
	"strings"

	"najia-backend/internal/service"

	"github.com/labstack/echo/v4"
)

// UserIDKey is the context key the auth middleware stores the
// authenticated user id under.
const UserIDKey = "user_id"

// RequireAuth validates a Bearer token and stashes the user id on the
// echo context for handlers downstream.
func RequireAuth(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			userID, err := authService.ParseToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

// UserID reads the authenticated user id set by RequireAuth.
func UserID(c echo.Context) string {
	id, _ := c.Get(UserIDKey).(string)
	return id
}
