package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const contextKeyUserID = "user_id"

// UserIDFromContext returns the user ID set by RequireSession, or ""
// when the request is unauthenticated.
func UserIDFromContext(c echo.Context) string {
	id, _ := c.Get(contextKeyUserID).(string)
	return id
}

// RequireSession resolves the bearer token to a user ID and stores it
// in the request context. Missing or unknown tokens get a 401.
func RequireSession(sessions SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization required")
			}

			userID, err := sessions.Resolve(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization required")
			}

			c.Set(contextKeyUserID, userID)
			return next(c)
		}
	}
}
