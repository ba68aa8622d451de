package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"task-track-system.com/task-track-system/internal/constants"
	"task-track-system.com/task-track-system/internal/dto"
)

func ValidateCreateUserRequest(r *dto.CreateUserRequest) error {
	if r.Username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "a valid email is required")
	}
	if len(r.Password) < 8 {
		return echo.NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}
	if r.Role != "" && !constants.Role(r.Role).Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid role")
	}
	return nil
}

func ValidateLoginRequest(r *dto.LoginRequest) error {
	if r.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}
	if r.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}
	return nil
}
