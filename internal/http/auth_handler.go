package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"task-track-system.com/task-track-system/internal/dto"
	"task-track-system.com/task-track-system/internal/http/validators"
	"task-track-system.com/task-track-system/internal/services"
)

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateLoginRequest(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	token, err := h.sessions.Create(ctx, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create session")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token":    token,
		"role":     user.Role,
		"username": user.Username,
		"email":    user.Email,
	})
}

func (h *Handler) Logout(c echo.Context) error {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token := strings.TrimPrefix(header, "Bearer ")
	if token != "" && token != header {
		_ = h.sessions.Delete(c.Request().Context(), token)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Register is the unauthenticated signup path. The role is never
// client-controlled here; the post-create hook assigns it.
func (h *Handler) Register(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	req.Role = ""
	if err := validators.ValidateCreateUserRequest(&req); err != nil {
		return err
	}

	user, err := h.users.CreateUser(c.Request().Context(), services.CreateUserRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, user)
}
