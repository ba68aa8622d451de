package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"task-track-system.com/task-track-system/internal/auth"
	"task-track-system.com/task-track-system/internal/constants"
	"task-track-system.com/task-track-system/internal/dto"
	"task-track-system.com/task-track-system/internal/http/validators"
	"task-track-system.com/task-track-system/internal/services"
)

func (h *Handler) CreateUser(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateUserRequest(&req); err != nil {
		return err
	}

	user, err := h.users.CreateUserAs(c.Request().Context(), auth.UserIDFromContext(c), services.CreateUserRequest{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Role:      constants.Role(req.Role),
		ManagerID: req.ManagerID,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context(), auth.UserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c echo.Context) error {
	user, err := h.users.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateUser(c echo.Context) error {
	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	update := services.UpdateUserRequest{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		IsActive:  req.IsActive,
		ManagerID: req.ManagerID,
	}
	if req.Role != nil {
		role := constants.Role(*req.Role)
		if !role.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid role")
		}
		update.Role = &role
	}

	user, err := h.users.UpdateUser(c.Request().Context(), auth.UserIDFromContext(c), c.Param("id"), update)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, user)
}
