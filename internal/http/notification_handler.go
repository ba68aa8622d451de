package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"task-track-system.com/task-track-system/internal/auth"
)

func (h *Handler) ListNotifications(c echo.Context) error {
	notifications, err := h.notifications.ListFor(c.Request().Context(), auth.UserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, notifications)
}

func (h *Handler) UnreadNotificationCount(c echo.Context) error {
	count, err := h.notifications.UnreadCount(c.Request().Context(), auth.UserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"unread": count})
}

func (h *Handler) MarkNotificationRead(c echo.Context) error {
	err := h.notifications.MarkRead(c.Request().Context(), c.Param("id"), auth.UserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "notification marked as read"})
}

func (h *Handler) MarkAllNotificationsRead(c echo.Context) error {
	updated, err := h.notifications.MarkAllRead(c.Request().Context(), auth.UserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "all notifications marked as read",
		"updated": updated,
	})
}
