package http

import (
	"time"

	"github.com/labstack/echo/v4"

	"task-track-system.com/task-track-system/internal/auth"
	apperrors "task-track-system.com/task-track-system/internal/errors"
	"task-track-system.com/task-track-system/internal/services"
)

type Handler struct {
	tasks         *services.TaskService
	users         *services.UserService
	notifications *services.NotificationService
	sessions      auth.SessionStore
	location      *time.Location
}

func NewHandler(
	tasks *services.TaskService,
	users *services.UserService,
	notifications *services.NotificationService,
	sessions auth.SessionStore,
	location *time.Location,
) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{
		tasks:         tasks,
		users:         users,
		notifications: notifications,
		sessions:      sessions,
		location:      location,
	}
}

func httpError(err error) error {
	return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
}

const dateLayout = "2006-01-02"

// parseDate interprets a YYYY-MM-DD value in the configured time
// zone, matching how the sweep computes "today".
func (h *Handler) parseDate(value string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, value, h.location)
}

func (h *Handler) parseDatePtr(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := h.parseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
