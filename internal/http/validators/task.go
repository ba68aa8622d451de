package validators

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"task-track-system.com/task-track-system/internal/constants"
	"task-track-system.com/task-track-system/internal/dto"
)

const dateLayout = "2006-01-02"

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if r.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if r.Description == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "description is required")
	}
	if err := validateDate(r.StartDate, "start_date", true); err != nil {
		return err
	}
	if err := validateDate(r.DueDate, "due_date", true); err != nil {
		return err
	}
	if r.Status != "" && !constants.TaskStatus(r.Status).Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task status")
	}
	if r.Priority != "" && !constants.TaskPriority(r.Priority).Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task priority")
	}
	return nil
}

func ValidateUpdateTaskRequest(r *dto.UpdateTaskRequest) error {
	if r.Status != nil && !constants.TaskStatus(*r.Status).Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task status")
	}
	if r.Priority != nil && !constants.TaskPriority(*r.Priority).Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task priority")
	}
	if r.StartDate != nil {
		if err := validateDate(*r.StartDate, "start_date", false); err != nil {
			return err
		}
	}
	if r.DueDate != nil {
		if err := validateDate(*r.DueDate, "due_date", false); err != nil {
			return err
		}
	}
	return nil
}

func ValidateDelegateTaskRequest(r *dto.DelegateTaskRequest) error {
	if r.ToUserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "to_user_id is required")
	}
	return nil
}

func ValidateUpdateStatusRequest(r *dto.UpdateStatusRequest) error {
	if !constants.TaskStatus(r.Status).Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task status")
	}
	return nil
}

func ValidateCommentRequest(r *dto.CommentRequest) error {
	if r.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}
	return nil
}

func validateDate(value, field string, required bool) error {
	if value == "" {
		if required {
			return echo.NewHTTPError(http.StatusBadRequest, field+" is required")
		}
		return nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, field+" must be formatted as YYYY-MM-DD")
	}
	return nil
}
