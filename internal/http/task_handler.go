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

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	startDate, err := h.parseDate(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date must be formatted as YYYY-MM-DD")
	}
	dueDate, err := h.parseDate(req.DueDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "due_date must be formatted as YYYY-MM-DD")
	}

	ctx := c.Request().Context()
	task, err := h.tasks.CreateTask(ctx, auth.UserIDFromContext(c), services.CreateTaskRequest{
		Title:        req.Title,
		Description:  req.Description,
		Status:       constants.TaskStatus(req.Status),
		Priority:     constants.TaskPriority(req.Priority),
		StartDate:    startDate,
		DueDate:      dueDate,
		AssignedToID: req.AssignedToID,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.tasks.ListTasks(c.Request().Context(), auth.UserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) GetTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	task, err := h.tasks.GetTask(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateUpdateTaskRequest(&req); err != nil {
		return err
	}

	startDate, err := h.parseDatePtr(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date must be formatted as YYYY-MM-DD")
	}
	dueDate, err := h.parseDatePtr(req.DueDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "due_date must be formatted as YYYY-MM-DD")
	}

	update := services.UpdateTaskRequest{
		Title:         req.Title,
		Description:   req.Description,
		StartDate:     startDate,
		DueDate:       dueDate,
		DelegatedToID: req.DelegatedToID,
	}
	if req.Status != nil {
		status := constants.TaskStatus(*req.Status)
		update.Status = &status
	}
	if req.Priority != nil {
		priority := constants.TaskPriority(*req.Priority)
		update.Priority = &priority
	}

	task, err := h.tasks.UpdateTask(c.Request().Context(), c.Param("id"), auth.UserIDFromContext(c), update)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.tasks.DeleteTask(c.Request().Context(), c.Param("id"), auth.UserIDFromContext(c)); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) UpdateTaskStatus(c echo.Context) error {
	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateUpdateStatusRequest(&req); err != nil {
		return err
	}

	status := constants.TaskStatus(req.Status)
	task, err := h.tasks.UpdateTask(
		c.Request().Context(),
		c.Param("id"),
		auth.UserIDFromContext(c),
		services.UpdateTaskRequest{Status: &status},
	)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "status updated",
		"status":  task.Status,
	})
}

func (h *Handler) DelegateTask(c echo.Context) error {
	var req dto.DelegateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateDelegateTaskRequest(&req); err != nil {
		return err
	}

	_, err := h.tasks.DelegateTask(c.Request().Context(), c.Param("id"), auth.UserIDFromContext(c), req.ToUserID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "task delegated successfully",
	})
}

func (h *Handler) AddComment(c echo.Context) error {
	var req dto.CommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCommentRequest(&req); err != nil {
		return err
	}

	comment, err := h.tasks.AddComment(c.Request().Context(), c.Param("id"), auth.UserIDFromContext(c), req.Message)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, comment)
}

func (h *Handler) ListComments(c echo.Context) error {
	comments, err := h.tasks.ListComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, comments)
}

func (h *Handler) ListDelegations(c echo.Context) error {
	delegations, err := h.tasks.ListDelegations(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, delegations)
}

func (h *Handler) UploadAttachment(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file")
	}
	defer src.Close()

	attachment, err := h.tasks.AddAttachment(
		c.Request().Context(),
		c.Param("id"),
		auth.UserIDFromContext(c),
		fileHeader.Filename,
		fileHeader.Size,
		src,
	)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, attachment)
}

func (h *Handler) DeleteAttachment(c echo.Context) error {
	if err := h.tasks.DeleteAttachment(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
