package http

import (
	"time"

	"github.com/labstack/echo/v4"

	"task-track-system.com/task-track-system/internal/auth"
	middleware "task-track-system.com/task-track-system/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, sessions auth.SessionStore, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)

	api := e.Group("", auth.RequireSession(sessions))

	api.POST("/auth/logout", h.Logout)

	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks", h.ListTasks)
	api.GET("/tasks/:id", h.GetTask)
	api.PATCH("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
	api.PATCH("/tasks/:id/status", h.UpdateTaskStatus)
	api.POST("/tasks/:id/delegate", h.DelegateTask)
	api.GET("/tasks/:id/comments", h.ListComments)
	api.POST("/tasks/:id/comments", h.AddComment)
	api.GET("/tasks/:id/delegations", h.ListDelegations)
	api.POST("/tasks/:id/attachments", h.UploadAttachment)
	api.DELETE("/attachments/:id", h.DeleteAttachment)

	api.GET("/notifications", h.ListNotifications)
	api.GET("/notifications/unread-count", h.UnreadNotificationCount)
	api.POST("/notifications/:id/mark-read", h.MarkNotificationRead)
	api.POST("/notifications/mark-all-read", h.MarkAllNotificationsRead)

	api.POST("/users", h.CreateUser)
	api.GET("/users", h.ListUsers)
	api.GET("/users/:id", h.GetUser)
	api.PATCH("/users/:id", h.UpdateUser)
}
