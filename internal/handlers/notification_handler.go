package handlers

import (
	"net/http"

	"github.com/anonto42/birdie/backend/internal/middleware"
	"github.com/anonto42/birdie/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	feed *services.FeedService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(feed *services.FeedService) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
}

// GetNotifications returns the user's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	notifications, err := h.feed.GetNotifications(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, notifications)
}
