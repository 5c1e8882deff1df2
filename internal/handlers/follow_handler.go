package handlers

import (
	"net/http"

	"github.com/anonto42/birdie/backend/internal/middleware"
	"github.com/anonto42/birdie/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	graph *services.SocialGraphService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(graph *services.SocialGraphService) *FollowHandler {
	return &FollowHandler{graph: graph}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follow/:id", h.ToggleFollow)
}

// ToggleFollow follows the user, or unfollows if already following
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	targetID, err := parseID(c, "Invalid user ID")
	if err != nil {
		return err
	}

	result, err := h.graph.Follow(c.Request().Context(), middleware.CurrentUser(c), targetID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}
