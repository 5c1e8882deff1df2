package handlers

import (
	"net/http"

	"github.com/anonto42/birdie/backend/internal/middleware"
	"github.com/anonto42/birdie/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	engagement *services.EngagementService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(engagement *services.EngagementService) *LikeHandler {
	return &LikeHandler{engagement: engagement}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.PATCH("/:id/like", h.ToggleLike)
}

// ToggleLike likes the tweet, or unlikes it if already liked, and returns the
// updated tweet
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	tweet, err := h.engagement.ToggleLike(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tweet)
}
