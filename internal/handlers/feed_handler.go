package handlers

import (
	"net/http"

	"github.com/anonto42/birdie/backend/internal/middleware"
	"github.com/anonto42/birdie/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the ranked feed
type FeedHandler struct {
	feed *services.FeedService
}

func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("", h.GetFeed)
}

// GetFeed returns all tweets, followed authors first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	feed, err := h.feed.GetFeed(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, feed)
}
