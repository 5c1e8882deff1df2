package handlers

import (
	"net/http"

	"github.com/anonto42/birdie/backend/internal/middleware"
	"github.com/anonto42/birdie/backend/internal/models"
	"github.com/anonto42/birdie/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// TweetHandler handles tweet authoring
type TweetHandler struct {
	engagement *services.EngagementService
}

func NewTweetHandler(engagement *services.EngagementService) *TweetHandler {
	return &TweetHandler{engagement: engagement}
}

func (h *TweetHandler) RegisterTweetRoutes(g *echo.Group) {
	g.POST("", h.CreateTweet)
	g.DELETE("/:id", h.DeleteTweet)
}

// CreateTweet accepts text, an inline base64 image, or both
func (h *TweetHandler) CreateTweet(c echo.Context) error {
	var req models.CreateTweetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	tweet, err := h.engagement.CreateTweet(c.Request().Context(), middleware.CurrentUser(c), req.Content, req.Image)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, tweet)
}

func (h *TweetHandler) DeleteTweet(c echo.Context) error {
	id := c.Param("id")
	if err := h.engagement.DeleteTweet(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}
