package handlers

import (
	"net/http"

	"github.com/anonto42/birdie/backend/internal/middleware"
	"github.com/anonto42/birdie/backend/internal/models"
	"github.com/anonto42/birdie/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	engagement *services.EngagementService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(engagement *services.EngagementService) *CommentHandler {
	return &CommentHandler{engagement: engagement}
}

// RegisterCommentRoutes registers the comment list on the public group and
// the write routes on the protected one.
func (h *CommentHandler) RegisterCommentRoutes(public, protected *echo.Group) {
	public.GET("/:id/comments", h.ListComments)
	protected.POST("/:id/comments", h.CreateComment)
	protected.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment handles creating a new comment on a tweet
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	comment, err := h.engagement.AddComment(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), req.Content)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// ListComments returns the comments of a tweet, newest first
func (h *CommentHandler) ListComments(c echo.Context) error {
	comments, err := h.engagement.ListComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// DeleteComment handles deleting a comment
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := parseID(c, "Invalid comment ID")
	if err != nil {
		return err
	}
	if err := h.engagement.DeleteComment(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id")})
}
