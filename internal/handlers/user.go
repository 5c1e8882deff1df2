package handlers

import (
	"net/http"

	"github.com/anonto42/birdie/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler serves user search and public profiles
type UserHandler struct {
	graph *services.SocialGraphService
}

func NewUserHandler(graph *services.SocialGraphService) *UserHandler {
	return &UserHandler{graph: graph}
}

// RegisterUserRoutes registers search and profile lookup. Echo matches static
// segments such as /me before :id.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/search", h.SearchUsers)
	g.GET("/:id", h.GetUser)
}

func (h *UserHandler) SearchUsers(c echo.Context) error {
	users, err := h.graph.SearchUsers(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c, "Invalid user ID")
	if err != nil {
		return err
	}
	profile, err := h.graph.GetProfile(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}
