package handlers

import (
	"net/http"

	"github.com/anonto42/birdie/backend/internal/middleware"
	"github.com/anonto42/birdie/backend/internal/models"
	"github.com/anonto42/birdie/backend/internal/monitoring"
	"github.com/anonto42/birdie/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterAuthRoutes registers signup and login on the public group and the
// account routes on the protected one.
func (h *AuthHandler) RegisterAuthRoutes(public, protected *echo.Group) {
	public.POST("/signup", h.Signup)
	public.POST("/login", h.Login)
	protected.GET("/me", h.Me)
	protected.PUT("/profile", h.UpdateProfile)
}

// Signup handles local user registration with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, token, err := h.auth.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	monitoring.SignupSuccess.Inc()
	logrus.WithField("user_id", user.ID).Info("User registered")

	return c.JSON(http.StatusCreated, models.AuthResponse{User: user, Token: token})
}

// Login handles local user authentication with email and password
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		monitoring.LoginFailure.WithLabelValues("invalid_request").Inc()
		return err
	}

	user, token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		reason := "error"
		if services.KindOf(err) == services.KindUnauthorized {
			reason = "invalid_credentials"
		}
		monitoring.LoginFailure.WithLabelValues(reason).Inc()
		return httpError(err)
	}
	monitoring.LoginSuccess.Inc()

	return c.JSON(http.StatusOK, models.AuthResponse{User: user, Token: token})
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// UpdateProfile changes username, bio or password and returns a fresh token
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, token, err := h.auth.UpdateProfile(c.Request().Context(), middleware.CurrentUser(c), services.ProfileUpdate{
		Username:    req.Username,
		Bio:         req.Bio,
		OldPassword: req.OldPassword,
		NewPassword: req.Password,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, models.AuthResponse{User: user, Token: token})
}
