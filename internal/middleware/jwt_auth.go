package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/anonto42/birdie/backend/internal/models"
	"github.com/labstack/echo/v4"
)

const userContextKey = "user"

// TokenVerifier resolves a bearer token to the current user record.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*models.User, error)
}

// JWTAuthMiddleware requires a valid bearer token and stores the resolved user
// in the context.
func JWTAuthMiddleware(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
			}

			// Expecting "Bearer <token>"
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
			}

			user, err := verifier.Verify(c.Request().Context(), parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by JWTAuthMiddleware, or nil on
// unauthenticated routes.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}
