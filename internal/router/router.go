package router

import (
	"github.com/anonto42/birdie/backend/internal/handlers"
	"github.com/anonto42/birdie/backend/internal/middleware"
	"github.com/anonto42/birdie/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Services are the dependencies the HTTP layer is built from.
type Services struct {
	Auth       *services.AuthService
	Graph      *services.SocialGraphService
	Engagement *services.EngagementService
	Feed       *services.FeedService
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, svc Services) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	public := e.Group("/api")
	protected := e.Group("/api", middleware.JWTAuthMiddleware(svc.Auth))

	// --- Auth and users ---
	authPublic, authProtected := public.Group("/auth"), protected.Group("/auth")
	handlers.NewAuthHandler(svc.Auth).RegisterAuthRoutes(authPublic, authProtected)
	handlers.NewFollowHandler(svc.Graph).RegisterFollowRoutes(authProtected)
	handlers.NewUserHandler(svc.Graph).RegisterUserRoutes(authProtected)
	logrus.Info("Auth routes configured.")

	// --- Tweets ---
	tweetsPublic, tweetsProtected := public.Group("/tweets"), protected.Group("/tweets")
	handlers.NewFeedHandler(svc.Feed).RegisterFeedRoutes(tweetsProtected)
	handlers.NewTweetHandler(svc.Engagement).RegisterTweetRoutes(tweetsProtected)
	handlers.NewLikeHandler(svc.Engagement).RegisterLikeRoutes(tweetsProtected)
	handlers.NewCommentHandler(svc.Engagement).RegisterCommentRoutes(tweetsPublic, tweetsProtected)
	handlers.NewNotificationHandler(svc.Feed).RegisterNotificationRoutes(tweetsProtected)
	logrus.Info("Tweet routes configured.")
}
