package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/birdie/backend/internal/media"
	"github.com/anonto42/birdie/backend/internal/repositories"
	"github.com/anonto42/birdie/backend/internal/repositories/memory"
	"github.com/anonto42/birdie/backend/internal/router"
	"github.com/anonto42/birdie/backend/internal/services"
	"github.com/anonto42/birdie/backend/internal/validators"
	"github.com/anonto42/birdie/backend/pkg/config"
	"github.com/anonto42/birdie/backend/pkg/firebase"
	"github.com/anonto42/birdie/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// stores bundles the repositories the services are built from.
type stores struct {
	users         repositories.UserRepository
	follows       repositories.FollowRepository
	tweets        repositories.TweetRepository
	comments      repositories.CommentRepository
	notifications repositories.NotificationRepository
	close         func()
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Init(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize stores: %v", err)
	}
	defer st.close()

	mediaService, err := initMedia(ctx, cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize media uploads: %v", err)
	}

	ttl, _ := cfg.TokenTTL()
	auth := services.NewAuthService(st.users, cfg.JWTSecret, ttl)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	config.SetupMiddleware(e)
	router.SetupRoutes(e, router.Services{
		Auth:       auth,
		Graph:      services.NewSocialGraphService(st.users, st.follows, st.notifications),
		Engagement: services.NewEngagementService(st.tweets, st.comments, st.users, st.notifications, mediaService),
		Feed:       services.NewFeedService(st.tweets, st.users, st.comments, st.notifications),
	})

	metrics := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: promhttp.Handler()}
	go func() {
		logrus.WithField("port", cfg.MetricsPort).Info("Metrics server listening")
		if err := metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("Metrics server stopped")
		}
	}()

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("HTTP server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("HTTP server shutdown failed")
	}
	if err := metrics.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Metrics server shutdown failed")
	}
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.Store == config.StoreMemory {
		logrus.Warn("Using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return &stores{
			users:         store,
			follows:       store,
			tweets:        store,
			comments:      store,
			notifications: store,
			close:         func() {},
		}, nil
	}

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := repositories.AutoMigrate(db.Postgres); err != nil {
		db.CloseDB()
		return nil, err
	}
	logrus.Info("PostgreSQL auto-migrations completed.")

	tweets := repositories.NewMongoTweetRepository(db.Mongo.Database(cfg.MongoDatabase))
	if err := tweets.EnsureIndexes(ctx); err != nil {
		db.CloseDB()
		return nil, err
	}

	return &stores{
		users:         repositories.NewPostgresUserRepository(db.Postgres),
		follows:       repositories.NewPostgresFollowRepository(db.Postgres),
		tweets:        tweets,
		comments:      repositories.NewPostgresCommentRepository(db.Postgres),
		notifications: repositories.NewPostgresNotificationRepository(db.Postgres),
		close:         db.CloseDB,
	}, nil
}

// initMedia wires Firebase Storage when configured. Without it image uploads
// are rejected and text tweets still work.
func initMedia(ctx context.Context, cfg *config.Config) (*media.Service, error) {
	if !cfg.MediaEnabled() {
		logrus.Warn("Firebase Storage not configured, image uploads disabled")
		return media.NewService(nil, cfg.MediaFolder), nil
	}

	app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.FirebaseStorageBucket)
	if err != nil {
		return nil, err
	}
	uploader, err := app.NewStorageUploader(ctx)
	if err != nil {
		return nil, err
	}
	return media.NewService(uploader, cfg.MediaFolder), nil
}
