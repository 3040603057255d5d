package api

import (
	"log/slog"
	"restwell/internal/api/handlers"
	"restwell/internal/api/middleware"
	"restwell/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds dependencies for the API router
type RouterConfig struct {
	Storage         storage.Storage
	OAuth           handlers.OAuthClient
	Tokens          handlers.TokenLifecycle
	Sync            handlers.SyncRunner
	Recommendations handlers.Recommender
	APIKey          string
	Version         string
	Logger          *slog.Logger
}

// NewRouter creates and configures the Gin router
func NewRouter(config RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(config.Logger))
	router.Use(middleware.Logging(config.Logger))
	router.Use(middleware.NoiseFilter(config.Logger))
	router.Use(middleware.ContentType())

	// Health check and metrics (no auth)
	healthHandler := handlers.NewHealthHandler(config.Version)
	router.GET("/health", healthHandler.GetHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(config.OAuth, config.Storage, config.Tokens, config.Logger)

	// Fitbit redirects the browser here, so it cannot carry the API key; the state value authenticates it
	router.GET("/auth/fitbit/callback", authHandler.Callback)

	// API v1 routes (with authentication)
	v1 := router.Group("/v1")
	v1.Use(middleware.APIKey(config.APIKey))
	{
		v1.GET("/auth/fitbit/url", authHandler.GetAuthURL)
		v1.GET("/auth/fitbit/status", authHandler.GetStatus)
		v1.DELETE("/auth/fitbit", authHandler.Disconnect)

		syncHandler := handlers.NewSyncHandler(config.Sync, config.Logger)
		v1.POST("/sync", syncHandler.Sync)

		snapshotsHandler := handlers.NewSnapshotsHandler(config.Storage, config.Logger)
		v1.GET("/snapshots/latest", snapshotsHandler.GetLatest)
		v1.GET("/snapshots/:date", snapshotsHandler.GetByDate)

		profileHandler := handlers.NewProfileHandler(config.Storage, config.Logger)
		v1.GET("/profile", profileHandler.GetProfile)
		v1.PUT("/profile", profileHandler.PutProfile)

		recommendationsHandler := handlers.NewRecommendationsHandler(config.Recommendations, config.Logger)
		v1.POST("/recommendations", recommendationsHandler.Generate)
		v1.GET("/recommendations", recommendationsHandler.GetCurrent)
		v1.GET("/recommendations/history", recommendationsHandler.GetHistory)
		v1.DELETE("/recommendations/history", recommendationsHandler.ClearHistory)
	}

	return router
}
