package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"user-rest-service/cmd/api/di"
	ginrouter "user-rest-service/internal/adapter/gin/router"
	"user-rest-service/internal/config"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(container *di.Container, cfg *config.Config, l *zap.Logger) *http.Server {
	// Setup Gin router with all middleware and routes
	router := ginrouter.SetupRouter(
		container.UserHandler,
		container.SystemHandler,
		container.Tracker,
		cfg,
		l,
	)

	l.Info("REST API configured", zap.String("address", cfg.App.Addr()))

	return &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
