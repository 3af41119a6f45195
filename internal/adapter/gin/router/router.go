package router

import (
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"user-rest-service/internal/adapter/gin/handler"
	"user-rest-service/internal/adapter/gin/middleware"
	"user-rest-service/internal/config"
	"user-rest-service/internal/metrics"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	systemHandler *handler.SystemHandler,
	tracker *metrics.Tracker,
	cfg *config.Config,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware. The counter runs before the logger so every request
	// is counted ahead of routing and latency measurement.
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestCounter(tracker, log))
	router.Use(middleware.Logger(log))

	router.GET("/", systemHandler.Welcome)
	router.GET("/health", systemHandler.Health)
	router.GET("/metrics", systemHandler.Metrics)

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
		}
	}

	// Optional Swagger UI over the static OpenAPI document
	if cfg.App.SwaggerEnabled {
		swaggerUI := httpSwagger.Handler(httpSwagger.URL("/swagger/user.swagger.json"))
		router.GET("/swagger/*any", func(c *gin.Context) {
			// The document is served from inside the wildcard because gin does
			// not allow a static route next to a catch-all
			if c.Param("any") == "/user.swagger.json" {
				c.File("./api/swagger/user.swagger.json")
				return
			}
			swaggerUI.ServeHTTP(c.Writer, c.Request)
		})
		log.Info("Swagger UI enabled", zap.String("path", "/swagger/"))
	}

	// Everything else, any method: 404 with the standard error envelope
	router.NoRoute(handler.NotFound)
	router.NoMethod(handler.NotFound)

	return router
}
