package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"user-rest-service/internal/metrics"
	"user-rest-service/pkg/logger"
)

// RequestCounter counts every inbound request, matched or not, before any
// routing decision and before latency measurement. Every 100th request it logs
// a throughput line.
func RequestCounter(tracker *metrics.Tracker, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		total := tracker.IncRequests()

		if total%100 == 0 {
			log.Info("throughput",
				zap.Int64("requests_total", total),
				zap.Float64("requests_per_second", tracker.RequestsPerSecond()),
			)
		}

		c.Next()
	}
}

// RequestID assigns a UUID to each request, exposed on the response and on the
// request context for downstream log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()

		c.Header("X-Request-ID", id)
		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// Logger logs each request/response with method, path, status, and latency.
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		reqLog := logger.WithContext(c.Request.Context(), log)
		reqLog.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// Recovery turns handler panics into a 500 error envelope instead of a dropped
// connection.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered in handler",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				c.Header("Access-Control-Allow-Origin", "*")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"data":    nil,
					"error":   "Internal server error",
				})
			}
		}()

		c.Next()
	}
}
