package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-rest-service/internal/metrics"
	"user-rest-service/internal/usecase/user"
)

const welcomePage = `<!DOCTYPE html>
<html>
<head><title>User REST Service</title></head>
<body>
    <h1>User REST Service</h1>
    <p>A small in-memory user API.</p>
    <h2>API Endpoints:</h2>
    <ul>
        <li>GET /api/users - List all users</li>
        <li>GET /api/users/{id} - Get user by ID</li>
        <li>POST /api/users - Create new user</li>
        <li>GET /health - Health check</li>
        <li>GET /metrics - Server metrics</li>
    </ul>
</body>
</html>
`

// SystemHandler serves the welcome page and the health/metrics introspection
// endpoints. Health and metrics return flat objects, not the API envelope.
type SystemHandler struct {
	uc      user.Usecase
	tracker *metrics.Tracker
	log     *zap.Logger
}

// NewSystemHandler creates a new SystemHandler instance
func NewSystemHandler(uc user.Usecase, tracker *metrics.Tracker, log *zap.Logger) *SystemHandler {
	return &SystemHandler{
		uc:      uc,
		tracker: tracker,
		log:     log,
	}
}

// Welcome handles GET /
func (h *SystemHandler) Welcome(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(welcomePage))
}

// Health handles GET /health. Always 200; the store size is reported as 0 when
// the store cannot be read rather than failing the health probe.
func (h *SystemHandler) Health(c *gin.Context) {
	usersCount, err := h.uc.CountUsers(c.Request.Context())
	if err != nil {
		h.log.Warn("failed to count users for health check", zap.Error(err))
		usersCount = 0
	}

	respondJSON(c, http.StatusOK, h.tracker.Health(usersCount))
}

// Metrics handles GET /metrics
func (h *SystemHandler) Metrics(c *gin.Context) {
	respondJSON(c, http.StatusOK, h.tracker.Metrics())
}
