package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything that can report its own liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	mongo Pinger
	redis Pinger
}

func NewHealthController(mongo, redis Pinger) *HealthController {
	return &HealthController{mongo: mongo, redis: redis}
}

// Health handles GET /health. The service is degraded but alive when
// Redis is down, and unhealthy when MongoDB is.
func (ctrl *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	overall := "healthy"
	checks := gin.H{}

	if err := ctrl.mongo.Ping(ctx); err != nil {
		checks["mongodb"] = "down"
		status = http.StatusServiceUnavailable
		overall = "unhealthy"
	} else {
		checks["mongodb"] = "up"
	}

	if ctrl.redis != nil {
		if err := ctrl.redis.Ping(ctx); err != nil {
			checks["redis"] = "down"
		} else {
			checks["redis"] = "up"
		}
	}

	c.JSON(status, gin.H{
		"status": overall,
		"checks": checks,
		"time":   time.Now().UTC(),
	})
}
