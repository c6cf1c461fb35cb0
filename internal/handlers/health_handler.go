package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lazymint/internal/utils"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	database Pinger
	cache    Pinger
}

// NewHealthHandler takes the backing services to probe. A nil cache is
// skipped, matching deployments that run without one.
func NewHealthHandler(database Pinger, cache Pinger) *HealthHandler {
	return &HealthHandler{
		database: database,
		cache:    cache,
	}
}

// Health reports service liveness and backing store reachability
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	healthy := true

	if err := h.database.Ping(ctx); err != nil {
		checks["database"] = "unreachable"
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			checks["cache"] = "unreachable"
		} else {
			checks["cache"] = "ok"
		}
	}

	if !healthy {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "SERVICE_UNHEALTHY", "One or more backing services are unreachable")
		return
	}

	utils.SuccessResponse(c, "Service healthy", checks)
}
