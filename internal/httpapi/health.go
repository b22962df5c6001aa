package httpapi

import (
	"net/http"

	"github.com/gridiron-projections/engine/internal/cache"
	"github.com/gridiron-projections/engine/internal/store"
	"github.com/gridiron-projections/engine/pkg/response"
)

// HealthHandler serves GET /api/v1/health, reporting Postgres and Redis
// connectivity so a load balancer can route around a degraded instance.
type HealthHandler struct {
	store *store.Store
}

// NewHealthHandler builds a HealthHandler wired to the store.
func NewHealthHandler(s *store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

// HandleHealth handles GET /api/v1/health.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"database": "ok", "cache": "ok"}
	healthy := true

	if err := h.store.HealthCheck(r.Context()); err != nil {
		status["database"] = err.Error()
		healthy = false
	}
	if err := cache.HealthCheck(r.Context()); err != nil {
		status["cache"] = err.Error()
	}

	if !healthy {
		response.JSON(w, http.StatusServiceUnavailable, map[string]interface{}{"status": "unhealthy", "checks": status})
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"status": "healthy", "checks": status})
}
