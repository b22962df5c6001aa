package httpapi

import (
	"net/http"

	"github.com/gridiron-projections/engine/internal/cache"
	"github.com/gridiron-projections/engine/pkg/response"
)

// AdminHandler serves the cache-invalidation admin surface, gated by
// middleware.AdminAuth at the route level.
type AdminHandler struct {
	invalidation *cache.InvalidationManager
}

// NewAdminHandler builds an AdminHandler.
func NewAdminHandler() *AdminHandler {
	return &AdminHandler{invalidation: cache.NewInvalidationManager()}
}

// HandleInvalidateCache handles POST /api/v1/admin/cache/invalidate?strategy=
func (h *AdminHandler) HandleInvalidateCache(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.Error(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST method is allowed")
		return
	}

	strategy := cache.InvalidationStrategy(r.URL.Query().Get("strategy"))
	if strategy == "" {
		strategy = cache.InvalidateAll
	}

	if err := h.invalidation.InvalidateByStrategy(r.Context(), strategy); err != nil {
		response.LogAndInternalError(w, r, "cache invalidation failed", err)
		return
	}

	response.Success(w, map[string]string{"strategy": string(strategy)})
}
