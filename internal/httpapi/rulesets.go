package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gridiron-projections/engine/internal/cache"
	"github.com/gridiron-projections/engine/internal/models"
	"github.com/gridiron-projections/engine/pkg/response"
)

// RulesetsHandler serves GET /api/v1/rulesets, the static list of
// scoring rulesets the engine can project under.
type RulesetsHandler struct {
	rulesets []models.ScoringRuleset
}

// NewRulesetsHandler builds a RulesetsHandler over the configured
// rulesets (FanDuel, DraftKings, ...).
func NewRulesetsHandler(rulesets []models.ScoringRuleset) *RulesetsHandler {
	return &RulesetsHandler{rulesets: rulesets}
}

// HandleRulesets handles GET /api/v1/rulesets.
func (h *RulesetsHandler) HandleRulesets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.Error(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET method is allowed")
		return
	}

	cacheKey := cache.RulesetsCacheKey()
	if cached, err := cache.Get(r.Context(), cacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Write([]byte(cached))
		return
	}

	respJSON, err := json.Marshal(response.SuccessResponse{
		Data: h.rulesets,
		Meta: response.Meta{Timestamp: time.Now().UTC().Format(time.RFC3339)},
	})
	if err != nil {
		response.LogAndInternalError(w, r, "failed to encode rulesets response", err)
		return
	}

	cache.Set(r.Context(), cacheKey, string(respJSON), cache.TTLRulesets)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(respJSON)
}
