// Package httpapi exposes the orchestrator's gameday_predictions
// operation over HTTP, following the handler/middleware/response
// conventions of the rest of the service (§4.9 ambient HTTP surface).
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gridiron-projections/engine/internal/cache"
	"github.com/gridiron-projections/engine/internal/errs"
	"github.com/gridiron-projections/engine/internal/orchestrator"
	"github.com/gridiron-projections/engine/internal/utils"
	"github.com/gridiron-projections/engine/pkg/response"
)

// PredictionsHandler serves GET /api/v1/predictions.
type PredictionsHandler struct {
	orchestrator *orchestrator.Orchestrator
}

// NewPredictionsHandler builds a PredictionsHandler wired to an
// Orchestrator instance.
func NewPredictionsHandler(o *orchestrator.Orchestrator) *PredictionsHandler {
	return &PredictionsHandler{orchestrator: o}
}

// HandlePredictions handles GET /api/v1/predictions?season=&week=&ruleset=&injuries=
func (h *PredictionsHandler) HandlePredictions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.Error(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET method is allowed")
		return
	}

	q := r.URL.Query()
	ruleset := q.Get("ruleset")
	if ruleset == "" {
		response.BadRequest(w, "ruleset is required")
		return
	}

	currentSeason := utils.GetCurrentSeason()
	season := currentSeason.Year
	if raw := q.Get("season"); raw != "" {
		var err error
		season, err = strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "season must be an integer")
			return
		}
	}
	week := currentSeason.CurrentWeek
	if raw := q.Get("week"); raw != "" {
		var err error
		week, err = strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "week must be an integer")
			return
		}
	}
	includeInjuries := q.Get("injuries") != "false"

	cacheKey := cache.GamedayCacheKey(ruleset, season, week, includeInjuries)
	if cached, err := cache.Get(r.Context(), cacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Write([]byte(cached))
		return
	}

	result, err := h.orchestrator.GamedayPredictions(r.Context(), season, week, ruleset, includeInjuries)
	if err != nil {
		writeOrchestratorError(w, r, err)
		return
	}

	respJSON, marshalErr := json.Marshal(response.SuccessResponse{
		Data: result,
		Meta: response.Meta{Timestamp: time.Now().UTC().Format(time.RFC3339)},
	})
	if marshalErr != nil {
		response.LogAndInternalError(w, r, "failed to encode predictions response", marshalErr)
		return
	}

	cache.Set(r.Context(), cacheKey, string(respJSON), cache.TTLGameday)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(respJSON)
}

func writeOrchestratorError(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := err.(*errs.Error)
	if !ok {
		response.LogAndInternalError(w, r, "gameday_predictions failed", err)
		return
	}
	switch e.Kind {
	case errs.BadInput:
		response.LogAndBadRequest(w, r, e.Message, e.Cause)
	case errs.NotFound:
		response.LogAndNotFound(w, r, e.Message)
	case errs.NotReady:
		response.LogAndError(w, r, http.StatusServiceUnavailable, "NOT_READY", e.Message, e.Cause)
	case errs.SchemaMismatch:
		response.LogAndError(w, r, http.StatusConflict, "SCHEMA_MISMATCH", e.Message, e.Cause)
	case errs.NotEnoughHistory:
		response.LogAndError(w, r, http.StatusUnprocessableEntity, "NOT_ENOUGH_HISTORY", e.Message, e.Cause)
	case errs.DataBackend:
		response.LogAndError(w, r, http.StatusBadGateway, "DATA_BACKEND", e.Message, e.Cause)
	default:
		response.LogAndInternalError(w, r, e.Message, e.Cause)
	}
}
