package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gridiron-projections/engine/internal/models"
)

func TestHandleRulesets_MethodNotAllowed(t *testing.T) {
	h := NewRulesetsHandler([]models.ScoringRuleset{{Name: "FanDuel"}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rulesets", nil)
	w := httptest.NewRecorder()

	h.HandleRulesets(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}
