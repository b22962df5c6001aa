package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandlePredictions_MethodNotAllowed(t *testing.T) {
	h := NewPredictionsHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/predictions", nil)
	w := httptest.NewRecorder()

	h.HandlePredictions(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestHandlePredictions_RequiresRuleset(t *testing.T) {
	h := NewPredictionsHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/predictions?season=2024&week=5", nil)
	w := httptest.NewRecorder()

	h.HandlePredictions(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandlePredictions_RejectsNonIntegerSeason(t *testing.T) {
	h := NewPredictionsHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/predictions?ruleset=FanDuel&season=abc&week=5", nil)
	w := httptest.NewRecorder()

	h.HandlePredictions(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandlePredictions_RejectsNonIntegerWeek(t *testing.T) {
	h := NewPredictionsHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/predictions?ruleset=FanDuel&season=2024&week=xyz", nil)
	w := httptest.NewRecorder()

	h.HandlePredictions(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
