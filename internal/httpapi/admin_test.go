package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandleInvalidateCache_MethodNotAllowed(t *testing.T) {
	h := NewAdminHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/cache/invalidate", nil)
	w := httptest.NewRecorder()

	h.HandleInvalidateCache(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}
