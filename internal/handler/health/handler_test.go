package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/debate-arena/backend/internal/config"
)

func TestHandleHealth(t *testing.T) {
	r := chi.NewRouter()
	New(config.AppConfig{Version: "1.2.3", Environment: "test"}).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status code %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected content type 'application/json', got '%s'", ct)
	}

	var response Response
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Status != "ok" || response.Version != "1.2.3" || response.Environment != "test" {
		t.Errorf("unexpected response: %+v", response)
	}
}
