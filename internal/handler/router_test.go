package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zhouzirui/debate-arena/backend/internal/config"
	"github.com/zhouzirui/debate-arena/backend/internal/model/persona"
	"github.com/zhouzirui/debate-arena/backend/internal/service/ai"
	debateService "github.com/zhouzirui/debate-arena/backend/internal/service/debate"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	personas := persona.NewMemoryStore(persona.Seed())
	gen, err := ai.NewService(context.Background(), personas, ai.Options{})
	if err != nil {
		t.Fatalf("ai.NewService err: %v", err)
	}
	svc := debateService.NewService(debateService.NewMemoryStore(), gen, debateService.Options{})
	return NewRouter(config.AppConfig{Version: "test", Environment: "test"}, personas, svc)
}

func TestRouterMountsRoutes(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/api/personas", "", http.StatusOK},
		{http.MethodPost, "/api/debate/start", `{"topic":"t","userPosition":"pro"}`, http.StatusOK},
		{http.MethodPost, "/api/debate/message", `{"sessionId":"x","message":"hi"}`, http.StatusOK},
		{http.MethodGet, "/api/debate/sessions/x", "", http.StatusOK},
		{http.MethodGet, "/api/nope", "", http.StatusNotFound},
		{http.MethodDelete, "/api/debate/start", "", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(tc.body))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		if resp.Code != tc.want {
			t.Errorf("%s %s: expected %d, got %d", tc.method, tc.path, tc.want, resp.Code)
		}
	}
}

func TestRouterAnswersPreflight(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/debate/start", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}
