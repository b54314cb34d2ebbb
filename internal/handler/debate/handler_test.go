package debate

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	debatemodel "github.com/zhouzirui/debate-arena/backend/internal/model/debate"
	"github.com/zhouzirui/debate-arena/backend/internal/model/persona"
	"github.com/zhouzirui/debate-arena/backend/internal/service/ai"
	debatesvc "github.com/zhouzirui/debate-arena/backend/internal/service/debate"
)

func setupRouter(t *testing.T, strict bool) *chi.Mux {
	t.Helper()
	gen, err := ai.NewService(context.Background(), persona.NewMemoryStore(persona.Seed()), ai.Options{})
	if err != nil {
		t.Fatalf("ai.NewService err: %v", err)
	}
	svc := debatesvc.NewService(debatesvc.NewMemoryStore(), gen, debatesvc.Options{StrictSessions: strict})

	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case []byte:
		reader = bytes.NewReader(v)
	default:
		payload, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func startSession(t *testing.T, r http.Handler, topic, position string) StartResponse {
	t.Helper()
	resp := doJSON(t, r, http.MethodPost, "/start", map[string]string{"topic": topic, "userPosition": position})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var out StartResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestStartAssignsPositions(t *testing.T) {
	r := setupRouter(t, false)

	out := startSession(t, r, "Should AI replace jobs?", "pro")

	if out.SessionID == "" {
		t.Fatal("expected session id")
	}
	if out.FirstPersonaPosition != debatemodel.Con || out.SecondPersonaPosition != debatemodel.Pro {
		t.Fatalf("unexpected positions: james=%s linda=%s", out.FirstPersonaPosition, out.SecondPersonaPosition)
	}
	if !strings.Contains(out.OpeningMessage, "Should AI replace jobs?") {
		t.Fatalf("opening message missing topic: %s", out.OpeningMessage)
	}
	if out.CreatedAt.IsZero() {
		t.Fatal("expected createdAt")
	}
}

func TestStartEchoesTopicVerbatim(t *testing.T) {
	r := setupRouter(t, false)
	topic := "  Should AI replace jobs?  "

	out := startSession(t, r, topic, "con")

	if out.Topic != topic {
		t.Fatalf("expected topic %q, got %q", topic, out.Topic)
	}
	if !strings.Contains(out.OpeningMessage, "'"+topic+"'") {
		t.Fatalf("opening message does not carry topic verbatim: %s", out.OpeningMessage)
	}
}

func TestStartRejectsInvalidPayloads(t *testing.T) {
	r := setupRouter(t, false)

	cases := map[string]any{
		"malformed":     []byte(`{"topic":`),
		"bad position":  map[string]string{"topic": "t", "userPosition": "neutral"},
		"missing topic": map[string]string{"userPosition": "pro"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp := doJSON(t, r, http.MethodPost, "/start", body)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.Code)
			}
		})
	}
}

func TestMessageReturnsFixedReplies(t *testing.T) {
	r := setupRouter(t, false)
	session := startSession(t, r, "topic", "con")

	cases := map[string]string{
		"james": ai.JamesResponse,
		"linda": ai.LindaResponse,
		"user":  ai.FallbackResponse,
		"":      ai.JamesResponse,
	}
	for target, want := range cases {
		resp := doJSON(t, r, http.MethodPost, "/message", map[string]string{
			"sessionId":     session.SessionID,
			"message":       "hello",
			"targetPersona": target,
		})
		if resp.Code != http.StatusOK {
			t.Fatalf("target=%q: expected 200, got %d", target, resp.Code)
		}

		var out MessageResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if out.Message != want {
			t.Fatalf("target=%q: unexpected message %q", target, out.Message)
		}
		if out.SessionID != session.SessionID {
			t.Fatalf("unexpected session id %q", out.SessionID)
		}
		if out.AudioURL != nil {
			t.Fatal("audioUrl should be null")
		}
	}
}

func TestMessageUnknownSessionLenient(t *testing.T) {
	r := setupRouter(t, false)

	resp := doJSON(t, r, http.MethodPost, "/message", map[string]string{
		"sessionId":     "x",
		"message":       "hello",
		"targetPersona": "james",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"audioUrl":null`) {
		t.Fatalf("expected explicit null audioUrl: %s", resp.Body.String())
	}
}

func TestMessageUnknownSessionStrict(t *testing.T) {
	r := setupRouter(t, true)

	resp := doJSON(t, r, http.MethodPost, "/message", map[string]string{
		"sessionId": "x",
		"message":   "hello",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestMessageRejectsUnknownPersona(t *testing.T) {
	r := setupRouter(t, false)

	resp := doJSON(t, r, http.MethodPost, "/message", map[string]string{
		"sessionId":     "x",
		"message":       "hello",
		"targetPersona": "socrates",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGetSessionAndHistory(t *testing.T) {
	r := setupRouter(t, false)
	session := startSession(t, r, "topic", "pro")

	doJSON(t, r, http.MethodPost, "/message", map[string]string{
		"sessionId":     session.SessionID,
		"message":       "hello",
		"targetPersona": "linda",
	})

	resp := doJSON(t, r, http.MethodGet, "/sessions/"+session.SessionID, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var view debatemodel.View
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.TurnCount != 3 {
		t.Fatalf("expected 3 turns, got %d", view.TurnCount)
	}

	resp = doJSON(t, r, http.MethodGet, "/sessions/"+session.SessionID+"/history", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var history debatemodel.History
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if history.TotalCount != 3 || history.Messages[2].Role != debatemodel.RoleLinda {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestGetSessionPlaceholder(t *testing.T) {
	r := setupRouter(t, false)

	resp := doJSON(t, r, http.MethodGet, "/sessions/unknown", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var fields map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(fields) != 3 {
		t.Fatalf("expected only sessionId, status and message, got %v", fields)
	}
	if fields["sessionId"] != "unknown" || fields["status"] != "active" || fields["message"] == "" {
		t.Fatalf("unexpected placeholder: %v", fields)
	}
}

func TestHistoryUnknownSession(t *testing.T) {
	r := setupRouter(t, false)

	resp := doJSON(t, r, http.MethodGet, "/sessions/unknown/history", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
