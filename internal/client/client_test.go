package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/debate-arena/backend/internal/config"
	"github.com/zhouzirui/debate-arena/backend/internal/handler"
	debatemodel "github.com/zhouzirui/debate-arena/backend/internal/model/debate"
	"github.com/zhouzirui/debate-arena/backend/internal/model/persona"
	"github.com/zhouzirui/debate-arena/backend/internal/service/ai"
	"github.com/zhouzirui/debate-arena/backend/internal/service/debate"
)

func newTestServer(t *testing.T, strict bool) *Client {
	t.Helper()
	personas := persona.NewMemoryStore(persona.Seed())
	gen, err := ai.NewService(context.Background(), personas, ai.Options{})
	require.NoError(t, err)

	svc := debate.NewService(debate.NewMemoryStore(), gen, debate.Options{StrictSessions: strict})
	srv := httptest.NewServer(handler.NewRouter(config.AppConfig{Version: "test", Environment: "test"}, personas, svc))
	t.Cleanup(srv.Close)

	return New(srv.URL, 5*time.Second)
}

func TestClientRoundTrip(t *testing.T) {
	c := newTestServer(t, false)
	ctx := context.Background()

	started, err := c.Start(ctx, "Should AI replace jobs?", "pro")
	require.NoError(t, err)
	assert.Equal(t, debatemodel.Con, started.FirstPersonaPosition)
	assert.Equal(t, debatemodel.Pro, started.SecondPersonaPosition)

	reply, err := c.Send(ctx, started.SessionID, "hello", "linda")
	require.NoError(t, err)
	assert.Equal(t, ai.LindaResponse, reply.Message)
	assert.Equal(t, debatemodel.RoleLinda, reply.Persona)

	view, err := c.Session(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 3, view.TurnCount)

	history, err := c.History(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 3, history.TotalCount)

	status, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", status.Status)
}

func TestClientDecodesAPIErrors(t *testing.T) {
	c := newTestServer(t, true)

	_, err := c.Send(context.Background(), "missing", "hello", "james")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "session not found", apiErr.Message)

	_, err = c.Start(context.Background(), "topic", "maybe")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}
