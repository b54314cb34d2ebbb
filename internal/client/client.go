// Package client is a thin HTTP client for the debate API, used by the
// debatectl tool.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	debatehandler "github.com/zhouzirui/debate-arena/backend/internal/handler/debate"
	"github.com/zhouzirui/debate-arena/backend/internal/handler/health"
	debatemodel "github.com/zhouzirui/debate-arena/backend/internal/model/debate"
	"github.com/zhouzirui/debate-arena/backend/pkg/utils"
)

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	Status  int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s (%s)", e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to a running debate server.
type Client struct {
	http *resty.Client
}

// New returns a client rooted at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

// Start opens a debate.
func (c *Client) Start(ctx context.Context, topic, position string) (*debatehandler.StartResponse, error) {
	var out debatehandler.StartResponse
	err := c.do(ctx, resty.MethodPost, "/api/debate/start", nil, debatehandler.StartRequest{
		Topic:        topic,
		UserPosition: position,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Send posts a message to one persona.
func (c *Client) Send(ctx context.Context, sessionID, message, target string) (*debatehandler.MessageResponse, error) {
	var out debatehandler.MessageResponse
	err := c.do(ctx, resty.MethodPost, "/api/debate/message", nil, debatehandler.MessageRequest{
		SessionID:     sessionID,
		Message:       message,
		TargetPersona: target,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Session fetches the session view.
func (c *Client) Session(ctx context.Context, sessionID string) (*debatemodel.View, error) {
	var out debatemodel.View
	params := map[string]string{"sessionID": sessionID}
	if err := c.do(ctx, resty.MethodGet, "/api/debate/sessions/{sessionID}", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History fetches the ordered transcript.
func (c *Client) History(ctx context.Context, sessionID string) (*debatemodel.History, error) {
	var out debatemodel.History
	params := map[string]string{"sessionID": sessionID}
	if err := c.do(ctx, resty.MethodGet, "/api/debate/sessions/{sessionID}/history", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health checks server liveness.
func (c *Client) Health(ctx context.Context) (*health.Response, error) {
	var out health.Response
	if err := c.do(ctx, resty.MethodGet, "/health", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, pathParams map[string]string, body, result any) error {
	var apiErr utils.ErrorResponse

	req := c.http.R().
		SetContext(ctx).
		SetResult(result).
		SetError(&apiErr)
	if pathParams != nil {
		req.SetPathParams(pathParams)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return &APIError{
			Status:  resp.StatusCode(),
			Message: apiErr.Error,
			Detail:  apiErr.Detail,
		}
	}
	return nil
}
