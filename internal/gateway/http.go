// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// ChatRequest is the JSON body posted to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the JSON body returned by the chat endpoint.
type ChatResponse struct {
	Response string `json:"response"`
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// DefaultEndpoint is where the ZabbixAI API listens in development.
const DefaultEndpoint = "http://localhost:8000/chat"

// maxResponseBytes caps how much of a reply body is decoded.
const maxResponseBytes = 4 << 20

// HTTPConfig holds configuration options for the HTTP gateway.
type HTTPConfig struct {
	// Endpoint is the full URL of the chat route (default: http://localhost:8000/chat)
	Endpoint string

	// Timeout bounds one request/response exchange (default: 60s)
	Timeout time.Duration

	// Client overrides the underlying HTTP client (tests, custom transports)
	Client *http.Client
}

// DefaultHTTPConfig returns the default gateway configuration.
func DefaultHTTPConfig() *HTTPConfig {
	return &HTTPConfig{
		Endpoint: DefaultEndpoint,
		Timeout:  60 * time.Second,
	}
}

// =============================================================================
// HTTP GATEWAY
// =============================================================================

// HTTPGateway sends each message to a remote chat endpoint.
//
// The HTTPGateway is safe for concurrent use.
type HTTPGateway struct {
	config     *HTTPConfig
	httpClient *http.Client
}

// NewHTTPGateway creates a gateway with the given configuration.
func NewHTTPGateway(config *HTTPConfig) *HTTPGateway {
	if config == nil {
		config = DefaultHTTPConfig()
	}

	// Fill in defaults for any zero values
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}

	client := config.Client
	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}

	return &HTTPGateway{
		config:     config,
		httpClient: client,
	}
}

// Endpoint returns the configured chat URL.
func (g *HTTPGateway) Endpoint() string {
	return g.config.Endpoint
}

// Send posts text to the endpoint and returns the reply. Any transport error,
// non-2xx status or undecodable body is returned as *Error.
func (g *HTTPGateway) Send(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(ChatRequest{Message: text})
	if err != nil {
		return "", &Error{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little of the body so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return "", &Error{
			Type:       ErrTypeStatus,
			Message:    "HTTP error! status: " + strconv.Itoa(resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	var result ChatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&result); err != nil {
		return "", &Error{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return result.Response, nil
}

// classifyTransportError maps a failed http.Client.Do to a typed error.
func classifyTransportError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || isTimeout(err):
		return &Error{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return &Error{Type: ErrTypeCanceled, Message: "request canceled", Cause: err}
	default:
		return &Error{Type: ErrTypeConnection, Message: "chat endpoint unreachable", Cause: err}
	}
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
