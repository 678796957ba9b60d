// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGateway_Send_Success(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Message)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ChatResponse{Response: "hi there"})
	}))
	defer srv.Close()

	gw := NewHTTPGateway(&HTTPConfig{Endpoint: srv.URL})
	reply, err := gw.Send(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
	assert.Equal(t, int32(1), calls.Load(), "gateway must not retry")
}

func TestHTTPGateway_Send_EmptyResponseField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	reply, err := NewHTTPGateway(&HTTPConfig{Endpoint: srv.URL}).Send(context.Background(), "x")
	require.NoError(t, err)
	assert.Empty(t, reply)
}

func TestHTTPGateway_Send_StatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"bad request", http.StatusBadRequest},
		{"server error", http.StatusInternalServerError},
		{"unavailable", http.StatusServiceUnavailable},
		{"redirect without location", http.StatusMultipleChoices},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"response":"ignored"}`))
			}))
			defer srv.Close()

			_, err := NewHTTPGateway(&HTTPConfig{Endpoint: srv.URL}).Send(context.Background(), "ping")
			require.Error(t, err)

			var gerr *Error
			require.True(t, errors.As(err, &gerr))
			assert.Equal(t, ErrTypeStatus, gerr.Type)
			assert.Equal(t, tc.status, gerr.StatusCode)
			assert.True(t, errors.Is(err, ErrBadStatus))
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestHTTPGateway_Send_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewHTTPGateway(&HTTPConfig{Endpoint: srv.URL}).Send(context.Background(), "ping")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadResponse))
}

func TestHTTPGateway_Send_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPGateway(&HTTPConfig{Endpoint: url}).Send(context.Background(), "ping")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreachable), "got %v", err)
}

func TestHTTPGateway_Send_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	gw := NewHTTPGateway(&HTTPConfig{Endpoint: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := gw.Send(context.Background(), "ping")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout), "got %v", err)
}

func TestHTTPGateway_Send_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPGateway(&HTTPConfig{Endpoint: srv.URL}).Send(ctx, "ping")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCanceled), "got %v", err)
}

func TestNewHTTPGateway_Defaults(t *testing.T) {
	gw := NewHTTPGateway(nil)
	assert.Equal(t, DefaultEndpoint, gw.Endpoint())
	assert.Equal(t, 60*time.Second, gw.httpClient.Timeout)

	gw = NewHTTPGateway(&HTTPConfig{})
	assert.Equal(t, DefaultEndpoint, gw.Endpoint())
}

func TestNew_SelectsBackend(t *testing.T) {
	gw, err := New(Options{Backend: BackendHTTP, Endpoint: "http://example.test/chat"})
	require.NoError(t, err)
	assert.IsType(t, &HTTPGateway{}, gw)

	gw, err = New(Options{Backend: BackendSimulator})
	require.NoError(t, err)
	assert.IsType(t, &Simulator{}, gw)

	_, err = New(Options{Backend: "carrier-pigeon"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := &Error{Type: ErrTypeConnection, Message: "chat endpoint unreachable", Cause: cause}

	assert.Equal(t, "chat endpoint unreachable: dial tcp: refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.NotErrorIs(t, err, ErrTimeout)
}
