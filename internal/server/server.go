// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jeranaias/zabbixai-chat/internal/gateway"
)

const (
	// DefaultAddr matches the endpoint the chat client expects.
	DefaultAddr = "localhost:8000"

	// MaxRequestBytes caps the /chat request body.
	MaxRequestBytes = 64 << 10

	// MaxMessageRunes caps the length of one chat message.
	MaxMessageRunes = 8000
)

// ============================================================================
// STATS
// ============================================================================

// Stats counts chat traffic since start.
type Stats struct {
	StartTime time.Time
	requests  atomic.Int64
	failures  atomic.Int64
}

// ============================================================================
// SERVER
// ============================================================================

// Config configures a Server.
type Config struct {
	Addr      string
	RateLimit float64 // requests per second per IP
	Burst     int
	CORS      *CORSConfig
	Logger    *zap.Logger
}

// Server is the development chat endpoint. It speaks the same
// {"message"} -> {"response"} contract as the HTTP gateway and answers
// through any gateway.Gateway, normally the simulator.
type Server struct {
	addr    string
	gateway gateway.Gateway
	logger  *zap.Logger
	limiter *RateLimiter
	cors    *CORSConfig
	stats   *Stats
	version string

	router chi.Router

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// New creates a server answering through gw.
func New(gw gateway.Gateway, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 5
	}
	if cfg.Burst < 1 {
		cfg.Burst = 10
	}
	if cfg.CORS == nil {
		cfg.CORS = DefaultCORSConfig()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	s := &Server{
		addr:    cfg.Addr,
		gateway: gw,
		logger:  cfg.Logger.Named("server"),
		limiter: NewRateLimiter(cfg.RateLimit, cfg.Burst, 0),
		cors:    cfg.CORS,
		stats:   &Stats{StartTime: time.Now()},
		version: "dev",
	}
	s.setupRoutes()
	return s
}

// WithVersion sets the version reported by /health.
func (s *Server) WithVersion(v string) *Server {
	s.version = v
	return s
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ============================================================================
// ROUTES
// ============================================================================

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RecoveryMiddleware(s.logger))
	r.Use(LoggingMiddleware(s.logger))
	r.Use(SecurityHeadersMiddleware())
	r.Use(CORSMiddleware(s.cors))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware(s.limiter, s.logger))
		r.Post("/chat", s.handleChat)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	s.router = r
}

// ============================================================================
// CHAT HANDLER
// ============================================================================

// ChatRequest is the POST /chat body.
type ChatRequest = gateway.ChatRequest

// ChatResponse is the POST /chat reply.
type ChatResponse = gateway.ChatResponse

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	s.stats.requests.Add(1)

	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBytes)
	var req ChatRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, "request body is empty")
		default:
			writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		}
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if len([]rune(req.Message)) > MaxMessageRunes {
		writeError(w, http.StatusRequestEntityTooLarge, "message too long")
		return
	}

	reply, err := s.gateway.Send(r.Context(), req.Message)
	if err != nil {
		s.stats.failures.Add(1)
		if errors.Is(err, gateway.ErrCanceled) {
			// Client went away; nobody reads the answer.
			return
		}
		s.logger.Error("reply failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "reply source unavailable")
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{Response: reply})
}

// ============================================================================
// HEALTH HANDLER
// ============================================================================

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
	Requests int64  `json:"requests"`
	Failures int64  `json:"failures"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Version:  s.version,
		Uptime:   time.Since(s.stats.StartTime).Truncate(time.Second).String(),
		Requests: s.stats.requests.Load(),
		Failures: s.stats.failures.Load(),
	})
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Listen binds the configured address. Addr reports the bound address
// afterwards, which matters when the port was 0.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	return nil
}

// Addr returns the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Serve runs until ctx is canceled, then shuts down gracefully. It calls
// Listen first if that has not happened yet.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	needListen := s.listener == nil
	s.mu.Unlock()
	if needListen {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.server = srv
	ln := s.listener
	s.mu.Unlock()

	s.logger.Info("server started", zap.String("addr", ln.Addr().String()), zap.String("version", s.version))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("server shutting down",
		zap.Int64("requests", s.stats.requests.Load()),
		zap.Int64("failures", s.stats.failures.Load()),
	)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ============================================================================
// HELPERS
// ============================================================================

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
