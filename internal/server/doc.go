// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the development chat endpoint.
//
// It serves the exact contract the HTTP gateway speaks, so the client can be
// exercised without the real ZabbixAI API:
//
// # Endpoints
//
//   - POST /chat   - {"message": string} -> {"response": string}
//   - GET  /health - status, version, uptime and request counters
//
// # Middleware
//
//   - Request IDs and panic recovery
//   - Structured request logging (zap)
//   - CORS for browser front ends on localhost
//   - Per-IP token bucket rate limiting on /chat
//   - Security headers
//
// # Usage
//
//	sim := gateway.NewSimulator(nil)
//	srv := server.New(sim, server.Config{Addr: "localhost:8000", Logger: log})
//	if err := srv.Serve(ctx); err != nil {
//		return err
//	}
package server
