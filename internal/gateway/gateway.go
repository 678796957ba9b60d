// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway provides the response sources for the chat client.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Gateway resolves exactly one reply for one message after one asynchronous
// step, or fails. Implementations must be safe for concurrent use.
type Gateway interface {
	Send(ctx context.Context, text string) (string, error)
}

// Func adapts an ordinary function to the Gateway interface.
type Func func(ctx context.Context, text string) (string, error)

// Send calls f(ctx, text).
func (f Func) Send(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Backend names accepted by New.
const (
	BackendHTTP      = "http"
	BackendSimulator = "simulator"
)

// ErrUnknownBackend is returned by New for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown gateway backend")

// Options selects and configures a backend.
type Options struct {
	Backend string

	// HTTP backend
	Endpoint string
	Timeout  time.Duration

	// Simulator backend
	MinDelay time.Duration
	MaxDelay time.Duration
}

// New builds the gateway named by opts.Backend.
func New(opts Options) (Gateway, error) {
	switch opts.Backend {
	case BackendHTTP, "":
		return NewHTTPGateway(&HTTPConfig{
			Endpoint: opts.Endpoint,
			Timeout:  opts.Timeout,
		}), nil
	case BackendSimulator:
		return NewSimulator(&SimulatorConfig{
			MinDelay: opts.MinDelay,
			MaxDelay: opts.MaxDelay,
		}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
