// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway provides the response sources for the chat client.
//
// A Gateway resolves one reply string for one user message, or fails.
// Two backends implement it:
//
//   - HTTPGateway: POSTs {"message": text} to a chat endpoint and reads
//     {"response": string} back
//   - Simulator: waits a random delay and picks a canned reply derived
//     from the input text, with no network at all
//
// # Usage
//
//	gw := gateway.NewHTTPGateway(&gateway.HTTPConfig{Endpoint: "http://localhost:8000/chat"})
//	reply, err := gw.Send(ctx, "How do I tune the history syncer?")
//	if err != nil {
//	    var gerr *gateway.Error
//	    if errors.As(err, &gerr) && gerr.Type == gateway.ErrTypeStatus {
//	        ...
//	    }
//	}
//
// Gateways never retry. A failure is final for the message that caused it.
package gateway
