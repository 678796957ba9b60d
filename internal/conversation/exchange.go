// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"sync"

	"github.com/jeranaias/zabbixai-chat/internal/gateway"
	"github.com/jeranaias/zabbixai-chat/internal/model"
)

// Result is the outcome of one gateway call.
type Result struct {
	Reply string
	Err   error
}

// Exchange is the single gateway call started by one Submit.
type Exchange struct {
	gateway gateway.Gateway
	text    string
	message model.Message

	once   sync.Once
	result Result
}

// Text returns the submitted text.
func (e *Exchange) Text() string { return e.text }

// UserMessage returns the message appended by Submit.
func (e *Exchange) UserMessage() model.Message { return e.message }

// Do calls the gateway. The call happens at most once; later calls return
// the first result.
func (e *Exchange) Do(ctx context.Context) Result {
	e.once.Do(func() {
		if e.gateway == nil {
			e.result = Result{Err: gateway.ErrUnreachable}
			return
		}
		reply, err := e.gateway.Send(ctx, e.text)
		e.result = Result{Reply: reply, Err: err}
	})
	return e.result
}
