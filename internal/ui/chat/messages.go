// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zabbixai-chat/internal/conversation"
	"github.com/jeranaias/zabbixai-chat/internal/model"
)

// =============================================================================
// EXCHANGE MESSAGES
// =============================================================================

// ReplyMsg carries the settlement of the one outstanding exchange back into
// the Update loop.
type ReplyMsg struct {
	Result conversation.Result
}

// sendCmd performs the gateway call for ex off the Update loop.
func sendCmd(ctx context.Context, ex *conversation.Exchange) tea.Cmd {
	return func() tea.Msg {
		return ReplyMsg{Result: ex.Do(ctx)}
	}
}

// =============================================================================
// ATTACHMENT MESSAGES
// =============================================================================

// AttachedMsg reports the outcome of inspecting the paths typed into the
// attach prompt.
type AttachedMsg struct {
	Files []model.UploadedFile
	Err   error
}
