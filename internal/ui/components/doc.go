// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual building blocks of the ZabbixAI TUI.

Components render from plain values and a *styles.Theme. None of them own
conversation state; the chat model reads a conversation.Store snapshot and
hands the relevant pieces down on every refresh.

# Display Components

Header (header.go) - Title bar with the brand mark and an online/typing badge.
MessageBubble (message.go) - One chat message. Bot replies carry the reaction bar when selected.
MessageList (message.go) - The whole conversation, reporting where the selected reply starts.
MarkdownRenderer (markdown.go) - Glamour rendering for bot replies.
Sidebar (sidebar.go) - Brand block, session stats and the attached documents.

# Feedback

StarRating (stars.go) - The 1-5 star picker of the feedback modal.
ToastManager (toast.go) - Auto-dismissing alerts. It implements conversation.Notifier:

	toasts := components.NewToastManager()
	store := conversation.New(gw, conversation.WithNotifier(toasts))

	// In Update:
	case components.ToastTickMsg:
		if len(toasts.Tick()) > 0 {
			return m, components.ToastTickCmd()
		}

	// In View:
	stack := components.RenderToastStack(toasts.Toasts(), width, height)
*/
package components
