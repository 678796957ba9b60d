// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the Bubble Tea chat view.

The view is a thin shell over conversation.Store: every key that changes the
conversation calls a Store operation, and the screen is re-rendered from a
Store snapshot. The gateway call runs as a tea.Cmd:

	Enter -> Store.Submit -> sendCmd (Exchange.Do) -> ReplyMsg -> Store.Settle

While the reply is pending the input is disabled and a typing indicator
shows under the conversation.

# Focus

	input     type and send (Enter), Alt+Enter for a new line
	messages  Tab selects the latest reply; +/- like or dislike, f rates it
	files     Ctrl+F selects an attached document; Del removes it
	attach    Ctrl+O prompts for comma-separated file paths

The feedback modal takes all keys while open: 1-5 or ←/→ pick stars, Tab
moves to the comment, Enter submits once at least one star is chosen.

# Usage

	toasts := components.NewToastManager()
	store := conversation.New(gw,
		conversation.WithGreeting(),
		conversation.WithNotifier(toasts),
	)
	m := chat.New(store, toasts, styles.NewTheme(styles.ModeAuto), chat.Options{Sidebar: true})
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
*/
package chat
