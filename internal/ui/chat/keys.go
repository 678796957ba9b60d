// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat view. Bindings are
// grouped by the area that has focus.
type KeyMap struct {
	// Global
	Quit     key.Binding
	Dismiss  key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Input
	Submit   key.Binding
	Newline  key.Binding
	Messages key.Binding
	Attach   key.Binding
	Files    key.Binding
	Export   key.Binding

	// Messages
	Up       key.Binding
	Down     key.Binding
	Like     key.Binding
	Dislike  key.Binding
	Feedback key.Binding
	Back     key.Binding

	// Sidebar
	Remove key.Binding

	// Feedback modal
	StarLess    key.Binding
	StarMore    key.Binding
	SwitchField key.Binding
	Cancel      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "dismiss alert"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("Alt+Enter", "new line"),
		),
		Messages: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "rate replies"),
		),
		Attach: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "attach"),
		),
		Files: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("C-f", "files"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "save transcript"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		Like: key.NewBinding(
			key.WithKeys("+", "l"),
			key.WithHelp("+", "like"),
		),
		Dislike: key.NewBinding(
			key.WithKeys("-", "d"),
			key.WithHelp("-", "dislike"),
		),
		Feedback: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "feedback"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "tab", "i"),
			key.WithHelp("Esc", "back to input"),
		),
		Remove: key.NewBinding(
			key.WithKeys("delete", "backspace", "x"),
			key.WithHelp("Del", "remove file"),
		),
		StarLess: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "fewer stars"),
		),
		StarMore: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "more stars"),
		),
		SwitchField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("Tab", "switch field"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),
	}
}

// InputHelp returns the bindings shown while typing.
func (k KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Newline, k.Messages, k.Attach, k.Files, k.Export, k.Quit}
}

// MessagesHelp returns the bindings shown while a reply is selected.
func (k KeyMap) MessagesHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Like, k.Dislike, k.Feedback, k.Back}
}

// SidebarHelp returns the bindings shown while the file list has focus.
func (k KeyMap) SidebarHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Remove, k.Back}
}

// FeedbackHelp returns the bindings shown in the feedback modal.
func (k KeyMap) FeedbackHelp() []key.Binding {
	return []key.Binding{k.StarLess, k.StarMore, k.SwitchField, k.Submit, k.Cancel}
}
