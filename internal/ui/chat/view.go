// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jeranaias/zabbixai-chat/internal/ui/components"
	"github.com/jeranaias/zabbixai-chat/internal/ui/styles"
)

const headerHeight = 2

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderTyping(),
		m.renderInput(),
		m.renderStatus(),
	)

	base := main
	if sw := m.sidebarWidth(); sw > 0 {
		base = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), main)
	}

	if m.store.Snapshot().FeedbackModalOpen {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.renderFeedbackModal(),
			lipgloss.WithWhitespaceChars("·"),
			lipgloss.WithWhitespaceForeground(styles.Overlay),
		)
	}

	if toasts := m.toasts.Toasts(); len(toasts) > 0 {
		return overlayBottomRight(base, components.RenderToastStack(toasts, 0, 0), m.width, m.height)
	}
	return base
}

func (m Model) renderHeader() string {
	m.header.SetWidth(m.mainWidth())
	m.header.SetTyping(m.store.Pending())
	return m.header.View()
}

// renderTyping is the "bot is typing" line shown while a reply is pending.
func (m Model) renderTyping() string {
	if !m.store.Pending() {
		return ""
	}
	elapsed := time.Since(m.pendingSince).Truncate(time.Second)
	text := "ZabbixAI is typing"
	if elapsed >= time.Second {
		text += " (" + elapsed.String() + ")"
	}
	return " " + m.spinner.View() + " " + m.theme.ThinkingText.Render(text)
}

func (m Model) renderInput() string {
	t := m.theme
	w := m.mainWidth()

	if m.focus == FocusAttach {
		return t.InputContainer.Width(w - 2).Render(m.attach.View())
	}

	box := t.InputContainer
	if m.store.Pending() || m.focus != FocusInput {
		box = t.InputDisabled
	}
	return box.Width(w - 2).Render(m.input.View())
}

func (m Model) renderStatus() string {
	var bindings []key.Binding
	switch m.focus {
	case FocusMessages:
		bindings = m.keys.MessagesHelp()
	case FocusSidebar:
		bindings = m.keys.SidebarHelp()
	case FocusAttach:
		bindings = []key.Binding{m.keys.Submit, m.keys.Cancel}
	default:
		bindings = m.keys.InputHelp()
	}
	return m.theme.StatusBar.Width(m.mainWidth()).Render(renderHelp(m.theme, bindings))
}

// renderHelp renders bindings as "key desc · key desc".
func renderHelp(t *styles.Theme, bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, t.ShortcutKey.Render(h.Key)+" "+t.ShortcutDesc.Render(h.Desc))
	}
	return strings.Join(parts, t.ShortcutDesc.Render(" · "))
}

// overlayBottomRight draws top over the bottom-right corner of base, one
// line above the status bar.
func overlayBottomRight(base, top string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	topLines := strings.Split(top, "\n")

	topWidth := lipgloss.Width(top)
	col := width - topWidth
	if col < 0 {
		col = 0
	}
	startRow := len(baseLines) - len(topLines) - 1
	if startRow < 0 {
		startRow = 0
	}

	for i, tl := range topLines {
		row := startRow + i
		if row >= len(baseLines) {
			break
		}
		left := ansi.Truncate(baseLines[row], col, "")
		if pad := col - lipgloss.Width(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		baseLines[row] = left + tl
	}
	return strings.Join(baseLines, "\n")
}
