// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/zabbixai-chat/internal/conversation"
	"github.com/jeranaias/zabbixai-chat/internal/model"
	"github.com/jeranaias/zabbixai-chat/internal/ui/components"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case AttachedMsg:
		return m.handleAttached(msg)

	case ExportedMsg:
		return m.handleExported(msg)

	case components.ToastTickMsg:
		if len(m.toasts.Tick()) > 0 {
			return m, components.ToastTickCmd()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.store.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and anything else the focused widget wants.
	var cmd tea.Cmd
	switch m.focus {
	case FocusAttach:
		m.attach, cmd = m.attach.Update(msg)
	case FocusInput:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	if !m.ready {
		m.viewport = viewport.New(0, 0)
		m.ready = true
	}
	m.layout()
	m.refresh()
	m.viewport.GotoBottom()
	return m, nil
}

// sidebarWidth is zero when the sidebar is disabled or the terminal is narrow.
func (m Model) sidebarWidth() int {
	if !m.showSidebar {
		return 0
	}
	return m.theme.SidebarWidth()
}

func (m Model) mainWidth() int {
	w := m.width - m.sidebarWidth()
	if w < 20 {
		w = 20
	}
	return w
}

// layout sizes the widgets: header (2 lines), viewport, typing line (1),
// input box (height + 2 border), status bar (1).
func (m *Model) layout() {
	w := m.mainWidth()
	m.input.SetWidth(w - 4)
	m.attach.Width = w - 14

	vh := m.height - headerHeight - 1 - (m.input.Height() + 2) - 1
	if vh < 3 {
		vh = 3
	}
	m.viewport.Width = w
	m.viewport.Height = vh

	m.list.Width = w - 2
	m.sidebar.SetSize(m.sidebarWidth(), m.height)
}

// refresh re-renders the conversation into the viewport and the sidebar.
func (m *Model) refresh() {
	snap := m.store.Snapshot()

	m.sidebar.SetFiles(snap.Files)
	m.sidebar.SetStats(components.StatsFor(snap.Messages))

	if !m.ready {
		return
	}
	m.list.SelectedID = ""
	if m.focus == FocusMessages || snap.FeedbackModalOpen {
		m.list.SelectedID = m.selectedID
	}
	content, selectedLine := m.list.Render(snap.Messages)
	m.viewport.SetContent(content)

	// Keep the selected reply in view.
	if selectedLine >= 0 {
		if selectedLine < m.viewport.YOffset || selectedLine >= m.viewport.YOffset+m.viewport.Height {
			m.viewport.SetYOffset(selectedLine)
		}
	}
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.store.Snapshot().FeedbackModalOpen {
		next, cmd := m.handleFeedbackKey(msg)
		if nm, ok := next.(Model); ok {
			nm.refresh()
			return nm, cmd
		}
		return next, cmd
	}

	switch {
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	switch m.focus {
	case FocusAttach:
		return m.handleAttachKey(msg)
	case FocusMessages:
		return m.handleMessagesKey(msg)
	case FocusSidebar:
		return m.handleSidebarKey(msg)
	default:
		return m.handleInputKey(msg)
	}
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Dismiss):
		m.toasts.DismissNewest()
		return m, nil

	case key.Matches(msg, m.keys.Messages):
		m.moveSelection(0)
		if m.selectedID == "" {
			return m, nil
		}
		m.focus = FocusMessages
		m.input.Blur()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Attach):
		return m.openAttach()

	case key.Matches(msg, m.keys.Export):
		return m, exportCmd(m.store.Messages(), m.exportDir)

	case key.Matches(msg, m.keys.Files):
		if !m.sidebar.Focus() {
			return m, nil
		}
		m.focus = FocusSidebar
		m.input.Blur()
		return m, nil
	}

	// The input is disabled while a reply is pending.
	if m.store.Pending() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleMessagesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Like):
		return m.react(model.KindLike)
	case key.Matches(msg, m.keys.Dislike):
		return m.react(model.KindDislike)
	case key.Matches(msg, m.keys.Feedback):
		next, cmd := m.openFeedback()
		nm := next.(Model)
		nm.refresh()
		return nm, cmd
	case key.Matches(msg, m.keys.Back):
		return m.focusInput()
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.sidebar.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.sidebar.MoveDown()
	case key.Matches(msg, m.keys.Remove):
		if i := m.sidebar.Selected(); i >= 0 && m.store.RemoveFile(i) {
			m.refresh()
			if len(m.store.Files()) == 0 {
				return m.focusInput()
			}
		}
	case key.Matches(msg, m.keys.Back):
		return m.focusInput()
	}
	return m, nil
}

func (m Model) focusInput() (tea.Model, tea.Cmd) {
	m.focus = FocusInput
	m.sidebar.Blur()
	m.refresh()
	return m, m.input.Focus()
}

func (m Model) react(kind model.ReactionKind) (tea.Model, tea.Cmd) {
	if _, err := m.store.SetReaction(m.selectedID, kind); err != nil {
		m.logger.Debug("reaction ignored", zap.String("id", m.selectedID), zap.Error(err))
		return m, nil
	}
	m.refresh()
	return m, components.ToastTickCmd()
}

// =============================================================================
// EXCHANGE
// =============================================================================

// submit hands the input to the store. Empty input and submits while a reply
// is pending are dropped without a trace, the input keeps its text.
func (m Model) submit() (tea.Model, tea.Cmd) {
	ex, err := m.store.Submit(strings.TrimSpace(m.input.Value()))
	if err != nil {
		if !errors.Is(err, conversation.ErrEmptyInput) && !errors.Is(err, conversation.ErrPending) {
			m.logger.Warn("submit failed", zap.Error(err))
		}
		return m, nil
	}

	m.input.Reset()
	m.pendingSince = time.Now()
	m.refresh()
	m.viewport.GotoBottom()
	return m, tea.Batch(sendCmd(m.ctx, ex), m.spinner.Tick)
}

func (m Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	if _, err := m.store.Settle(msg.Result); err != nil {
		m.logger.Warn("reply arrived with nothing pending", zap.Error(err))
		return m, nil
	}
	m.refresh()
	m.viewport.GotoBottom()
	return m, components.ToastTickCmd()
}
