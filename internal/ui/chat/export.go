// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/zabbixai-chat/internal/conversation"
	"github.com/jeranaias/zabbixai-chat/internal/export"
	"github.com/jeranaias/zabbixai-chat/internal/model"
	"github.com/jeranaias/zabbixai-chat/internal/ui/components"
)

// =============================================================================
// EXPORT HANDLERS
// =============================================================================

// ExportedMsg reports where a transcript was saved.
type ExportedMsg struct {
	Path string
	Err  error
}

// exportCmd writes msgs as Markdown off the Update loop.
func exportCmd(msgs []model.Message, dir string) tea.Cmd {
	return func() tea.Msg {
		opts := export.DefaultOptions()
		opts.OutputDir = dir
		path, err := export.ExportToFile(msgs, export.NewMarkdownExporter(opts), opts)
		return ExportedMsg{Path: path, Err: err}
	}
}

func (m Model) handleExported(msg ExportedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn("export failed", zap.Error(msg.Err))
		m.toasts.Notify(conversation.Notification{
			Kind:  conversation.NotifyError,
			Title: "Export failed",
			Body:  msg.Err.Error(),
		})
	} else {
		m.logger.Info("transcript exported", zap.String("path", msg.Path))
		m.toasts.Notify(conversation.Notification{
			Kind:  conversation.NotifySuccess,
			Title: "Transcript saved",
			Body:  msg.Path,
		})
	}
	return m, components.ToastTickCmd()
}
