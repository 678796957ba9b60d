// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/zabbixai-chat/internal/ui/chat"
	"github.com/jeranaias/zabbixai-chat/internal/ui/components"
	"github.com/jeranaias/zabbixai-chat/internal/ui/styles"
)

// runTUI starts the full-screen chat.
func (a *App) runTUI(cmd *cobra.Command) error {
	if !IsTTY() || !IsStdoutTTY() {
		return &UsageError{Msg: "the chat UI needs a terminal; use `zabbixai ask` or `zabbixai chat` when piping"}
	}

	ctx := cmd.Context()
	log := a.openLogger(false)

	toasts := components.NewToastManager()
	store, err := a.newStore(toasts, a.cfg.UI.Greeting)
	if err != nil {
		return err
	}

	theme := styles.NewTheme(styles.ParseMode(a.cfg.UI.Theme))
	model := chat.New(store, toasts, theme, chat.Options{
		Context:  ctx,
		Sidebar:  a.cfg.UI.Sidebar,
		Markdown: a.cfg.UI.Markdown,
		Logger:   log,
	})

	log.Info("tui started",
		zap.String("version", Version),
		zap.String("backend", a.cfg.Gateway.Backend),
		zap.String("endpoint", a.cfg.Gateway.Endpoint),
	)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	log.Info("tui stopped", zap.Int("messages", store.Len()))
	return nil
}
