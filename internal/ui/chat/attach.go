// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zabbixai-chat/internal/conversation"
	"github.com/jeranaias/zabbixai-chat/internal/model"
	"github.com/jeranaias/zabbixai-chat/internal/ui/components"
	"github.com/jeranaias/zabbixai-chat/internal/uploads"
)

// splitPaths splits the attach prompt on commas, dropping blanks and the
// quotes terminals add when a file is dragged in.
func splitPaths(raw string) []string {
	var paths []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.Trim(strings.TrimSpace(p), `"'`)
		if p != "" {
			paths = append(paths, expandHome(p))
		}
	}
	return paths
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// inspectCmd stats and sniffs every path off the Update loop. The first
// failure aborts the batch.
func inspectCmd(paths []string) tea.Cmd {
	return func() tea.Msg {
		files := make([]model.UploadedFile, 0, len(paths))
		for _, p := range paths {
			f, err := uploads.Inspect(p)
			if err != nil {
				return AttachedMsg{Err: err}
			}
			files = append(files, f)
		}
		return AttachedMsg{Files: files}
	}
}

// uploadErrorText turns an attach failure into toast text.
func uploadErrorText(err error) string {
	switch {
	case errors.Is(err, conversation.ErrTooManyFiles):
		return fmt.Sprintf("You can attach at most %d files.", uploads.MaxFiles)
	case errors.Is(err, conversation.ErrUnsupportedFile), errors.Is(err, uploads.ErrUnsupportedFile):
		return "Only PDF, Word and Excel files are supported."
	case errors.Is(err, os.ErrNotExist):
		return "File not found."
	default:
		return err.Error()
	}
}

func (m Model) openAttach() (tea.Model, tea.Cmd) {
	m.focus = FocusAttach
	m.input.Blur()
	m.attach.Reset()
	return m, m.attach.Focus()
}

func (m Model) closeAttach() (tea.Model, tea.Cmd) {
	m.attach.Blur()
	m.attach.Reset()
	return m.focusInput()
}

func (m Model) handleAttachKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.closeAttach()
	case key.Matches(msg, m.keys.Submit):
		paths := splitPaths(m.attach.Value())
		next, cmd := m.closeAttach()
		if len(paths) == 0 {
			return next, cmd
		}
		return next, tea.Batch(cmd, inspectCmd(paths))
	}

	var cmd tea.Cmd
	m.attach, cmd = m.attach.Update(msg)
	return m, cmd
}

func (m Model) handleAttached(msg AttachedMsg) (tea.Model, tea.Cmd) {
	err := msg.Err
	if err == nil {
		err = m.store.AttachFiles(msg.Files...)
	}
	if err != nil {
		m.toasts.Add(components.NewToast(components.ToastKindWarning, "Upload failed", uploadErrorText(err)))
		return m, components.ToastTickCmd()
	}

	noun := "file"
	if len(msg.Files) != 1 {
		noun = "files"
	}
	m.toasts.Add(components.NewToast(components.ToastKindSuccess, "Upload complete",
		fmt.Sprintf("%d %s attached.", len(msg.Files), noun)))
	m.refresh()
	return m, components.ToastTickCmd()
}
