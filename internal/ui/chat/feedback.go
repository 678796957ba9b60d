// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/zabbixai-chat/internal/conversation"
	"github.com/jeranaias/zabbixai-chat/internal/model"
	"github.com/jeranaias/zabbixai-chat/internal/ui/components"
	"github.com/jeranaias/zabbixai-chat/internal/ui/styles"
)

// =============================================================================
// FEEDBACK FORM
// =============================================================================

// feedbackForm is the widget state of the rating modal. Whether the modal is
// open, and for which message, is owned by the Store.
type feedbackForm struct {
	stars     components.StarRating
	comment   textinput.Model
	onComment bool
}

func newFeedbackForm() feedbackForm {
	ti := textinput.New()
	ti.Placeholder = "Tell me how I can improve..."
	ti.Prompt = ""
	ti.CharLimit = 1000
	return feedbackForm{comment: ti}
}

// reset clears the form for the next time the modal opens.
func (f *feedbackForm) reset() {
	f.stars.Reset()
	f.comment.Reset()
	f.comment.Blur()
	f.onComment = false
}

// canSubmit mirrors the disabled submit button: nothing is sent at 0 stars.
func (f feedbackForm) canSubmit() bool {
	return f.stars.Value() > 0
}

// =============================================================================
// FEEDBACK KEYS
// =============================================================================

func (m Model) openFeedback() (tea.Model, tea.Cmd) {
	if m.selectedID == "" {
		return m, nil
	}
	if err := m.store.OpenFeedback(m.selectedID); err != nil {
		m.logger.Debug("cannot open feedback", zap.String("id", m.selectedID), zap.Error(err))
		return m, nil
	}
	m.feedback.reset()
	return m, nil
}

func (m Model) closeFeedback() (tea.Model, tea.Cmd) {
	m.store.CloseFeedback()
	m.feedback.reset()
	return m, nil
}

func (m Model) handleFeedbackKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.closeFeedback()

	case key.Matches(msg, m.keys.SwitchField):
		m.feedback.onComment = !m.feedback.onComment
		if m.feedback.onComment {
			return m, m.feedback.comment.Focus()
		}
		m.feedback.comment.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submitFeedback()
	}

	if m.feedback.onComment {
		var cmd tea.Cmd
		m.feedback.comment, cmd = m.feedback.comment.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.StarLess):
		m.feedback.stars.Dec()
	case key.Matches(msg, m.keys.StarMore):
		m.feedback.stars.Inc()
	default:
		if n, err := strconv.Atoi(msg.String()); err == nil && model.ValidRating(n) {
			m.feedback.stars.Set(n)
		}
	}
	return m, nil
}

func (m Model) submitFeedback() (tea.Model, tea.Cmd) {
	if !m.feedback.canSubmit() {
		return m, nil
	}
	_, err := m.store.SubmitFeedback(m.ctx, m.feedback.stars.Value(), m.feedback.comment.Value())
	switch {
	case err == nil:
	case errors.Is(err, conversation.ErrInvalidRating), errors.Is(err, conversation.ErrNoFeedbackTarget):
		return m, nil
	default:
		m.toasts.Add(components.NewToast(components.ToastKindError, "Feedback not saved", err.Error()))
	}
	m.feedback.reset()
	return m, components.ToastTickCmd()
}

// =============================================================================
// FEEDBACK VIEW
// =============================================================================

func (m Model) renderFeedbackModal() string {
	t := m.theme
	f := m.feedback

	width := 48
	if m.width > 0 && m.width-4 < width {
		width = m.width - 4
	}
	inner := width - t.Modal.GetHorizontalFrameSize()

	title := t.ModalTitle.Render(styles.GlyphFeedback + " Share Your Feedback")

	starsLabel := t.ModalLabel.Render("How was my response?")
	stars := lipgloss.PlaceHorizontal(inner, lipgloss.Center, f.stars.View(t))

	commentLabel := t.ModalLabel.Render("Additional comments (optional)")
	m.feedback.comment.Width = inner - 4
	commentBox := t.InputContainer
	if !f.onComment {
		commentBox = t.InputDisabled
	}
	comment := commentBox.Width(inner - 2).Render(m.feedback.comment.View())

	cancel := t.Button.Render("Cancel")
	submit := t.ButtonDisabled.Render("Submit Feedback")
	if f.canSubmit() {
		submit = t.ButtonPrimary.Render("Submit Feedback")
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, cancel, " ", submit)

	body := lipgloss.JoinVertical(lipgloss.Left,
		title, "",
		starsLabel, stars, "",
		commentLabel, comment, "",
		lipgloss.PlaceHorizontal(inner, lipgloss.Right, buttons),
		renderHelp(t, m.keys.FeedbackHelp()),
	)
	return t.Modal.Width(width - t.Modal.GetHorizontalBorderSize()).Render(body)
}
