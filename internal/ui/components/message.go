// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zabbixai-chat/internal/model"
	"github.com/jeranaias/zabbixai-chat/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one message. Bot messages sit on the left and carry
// the reaction bar; user messages are right-aligned.
type MessageBubble struct {
	Message  model.Message
	Width    int
	Selected bool
	Markdown *MarkdownRenderer
	theme    *styles.Theme
}

// NewMessageBubble creates a bubble for msg.
func NewMessageBubble(msg model.Message, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Message: msg,
		Width:   80,
		theme:   theme,
	}
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	if b.Message.Author.IsBot() {
		return b.renderBotBubble()
	}
	return b.renderUserBubble()
}

// maxBubbleWidth is 80% of the row, like the browser layout.
func (b *MessageBubble) maxBubbleWidth() int {
	w := b.Width * 4 / 5
	if w < 20 {
		w = 20
	}
	return w
}

func (b *MessageBubble) renderUserBubble() string {
	t := b.theme
	content := b.Message.Text
	if content == "" {
		content = "..."
	}

	maxWidth := b.maxBubbleWidth()
	style := t.UserBubble
	// Shrink-wrap short messages.
	if w := lipgloss.Width(content) + style.GetHorizontalFrameSize(); w < maxWidth {
		maxWidth = w
	}
	bubble := style.Width(maxWidth - style.GetHorizontalBorderSize()).Render(content)

	header := t.Timestamp.Render(b.Message.Clock()) + " " +
		t.Avatar.Render(model.AuthorUser.DisplayName()+" "+styles.GlyphUser)

	block := lipgloss.JoinVertical(lipgloss.Right, header, bubble)
	return lipgloss.PlaceHorizontal(b.Width, lipgloss.Right, block)
}

func (b *MessageBubble) renderBotBubble() string {
	t := b.theme
	maxWidth := b.maxBubbleWidth()
	style := t.BotBubble
	if b.Selected {
		style = style.BorderForeground(styles.PrimaryLight)
	}
	inner := maxWidth - style.GetHorizontalFrameSize()

	content := b.Message.Text
	if b.Markdown != nil {
		content = b.Markdown.Render(content, inner)
	}
	bubble := style.MaxWidth(maxWidth).Render(
		lipgloss.NewStyle().Width(inner).Render(content),
	)

	header := t.Avatar.Render(styles.GlyphBot+" "+model.AuthorBot.DisplayName()) +
		t.Timestamp.Render(b.Message.Clock())

	parts := []string{header, bubble}
	if b.Selected {
		parts = append(parts, b.renderActions())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderActions renders the like / dislike / feedback bar with the current
// reaction highlighted.
func (b *MessageBubble) renderActions() string {
	t := b.theme
	like, dislike := t.ActionIdle, t.ActionIdle
	switch b.Message.Reaction {
	case model.ReactionLiked:
		like = t.ActionLiked
	case model.ReactionDisliked:
		dislike = t.ActionDislike
	}
	return strings.Join([]string{
		"",
		like.Render(styles.GlyphLike + " like [+]"),
		dislike.Render(styles.GlyphDislike + " dislike [-]"),
		t.ActionIdle.Render(styles.GlyphFeedback + " feedback [f]"),
	}, "  ")
}

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders the whole conversation for the viewport.
type MessageList struct {
	Width      int
	SelectedID string
	Markdown   *MarkdownRenderer
	theme      *styles.Theme
}

// NewMessageList creates a new MessageList.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{Width: 80, theme: theme}
}

// Render renders msgs top to bottom and returns the line the selected message
// starts on, or -1 when nothing is selected.
func (ml *MessageList) Render(msgs []model.Message) (string, int) {
	if len(msgs) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Width(ml.Width).
			Align(lipgloss.Center).
			Padding(2, 0).
			Render("No messages yet. Ask about Zabbix!")
		return empty, -1
	}

	selectedLine := -1
	line := 0
	blocks := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		bubble := NewMessageBubble(msg, ml.theme)
		bubble.Width = ml.Width
		bubble.Markdown = ml.Markdown
		bubble.Selected = msg.ID == ml.SelectedID
		if bubble.Selected {
			selectedLine = line
		}

		view := bubble.View()
		blocks = append(blocks, view)
		line += lipgloss.Height(view) + 1
	}
	return strings.Join(blocks, "\n\n"), selectedLine
}
