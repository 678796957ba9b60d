// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat messages and feedback.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// AUTHOR TYPE
// =============================================================================

// Author identifies who wrote a message.
type Author string

const (
	AuthorUser Author = "user"
	AuthorBot  Author = "bot"
)

// String returns the string representation of the author.
func (a Author) String() string {
	return string(a)
}

// DisplayName returns a human-readable name for the author.
func (a Author) DisplayName() string {
	switch a {
	case AuthorUser:
		return "You"
	case AuthorBot:
		return "ZabbixAI"
	default:
		return string(a)
	}
}

// IsBot reports whether the message was produced by the response gateway.
func (a Author) IsBot() bool {
	return a == AuthorBot
}

// =============================================================================
// REACTION TYPE
// =============================================================================

// Reaction is the like/dislike state of a message. Liked and disliked are
// mutually exclusive by construction.
type Reaction int

const (
	ReactionNone Reaction = iota
	ReactionLiked
	ReactionDisliked
)

// ReactionKind names the button the user pressed.
type ReactionKind int

const (
	KindLike ReactionKind = iota
	KindDislike
)

// String returns the reaction name.
func (r Reaction) String() string {
	switch r {
	case ReactionLiked:
		return "liked"
	case ReactionDisliked:
		return "disliked"
	default:
		return "none"
	}
}

// String returns the kind name.
func (k ReactionKind) String() string {
	if k == KindDislike {
		return "dislike"
	}
	return "like"
}

// Toggle applies a like or dislike press. Pressing the active kind clears it;
// pressing the other kind replaces it.
func (r Reaction) Toggle(kind ReactionKind) Reaction {
	target := ReactionLiked
	if kind == KindDislike {
		target = ReactionDisliked
	}
	if r == target {
		return ReactionNone
	}
	return target
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in the conversation.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"created_at"`

	// Content
	Text string `json:"text"`

	// Feedback state (bot messages only in the UI, but tracked for any message)
	Reaction Reaction `json:"reaction"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(author Author, text string) Message {
	return Message{
		ID:        generateID(),
		Author:    author,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// NewUserMessage creates a new user-authored message.
func NewUserMessage(text string) Message {
	return NewMessage(AuthorUser, text)
}

// NewBotMessage creates a new bot-authored message.
func NewBotMessage(text string) Message {
	return NewMessage(AuthorBot, text)
}

// Liked reports whether the message carries a like.
func (m Message) Liked() bool {
	return m.Reaction == ReactionLiked
}

// Disliked reports whether the message carries a dislike.
func (m Message) Disliked() bool {
	return m.Reaction == ReactionDisliked
}

// Preview returns a truncated preview of the message text.
// Uses rune-based truncation to handle Unicode correctly.
func (m Message) Preview(maxLen int) string {
	runes := []rune(m.Text)
	if len(runes) <= maxLen {
		return m.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// Clock returns the creation time formatted as HH:MM.
func (m Message) Clock() string {
	return m.CreatedAt.Format("15:04")
}

// generateID creates a unique message ID.
func generateID() string {
	return "msg_" + uuid.NewString()
}
