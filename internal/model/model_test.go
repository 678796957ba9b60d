// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
	"time"
)

// =============================================================================
// REACTION TESTS
// =============================================================================

func TestReaction_Toggle(t *testing.T) {
	tests := []struct {
		name  string
		start Reaction
		kind  ReactionKind
		want  Reaction
	}{
		{"like from none", ReactionNone, KindLike, ReactionLiked},
		{"like twice clears", ReactionLiked, KindLike, ReactionNone},
		{"dislike replaces like", ReactionLiked, KindDislike, ReactionDisliked},
		{"like replaces dislike", ReactionDisliked, KindLike, ReactionLiked},
		{"dislike twice clears", ReactionDisliked, KindDislike, ReactionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.start.Toggle(tc.kind); got != tc.want {
				t.Errorf("Toggle(%s) from %s = %s, want %s", tc.kind, tc.start, got, tc.want)
			}
		})
	}
}

func TestMessage_LikedDisliked(t *testing.T) {
	msg := NewBotMessage("hi")
	if msg.Liked() || msg.Disliked() {
		t.Fatal("new message should have no reaction")
	}

	msg.Reaction = ReactionLiked
	if !msg.Liked() || msg.Disliked() {
		t.Error("liked message should report Liked only")
	}

	msg.Reaction = ReactionDisliked
	if msg.Liked() || !msg.Disliked() {
		t.Error("disliked message should report Disliked only")
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage(t *testing.T) {
	before := time.Now()
	msg := NewUserMessage("hello")

	if msg.Author != AuthorUser {
		t.Errorf("Author = %q, want user", msg.Author)
	}
	if msg.Text != "hello" {
		t.Errorf("Text = %q, want hello", msg.Text)
	}
	if !strings.HasPrefix(msg.ID, "msg_") {
		t.Errorf("ID should start with msg_, got %q", msg.ID)
	}
	if msg.CreatedAt.Before(before) {
		t.Error("CreatedAt should be set to now")
	}
}

func TestNewMessage_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewBotMessage("x").ID
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestMessage_Preview(t *testing.T) {
	msg := NewUserMessage("Zabbix trigger expressions")
	if got := msg.Preview(100); got != msg.Text {
		t.Errorf("Preview(100) = %q, want full text", got)
	}
	if got := msg.Preview(10); got != "Zabbix ..." {
		t.Errorf("Preview(10) = %q", got)
	}

	uni := NewUserMessage("héllo wörld")
	if got := uni.Preview(8); got != "héllo..." {
		t.Errorf("Preview(8) = %q", got)
	}
}

func TestAuthor_DisplayName(t *testing.T) {
	if AuthorUser.DisplayName() != "You" {
		t.Error("user display name")
	}
	if AuthorBot.DisplayName() != "ZabbixAI" {
		t.Error("bot display name")
	}
	if !AuthorBot.IsBot() || AuthorUser.IsBot() {
		t.Error("IsBot mismatch")
	}
}

func TestValidRating(t *testing.T) {
	for r := -1; r <= 7; r++ {
		want := r >= 1 && r <= 5
		if got := ValidRating(r); got != want {
			t.Errorf("ValidRating(%d) = %v, want %v", r, got, want)
		}
	}
}
