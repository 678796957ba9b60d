// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// Rating bounds for the feedback modal.
const (
	MinRating = 1
	MaxRating = 5
)

// FeedbackRecord is a star rating and optional comment tied to one message.
type FeedbackRecord struct {
	TargetMessageID string    `json:"target_message_id"`
	Rating          int       `json:"rating"`
	Comment         string    `json:"comment,omitempty"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

// ValidRating reports whether r is an acceptable star rating.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// UploadedFile describes a document attached through the sidebar.
// Only metadata is kept; the file content is never read into the conversation.
type UploadedFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}
