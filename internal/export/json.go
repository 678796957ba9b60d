// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/jeranaias/zabbixai-chat/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports transcripts to indented JSON.
type JSONExporter struct {
	options *Options
}

// Transcript is the JSON document shape.
type Transcript struct {
	Exported time.Time           `json:"exported"`
	Count    int                 `json:"count"`
	Messages []TranscriptMessage `json:"messages"`
}

// TranscriptMessage is one exported message.
type TranscriptMessage struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Reaction  string    `json:"reaction,omitempty"`
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export converts the transcript to JSON.
func (e *JSONExporter) Export(msgs []model.Message) ([]byte, error) {
	if len(msgs) == 0 {
		return nil, ErrEmptyTranscript
	}

	doc := Transcript{
		Exported: e.options.now().UTC(),
		Count:    len(msgs),
		Messages: make([]TranscriptMessage, 0, len(msgs)),
	}
	for _, m := range msgs {
		tm := TranscriptMessage{
			ID:        m.ID,
			Author:    m.Author.String(),
			Text:      m.Text,
			CreatedAt: m.CreatedAt.UTC(),
		}
		if e.options.IncludeReactions && m.Reaction != model.ReactionNone {
			tm.Reaction = m.Reaction.String()
		}
		doc.Messages = append(doc.Messages, tm)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
