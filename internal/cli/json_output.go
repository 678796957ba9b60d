// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output for scripting.
//
// Every command with a --json flag prints one JSONResponse envelope so
// scripts can rely on a single shape.

package cli

import (
	"encoding/json"
	"io"
	"time"
)

// JSONResponse is the standardized response format for all CLI commands.
type JSONResponse struct {
	Success   bool    `json:"success"`
	Data      any     `json:"data"`
	Error     *string `json:"error"`
	Timestamp string  `json:"timestamp"`
	Command   string  `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data any) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Write outputs the JSON response, indented.
func (r *JSONResponse) Write(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// AskData is the payload of `ask --json`.
type AskData struct {
	Response   string `json:"response"`
	MessageID  string `json:"message_id"`
	Backend    string `json:"backend"`
	DurationMs int64  `json:"duration_ms"`
}

// FeedbackListData is the payload of `feedback list --json`.
type FeedbackListData struct {
	Records []FeedbackItem `json:"records"`
	Count   int            `json:"count"`
	Path    string         `json:"db_path"`
}

// FeedbackItem is one stored feedback record.
type FeedbackItem struct {
	MessageID   string `json:"message_id"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment,omitempty"`
	SubmittedAt string `json:"submitted_at"`
}

// FeedbackSummaryData is the payload of `feedback summary --json`.
type FeedbackSummaryData struct {
	Count    int         `json:"count"`
	Average  float64     `json:"average"`
	ByRating map[int]int `json:"by_rating"`
}

// VersionData is the payload of `version --json`.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}
