// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a chat transcript to a file.
//
// Two formats are supported:
//
//   - Markdown: readable transcript with reactions marked per reply
//   - JSON: structured transcript for scripts
//
// Export is on demand only. Nothing is read back, so a transcript never
// seeds a later session.
//
// Usage:
//
//	path, err := export.ExportToFile(store.Messages(), export.NewMarkdownExporter(nil), nil)
package export
