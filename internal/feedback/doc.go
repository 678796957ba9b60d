// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feedback stores and reports star ratings submitted from the
// feedback modal.
//
// SQLiteStore keeps records in a local database (pure Go driver, no cgo).
// LogReporter writes them to the structured log. Tee fans a record out to
// several reporters.
package feedback
