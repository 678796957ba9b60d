// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by the UI and the config layer:
// terminal-width string truncation (go-runewidth) and crash-safe file writes.
//
//	name := util.TruncateMiddle(file.Name, 20)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
