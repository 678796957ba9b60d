// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// UNICODE: width-aware helpers. File names and message previews land in
// fixed-width sidebar columns, so truncation counts terminal cells, not bytes.

const ellipsis = "…"

// TruncateWidth truncates s to at most maxWidth terminal cells, ending in an
// ellipsis when anything was cut. Double-width characters count as 2.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, ellipsis)
}

// TruncateMiddle keeps the start and the end of s, which preserves a file
// name's extension: "quarterly-rep….xlsx".
func TruncateMiddle(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth < 5 {
		return TruncateWidth(s, maxWidth)
	}

	tailWidth := (maxWidth - 1) / 3
	headWidth := maxWidth - 1 - tailWidth

	runes := []rune(s)
	tail := ""
	w := 0
	for i := len(runes) - 1; i >= 0; i-- {
		rw := runewidth.RuneWidth(runes[i])
		if w+rw > tailWidth {
			break
		}
		w += rw
		tail = string(runes[i]) + tail
	}
	head := runewidth.Truncate(s, headWidth, "")
	return head + ellipsis + tail
}

// StringWidth returns the display width of a string.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadRight pads s with spaces to width cells. Wider strings are returned as is.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// FirstLine returns the first non-empty line of s, trimmed.
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}
