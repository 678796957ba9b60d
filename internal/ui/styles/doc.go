// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the zabbixai TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. The ui.theme setting can pin the mode:

	theme := styles.NewTheme(styles.ParseMode(cfg.UI.Theme))
	theme.SetSize(width, height)
	bubble := theme.BotBubble.Render(text)

# Layout

GetLayoutMode classifies the width as narrow (< 60), medium (60-100) or wide.
The sidebar is hidden in narrow layouts.

# Accessibility

Status text always carries a shape (StatusIndicators) in addition to color,
and reactions use distinct glyphs for like and dislike.
*/
package styles
