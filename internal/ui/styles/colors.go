// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the zabbixai TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Primary - Brand red, user bubbles, the "Z" mark
var Primary = lipgloss.AdaptiveColor{Light: "#C2181B", Dark: "#F05454"}

// PrimaryDeep - Darker brand red for backgrounds and borders
var PrimaryDeep = lipgloss.AdaptiveColor{Light: "#8F1114", Dark: "#7A1F22"}

// PrimaryLight - Lighter brand tone for focus rings and selections
var PrimaryLight = lipgloss.AdaptiveColor{Light: "#E35D5F", Dark: "#FF8A8A"}

// Cyan - Info toasts, links, keyboard hints
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Success states, liked reactions
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors, disliked reactions
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings and filled stars
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1A1B26"}

// SurfaceDim - Sidebar, status bar, toasts
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#16161E"}

// SurfaceBright - Cards and the feedback modal
var SurfaceBright = lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#24283B"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#3B4261"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#C0CAF5"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A9B1D6"}

// TextMuted - Hints, timestamps
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#565F89"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#16161E"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

var (
	UserBubbleFg     = TextInverse
	UserBubbleBg     = Primary
	UserBubbleBorder = PrimaryDeep

	BotBubbleFg     = TextPrimary
	BotBubbleBg     = SurfaceBright
	BotBubbleBorder = Overlay
)

// =============================================================================
// ACCESSIBILITY: Status indicators
// Shapes carry the meaning so color is never the only cue.
// =============================================================================

// StatusIndicators holds the symbols prefixed to status text.
var StatusIndicators = struct {
	Success string
	Error   string
	Warning string
	Info    string
}{
	Success: "✓",
	Error:   "✗",
	Warning: "⚠",
	Info:    "ℹ",
}

// Reaction and rating glyphs.
const (
	GlyphLike     = "▲"
	GlyphDislike  = "▼"
	GlyphFeedback = "✎"
	GlyphStarOn   = "★"
	GlyphStarOff  = "☆"
	GlyphBot      = "◆"
	GlyphUser     = "●"
)

// High contrast variants used by the Render* helpers.
var (
	SuccessHighContrast = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#22C55E"}
	ErrorHighContrast   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
	WarningHighContrast = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}
	InfoHighContrast    = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#3B82F6"}
)

// =============================================================================
// RENDER HELPERS
// =============================================================================

// RenderSuccess renders a success message with checkmark indicator.
func RenderSuccess(message string) string {
	return lipgloss.NewStyle().Foreground(SuccessHighContrast).Bold(true).
		Render(StatusIndicators.Success + " " + message)
}

// RenderError renders an error message with X mark indicator.
func RenderError(message string) string {
	return lipgloss.NewStyle().Foreground(ErrorHighContrast).Bold(true).
		Render(StatusIndicators.Error + " " + message)
}

// RenderWarning renders a warning message with warning triangle.
func RenderWarning(message string) string {
	return lipgloss.NewStyle().Foreground(WarningHighContrast).Bold(true).
		Render(StatusIndicators.Warning + " " + message)
}

// RenderInfo renders an info message with info circle.
func RenderInfo(message string) string {
	return lipgloss.NewStyle().Foreground(InfoHighContrast).Bold(true).
		Render(StatusIndicators.Info + " " + message)
}
