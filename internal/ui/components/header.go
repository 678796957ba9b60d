// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zabbixai-chat/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT - Title bar with ZabbixAI branding
// =============================================================================

// Header is the title bar above the conversation.
type Header struct {
	Title    string
	Subtitle string
	Width    int
	Typing   bool // a reply is pending
	theme    *styles.Theme
}

// NewHeader creates a header with the default branding.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title:    "ZabbixAI Bot",
		Subtitle: "Your intelligent monitoring assistant",
		Width:    80,
		theme:    theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetTyping switches the presence badge between online and typing.
func (h *Header) SetTyping(typing bool) {
	h.Typing = typing
}

// View renders the title line and a separator, two lines in total.
func (h *Header) View() string {
	t := h.theme
	width := h.Width
	if width < 20 {
		width = 20
	}

	start, end := styles.Primary.Dark, styles.PrimaryLight.Dark
	if !t.IsDark {
		start, end = styles.Primary.Light, styles.PrimaryDeep.Light
	}

	badge := lipgloss.NewStyle().Foreground(styles.Emerald).Render(styles.GlyphUser + " Online")
	if h.Typing {
		badge = lipgloss.NewStyle().Foreground(styles.Amber).Render(styles.GlyphUser + " Typing")
	}

	parts := []string{
		t.BrandMark.Render("Z"),
		" ",
		t.BrandTitle.Render(GradientTitle(h.Title, lipgloss.Color(start), lipgloss.Color(end))),
	}
	full := append(append([]string{}, parts...), "  ", t.BrandSubtitle.Render(h.Subtitle), "  ", badge)
	title := lipgloss.JoinHorizontal(lipgloss.Center, full...)
	if lipgloss.Width(title) > width {
		// Narrow terminals drop the subtitle first.
		title = lipgloss.JoinHorizontal(lipgloss.Center, append(parts, "  ", badge)...)
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, title) + "\n" + h.separator(width)
}

// separator draws -----< ◆ >----- across width.
func (h *Header) separator(width int) string {
	sideLen := (width - 5) / 2
	if sideLen < 1 {
		sideLen = 1
	}
	line := lipgloss.NewStyle().Foreground(styles.Overlay)
	accent := lipgloss.NewStyle().Foreground(styles.PrimaryDeep)
	side := strings.Repeat("─", sideLen)
	out := line.Render(side) + accent.Render("< "+styles.GlyphBot+" >") + line.Render(side)
	if pad := width - lipgloss.Width(out); pad > 0 {
		out += line.Render(strings.Repeat("─", pad))
	}
	return out
}

// =============================================================================
// GRADIENT TITLE (for terminals with true color support)
// =============================================================================

// GradientTitle renders text with a per-rune color ramp from startColor to
// endColor. Colors must be #RRGGBB.
func GradientTitle(text string, startColor, endColor lipgloss.Color) string {
	chars := []rune(text)
	n := len(chars)
	if n == 0 {
		return ""
	}
	if n < 3 {
		return lipgloss.NewStyle().Foreground(startColor).Render(text)
	}

	var result strings.Builder
	for i, char := range chars {
		color := interpolateColor(startColor, endColor, float64(i)/float64(n-1))
		result.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(char)))
	}
	return result.String()
}

func interpolateColor(start, end lipgloss.Color, t float64) lipgloss.Color {
	sr, sg, sb := parseHexColor(strings.TrimPrefix(string(start), "#"))
	er, eg, eb := parseHexColor(strings.TrimPrefix(string(end), "#"))

	r := uint8(float64(sr) + t*(float64(er)-float64(sr)))
	g := uint8(float64(sg) + t*(float64(eg)-float64(sg)))
	b := uint8(float64(sb) + t*(float64(eb)-float64(sb)))
	return lipgloss.Color(formatHexColor(r, g, b))
}

// parseHexColor parses RRGGBB, defaulting to white.
func parseHexColor(hex string) (r, g, b uint8) {
	if len(hex) < 6 {
		return 255, 255, 255
	}
	return parseHexByte(hex[0:2]), parseHexByte(hex[2:4]), parseHexByte(hex[4:6])
}

func parseHexByte(s string) uint8 {
	if len(s) != 2 {
		return 255
	}
	var result uint8
	for _, c := range s {
		result *= 16
		switch {
		case c >= '0' && c <= '9':
			result += uint8(c - '0')
		case c >= 'a' && c <= 'f':
			result += uint8(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			result += uint8(c - 'A' + 10)
		default:
			return 255
		}
	}
	return result
}

func formatHexColor(r, g, b uint8) string {
	const hexChars = "0123456789ABCDEF"
	return "#" +
		string(hexChars[r>>4]) + string(hexChars[r&0xF]) +
		string(hexChars[g>>4]) + string(hexChars[g&0xF]) +
		string(hexChars[b>>4]) + string(hexChars[b&0xF])
}
