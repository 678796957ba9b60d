// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects how the background is determined.
type Mode int

const (
	ModeAuto Mode = iota // ask the terminal
	ModeDark
	ModeLight
)

// ParseMode maps the ui.theme config value to a Mode. Unknown values are auto.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark":
		return ModeDark
	case "light":
		return ModeLight
	default:
		return ModeAuto
	}
}

func (m Mode) String() string {
	switch m {
	case ModeDark:
		return "dark"
	case ModeLight:
		return "light"
	default:
		return "auto"
	}
}

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	Mode         Mode
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App  lipgloss.Style
	Main lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar        lipgloss.Style
	BrandMark      lipgloss.Style
	BrandTitle     lipgloss.Style
	BrandSubtitle  lipgloss.Style
	SectionTitle   lipgloss.Style
	DropZone       lipgloss.Style
	FileItem       lipgloss.Style
	FileItemActive lipgloss.Style
	FileMeta       lipgloss.Style
	SidebarHint    lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble    lipgloss.Style
	BotBubble     lipgloss.Style
	Avatar        lipgloss.Style
	Timestamp     lipgloss.Style
	Selected      lipgloss.Style
	ActionIdle    lipgloss.Style
	ActionLiked   lipgloss.Style
	ActionDislike lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputDisabled  lipgloss.Style
	InputPrompt    lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// TYPING INDICATOR
	// ==========================================================================

	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style

	// ==========================================================================
	// FEEDBACK MODAL STYLES
	// ==========================================================================

	Modal          lipgloss.Style
	ModalTitle     lipgloss.Style
	ModalLabel     lipgloss.Style
	StarOn         lipgloss.Style
	StarOff        lipgloss.Style
	Button         lipgloss.Style
	ButtonPrimary  lipgloss.Style
	ButtonDisabled lipgloss.Style

	// ==========================================================================
	// ACCESSIBILITY: Status indicator styles
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a theme for the given mode with all styles configured.
// ModeAuto queries the terminal; the explicit modes override the detection
// for every AdaptiveColor rendered afterwards.
func NewTheme(mode Mode) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch mode {
	case ModeDark:
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case ModeLight:
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		Mode:         mode,
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Main = lipgloss.NewStyle().Padding(0, 1)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(PrimaryDeep).
		Padding(1, 2)

	t.BrandMark = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Primary).
		Padding(0, 1)

	t.BrandTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.BrandSubtitle = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.SectionTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary).
		MarginTop(1)

	t.DropZone = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryDeep).
		Foreground(TextSecondary).
		Padding(0, 1).
		Align(lipgloss.Center)

	t.FileItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.FileItemActive = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	t.FileMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.SidebarHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 1)

	t.Avatar = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted).
		PaddingLeft(1)

	t.Selected = lipgloss.NewStyle().
		BorderForeground(PrimaryLight)

	t.ActionIdle = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ActionLiked = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.ActionDislike = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	// Input
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(0, 1)

	t.InputDisabled = t.InputContainer.
		BorderForeground(Overlay)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Typing indicator
	t.Spinner = lipgloss.NewStyle().
		Foreground(Primary)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Feedback modal
	t.Modal = lipgloss.NewStyle().
		Background(SurfaceBright).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 3)

	t.ModalTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.ModalLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.StarOn = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.StarOff = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Button = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)

	t.ButtonPrimary = t.Button.
		Foreground(TextInverse).
		Background(Primary).
		BorderForeground(PrimaryDeep).
		Bold(true)

	t.ButtonDisabled = t.Button.
		Foreground(TextMuted).
		Faint(true)

	// Accessibility
	t.SuccessStyle = lipgloss.NewStyle().Foreground(SuccessHighContrast).Bold(true)
	t.ErrorStyle = lipgloss.NewStyle().Foreground(ErrorHighContrast).Bold(true)
	t.WarningStyle = lipgloss.NewStyle().Foreground(WarningHighContrast).Bold(true)
	t.InfoStyle = lipgloss.NewStyle().Foreground(InfoHighContrast).Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// SidebarWidth is a quarter of the screen in wide layouts, a fixed column in
// medium ones and hidden when narrow.
func (t *Theme) SidebarWidth() int {
	switch t.GetLayoutMode() {
	case LayoutWide:
		return t.Width / 4
	case LayoutMedium:
		return 24
	default:
		return 0
	}
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
