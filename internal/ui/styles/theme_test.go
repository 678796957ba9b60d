// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"dark", ModeDark},
		{" Light ", ModeLight},
		{"auto", ModeAuto},
		{"", ModeAuto},
		{"solarized", ModeAuto},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestModeString(t *testing.T) {
	for _, m := range []Mode{ModeAuto, ModeDark, ModeLight} {
		if ParseMode(m.String()) != m {
			t.Errorf("mode %d does not round trip through %q", m, m.String())
		}
	}
}

func TestNewTheme_ForcedModes(t *testing.T) {
	dark := NewTheme(ModeDark)
	if !dark.IsDark {
		t.Error("ModeDark theme should be dark")
	}
	light := NewTheme(ModeLight)
	if light.IsDark {
		t.Error("ModeLight theme should be light")
	}
	if light.Mode != ModeLight {
		t.Errorf("Mode = %v, want light", light.Mode)
	}
}

func TestThemeInitStyles(t *testing.T) {
	theme := NewTheme(ModeDark)

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Sidebar", theme.Sidebar},
		{"UserBubble", theme.UserBubble},
		{"BotBubble", theme.BotBubble},
		{"InputContainer", theme.InputContainer},
		{"StatusBar", theme.StatusBar},
		{"Modal", theme.Modal},
		{"StarOn", theme.StarOn},
		{"ButtonPrimary", theme.ButtonPrimary},
	}

	for _, s := range styles {
		if !strings.Contains(s.style.Render("test"), "test") {
			t.Errorf("%s style lost its content", s.name)
		}
	}
}

func TestLayoutMode(t *testing.T) {
	tests := []struct {
		width       int
		want        LayoutMode
		wantSidebar int
	}{
		{40, LayoutNarrow, 0},
		{59, LayoutNarrow, 0},
		{60, LayoutMedium, 24},
		{99, LayoutMedium, 24},
		{100, LayoutWide, 25},
		{160, LayoutWide, 40},
	}

	theme := NewTheme(ModeDark)
	for _, tt := range tests {
		theme.SetSize(tt.width, 40)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("width %d: layout = %v, want %v", tt.width, got, tt.want)
		}
		if got := theme.SidebarWidth(); got != tt.wantSidebar {
			t.Errorf("width %d: sidebar = %d, want %d", tt.width, got, tt.wantSidebar)
		}
	}
}

func TestRenderHelpers_IncludeIndicators(t *testing.T) {
	tests := []struct {
		name   string
		render func(string) string
		symbol string
	}{
		{"success", RenderSuccess, StatusIndicators.Success},
		{"error", RenderError, StatusIndicators.Error},
		{"warning", RenderWarning, StatusIndicators.Warning},
		{"info", RenderInfo, StatusIndicators.Info},
	}
	for _, tt := range tests {
		out := tt.render("done")
		if !strings.Contains(out, tt.symbol) || !strings.Contains(out, "done") {
			t.Errorf("%s: %q should contain %q and the message", tt.name, out, tt.symbol)
		}
	}
}
