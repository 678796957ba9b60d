// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zabbixai-chat/internal/model"
	"github.com/jeranaias/zabbixai-chat/internal/ui/styles"
	"github.com/jeranaias/zabbixai-chat/internal/uploads"
	"github.com/jeranaias/zabbixai-chat/internal/util"
)

// =============================================================================
// SIDEBAR COMPONENT
// =============================================================================

// SessionStats summarises the current conversation for the sidebar.
type SessionStats struct {
	Messages int
	Liked    int
	Disliked int
}

// StatsFor counts messages and reactions.
func StatsFor(messages []model.Message) SessionStats {
	var s SessionStats
	s.Messages = len(messages)
	for _, m := range messages {
		switch m.Reaction {
		case model.ReactionLiked:
			s.Liked++
		case model.ReactionDisliked:
			s.Disliked++
		}
	}
	return s
}

// Sidebar shows the brand block, session stats and the attached documents.
// When focused, up/down select a document so it can be removed.
type Sidebar struct {
	theme    *styles.Theme
	width    int
	height   int
	files    []model.UploadedFile
	stats    SessionStats
	selected int
	focused  bool
}

// NewSidebar creates an empty sidebar.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{theme: theme}
}

// SetSize sets the outer dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetFiles replaces the document list, keeping the selection in range.
func (s *Sidebar) SetFiles(files []model.UploadedFile) {
	s.files = files
	if s.selected >= len(files) {
		s.selected = len(files) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

// SetStats updates the session counters.
func (s *Sidebar) SetStats(stats SessionStats) { s.stats = stats }

// Focus gives the sidebar keyboard focus. It has nothing to focus without files.
func (s *Sidebar) Focus() bool {
	s.focused = len(s.files) > 0
	return s.focused
}

// Blur drops keyboard focus.
func (s *Sidebar) Blur() { s.focused = false }

// Focused reports keyboard focus.
func (s *Sidebar) Focused() bool { return s.focused }

// Selected returns the index of the highlighted document, -1 if none.
func (s *Sidebar) Selected() int {
	if len(s.files) == 0 {
		return -1
	}
	return s.selected
}

// MoveUp moves the selection up.
func (s *Sidebar) MoveUp() {
	if s.selected > 0 {
		s.selected--
	}
}

// MoveDown moves the selection down.
func (s *Sidebar) MoveDown() {
	if s.selected < len(s.files)-1 {
		s.selected++
	}
}

// View renders the sidebar.
func (s *Sidebar) View() string {
	if s.width <= 0 {
		return ""
	}
	t := s.theme
	inner := s.width - 5 // border + padding
	if inner < 10 {
		inner = 10
	}

	var sections []string

	// Brand
	brand := lipgloss.JoinHorizontal(lipgloss.Center,
		t.BrandMark.Render("Z"), " ",
		lipgloss.JoinVertical(lipgloss.Left,
			t.BrandTitle.Render("ZabbixAI"),
			t.BrandSubtitle.Render("Intelligent Assistant"),
		),
	)
	sections = append(sections, brand)

	// Session
	sections = append(sections,
		t.SectionTitle.Render("This Session"),
		s.statLine("Messages", s.stats.Messages),
		s.statLine("Liked", s.stats.Liked),
		s.statLine("Disliked", s.stats.Disliked),
	)

	// Upload
	sections = append(sections, t.SectionTitle.Render("Upload Documents"))
	drop := t.DropZone.Width(inner - 2).Render(
		"ctrl+o to attach files\n" + t.SidebarHint.Render(uploadHint()),
	)
	sections = append(sections, drop)

	if len(s.files) > 0 {
		sections = append(sections, t.SectionTitle.Render("Uploaded Files:"))
		for i, f := range s.files {
			sections = append(sections, s.fileItem(i, f, inner))
		}
		if s.focused {
			sections = append(sections, t.SidebarHint.Render("del remove · esc back"))
		}
	}

	content := strings.Join(sections, "\n")
	style := t.Sidebar.Width(s.width - 1)
	if s.height > 0 {
		style = style.Height(s.height - 2)
	}
	return style.Render(content)
}

func (s *Sidebar) statLine(label string, n int) string {
	return s.theme.FileMeta.Render(label+": ") + s.theme.FileItem.Render(strconv.Itoa(n))
}

func (s *Sidebar) fileItem(i int, f model.UploadedFile, width int) string {
	t := s.theme
	name := util.TruncateMiddle(f.Name, width-2)
	meta := uploads.Kind(f.Type) + " · " + uploads.FormatSize(f.Size)

	nameStyle := t.FileItem
	marker := "  "
	if s.focused && i == s.selected {
		nameStyle = t.FileItemActive
		marker = "> "
	}
	return nameStyle.Render(marker+name) + "\n" + t.FileMeta.Render("  "+meta)
}

// uploadHint is the accepted-types line under the drop zone.
func uploadHint() string {
	return "PDF, Word, Excel (Max " + strconv.Itoa(uploads.MaxFiles) + " files)"
}
