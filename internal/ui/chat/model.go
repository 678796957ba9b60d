// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/zabbixai-chat/internal/conversation"
	"github.com/jeranaias/zabbixai-chat/internal/model"
	"github.com/jeranaias/zabbixai-chat/internal/ui/components"
	"github.com/jeranaias/zabbixai-chat/internal/ui/styles"
)

// =============================================================================
// FOCUS
// =============================================================================

// Focus names the area that receives key presses.
type Focus int

const (
	FocusInput    Focus = iota // typing a message
	FocusMessages              // selecting a reply to react to
	FocusSidebar               // selecting an attached document
	FocusAttach                // typing file paths to attach
)

func (f Focus) String() string {
	switch f {
	case FocusMessages:
		return "messages"
	case FocusSidebar:
		return "files"
	case FocusAttach:
		return "attach"
	default:
		return "input"
	}
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Options configures a Model.
type Options struct {
	// Context bounds every gateway call. Defaults to context.Background.
	Context context.Context

	Sidebar  bool // show the document sidebar when the terminal is wide enough
	Markdown bool // render bot replies with glamour
	Logger   *zap.Logger

	// ExportDir receives transcripts saved with Ctrl+S. Defaults to ".".
	ExportDir string
}

// Model is the Bubble Tea model for the chat view. All conversation state
// lives in the Store; the model only holds widget state and focus.
type Model struct {
	store  *conversation.Store
	toasts *components.ToastManager
	theme  *styles.Theme
	keys   KeyMap
	logger *zap.Logger
	ctx    context.Context

	exportDir string

	// Dimensions
	width  int
	height int
	ready  bool

	// UI Components
	viewport viewport.Model
	input    textarea.Model
	attach   textinput.Model
	spinner  spinner.Model
	feedback feedbackForm
	header   *components.Header
	list     *components.MessageList
	sidebar  *components.Sidebar

	showSidebar  bool
	focus        Focus
	selectedID   string
	pendingSince time.Time
}

// New creates the chat view over store. Alerts raised by the store must be
// routed to toasts (conversation.WithNotifier) for them to show up.
func New(store *conversation.Store, toasts *components.ToastManager, theme *styles.Theme, opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if toasts == nil {
		toasts = components.NewToastManager()
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	ta := textarea.New()
	ta.Placeholder = "Ask me anything about Zabbix monitoring..."
	ta.ShowLineNumbers = false
	ta.Prompt = "┃ "
	ta.CharLimit = 8000
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline = DefaultKeyMap().Newline
	ta.Focus()

	ti := textinput.New()
	ti.Placeholder = "path/to/report.pdf, other.xlsx"
	ti.Prompt = "Attach: "

	sp := spinner.New(
		spinner.WithSpinner(spinner.Points),
		spinner.WithStyle(theme.Spinner),
	)

	list := components.NewMessageList(theme)
	if opts.Markdown {
		list.Markdown = components.NewMarkdownRenderer(theme.IsDark)
	}

	return Model{
		store:       store,
		toasts:      toasts,
		theme:       theme,
		keys:        DefaultKeyMap(),
		logger:      opts.Logger.Named("tui"),
		ctx:         opts.Context,
		exportDir:   opts.ExportDir,
		input:       ta,
		attach:      ti,
		spinner:     sp,
		feedback:    newFeedbackForm(),
		header:      components.NewHeader(theme),
		list:        list,
		sidebar:     components.NewSidebar(theme),
		showSidebar: opts.Sidebar,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, components.ToastTickCmd())
}

// Focus returns the focused area.
func (m Model) Focus() Focus { return m.focus }

// SelectedID returns the id of the reply selected for reactions.
func (m Model) SelectedID() string { return m.selectedID }

// InputValue returns the current contents of the message input.
func (m Model) InputValue() string { return m.input.Value() }

// Store returns the conversation the view renders.
func (m Model) Store() *conversation.Store { return m.store }

// =============================================================================
// SELECTION
// =============================================================================

// botIDs returns the ids of bot messages in conversation order. Only replies
// can be rated.
func botIDs(msgs []model.Message) []string {
	ids := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		if msg.Author.IsBot() {
			ids = append(ids, msg.ID)
		}
	}
	return ids
}

// moveSelection moves the reply selection by delta, clamping at both ends.
// With nothing selected it starts from the latest reply.
func (m *Model) moveSelection(delta int) {
	ids := botIDs(m.store.Messages())
	if len(ids) == 0 {
		m.selectedID = ""
		return
	}
	cur := len(ids) - 1
	for i, id := range ids {
		if id == m.selectedID {
			cur = i + delta
			break
		}
	}
	if cur < 0 {
		cur = 0
	}
	if cur >= len(ids) {
		cur = len(ids) - 1
	}
	m.selectedID = ids[cur]
}
