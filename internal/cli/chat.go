// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-mode chat for terminals where the full-screen UI is not
// wanted.
//
// Command: chat
// Short:   Start an interactive line-mode chat session
//
// Interactive Commands (during chat):
//   /help, /h              Show available commands
//   /like, /dislike        React to the latest reply
//   /rate N [comment]      Rate the latest reply with 1-5 stars
//   /attach PATH[, PATH]   Attach PDF, Word or Excel documents
//   /files                 List attached documents
//   /remove N              Remove attached document N
//   /history               Show the conversation so far
//   /export [md|json] [DIR] Save the transcript to a file
//   /quit, /q              Exit chat
//   Ctrl+C                 Cancel the pending reply, or exit at the prompt

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/zabbixai-chat/internal/config"
	"github.com/jeranaias/zabbixai-chat/internal/conversation"
	"github.com/jeranaias/zabbixai-chat/internal/export"
	"github.com/jeranaias/zabbixai-chat/internal/model"
	"github.com/jeranaias/zabbixai-chat/internal/ui/components"
	"github.com/jeranaias/zabbixai-chat/internal/uploads"
	"github.com/jeranaias/zabbixai-chat/internal/util"
)

func newChatCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive line-mode chat session",
		Long: `Chat with ZabbixAI one line at a time, with input history.

Type /help during the session for the available commands.`,
		Args: cobra.NoArgs,
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			return app.runChat(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		}),
	}
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a line editor with history loaded from the config dir.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.LoadHistory()
	return c
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history, owner read/write only.
func (c *ChatCLI) SaveHistory() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0o700); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = c.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// SESSION
// =============================================================================

// chatSession is one line-mode conversation. It only talks to the Store, so
// it can be driven without a terminal.
type chatSession struct {
	store  *conversation.Store
	out    io.Writer
	errOut io.Writer
	md     *components.MarkdownRenderer // nil renders plain text
	width  int
	typing bool // print a typing hint while waiting
}

// printNotifier prints store notifications as one-line alerts.
func printNotifier(w io.Writer) conversation.Notifier {
	return conversation.NotifierFunc(func(n conversation.Notification) {
		style := SuccessStyle
		switch n.Kind {
		case conversation.NotifyError:
			style = ErrorStyle
		case conversation.NotifyWarning:
			style = WarningStyle
		case conversation.NotifyInfo:
			style = DimStyle
		}
		writeLine(w, "%s %s", style.Render("["+n.Title+"]"), n.Body)
	})
}

func (a *App) runChat(ctx context.Context, out, errOut io.Writer) error {
	a.openLogger(false)

	store, err := a.newStore(printNotifier(errOut), a.cfg.UI.Greeting)
	if err != nil {
		return err
	}

	s := &chatSession{
		store:  store,
		out:    out,
		errOut: errOut,
		width:  GetTerminalWidth(),
		typing: isTerminalWriter(errOut),
	}
	if a.cfg.UI.Markdown && isTerminalWriter(out) {
		s.md = components.NewMarkdownRenderer(HasDarkBackground())
	}

	writeLine(out, "%s %s", TitleStyle.Render("ZabbixAI Bot"), DimStyle.Render("Your intelligent monitoring assistant"))
	writeLine(out, "%s", DimStyle.Render("Type /help for commands, /quit to exit."))
	writeLine(out, "%s", RenderSeparator(min(s.width-4, 60)))
	for _, msg := range store.Messages() {
		s.printMessage(msg)
	}

	input := NewChatCLI()
	defer input.Close()

	for {
		line, err := input.ReadInput(PromptStyle.Render("you> "))
		if err != nil {
			// Ctrl+C at the prompt, Ctrl+D, or stdin closed.
			if !errors.Is(err, liner.ErrPromptAborted) && !errors.Is(err, io.EOF) {
				a.logger.Debug("prompt closed", zap.Error(err))
			}
			writeLine(out, "")
			s.printSummary()
			return nil
		}

		quit, err := s.handle(ctx, line)
		if err != nil {
			writeLine(errOut, "%s %v", ErrorStyle.Render("[Error]"), err)
		}
		if quit {
			s.printSummary()
			return nil
		}
	}
}

// handle processes one input line. It reports quit when the session should
// end.
func (s *chatSession) handle(ctx context.Context, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
		return true, nil
	}
	if isSlashCommand(line) {
		return s.handleSlashCommand(ctx, line)
	}
	if strings.HasPrefix(line, "//") {
		line = line[1:]
	}
	return false, s.send(ctx, line)
}

// isSlashCommand reports whether line should be run as a command. A leading
// "//" escapes the slash, and a first word with another slash in it is a
// path such as /etc/zabbix/zabbix_server.conf, so both are sent as text.
func isSlashCommand(line string) bool {
	if !strings.HasPrefix(line, "/") || strings.HasPrefix(line, "//") {
		return false
	}
	name, _, _ := strings.Cut(line, " ")
	return !strings.Contains(name[1:], "/")
}

// send runs one exchange. Ctrl+C while waiting cancels the request.
func (s *chatSession) send(ctx context.Context, text string) error {
	sendCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if s.typing {
		fmt.Fprint(s.errOut, DimStyle.Render("ZabbixAI is typing...")+"\r")
	}
	msg, err := s.store.Send(sendCtx, text)
	if s.typing {
		fmt.Fprint(s.errOut, strings.Repeat(" ", 24)+"\r")
	}
	if msg.ID != "" {
		// On failure msg is the apology reply; show it like any other.
		s.printMessage(msg)
	}
	if err != nil && !errors.Is(err, conversation.ErrEmptyInput) {
		return err
	}
	return nil
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

func (s *chatSession) handleSlashCommand(ctx context.Context, line string) (bool, error) {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(name) {
	case "/help", "/h", "/?":
		s.printHelp()
	case "/quit", "/q", "/exit":
		return true, nil
	case "/like":
		return false, s.react(model.KindLike)
	case "/dislike":
		return false, s.react(model.KindDislike)
	case "/rate":
		return false, s.rate(ctx, rest)
	case "/attach":
		return false, s.attach(rest)
	case "/files":
		s.printFiles()
	case "/remove":
		return false, s.remove(rest)
	case "/history":
		for _, msg := range s.store.Messages() {
			s.printMessage(msg)
		}
	case "/export":
		return false, s.exportTranscript(rest)
	default:
		return false, fmt.Errorf("unknown command %s (try /help, or start with // to send it as a message)", name)
	}
	return false, nil
}

// lastReplyID returns the newest bot message, the one reactions apply to.
func (s *chatSession) lastReplyID() (string, error) {
	msgs := s.store.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Author.IsBot() {
			return msgs[i].ID, nil
		}
	}
	return "", errors.New("no reply to rate yet")
}

func (s *chatSession) react(kind model.ReactionKind) error {
	id, err := s.lastReplyID()
	if err != nil {
		return err
	}
	_, err = s.store.SetReaction(id, kind)
	return err
}

// rate handles "/rate N [comment]".
func (s *chatSession) rate(ctx context.Context, args string) error {
	ratingText, comment, _ := strings.Cut(args, " ")
	rating, err := strconv.Atoi(ratingText)
	if err != nil || !model.ValidRating(rating) {
		return &UsageError{Msg: "usage: /rate 1-5 [comment]"}
	}

	id, err := s.lastReplyID()
	if err != nil {
		return err
	}
	if err := s.store.OpenFeedback(id); err != nil {
		return err
	}
	if _, err := s.store.SubmitFeedback(ctx, rating, comment); err != nil {
		s.store.CloseFeedback()
		return err
	}
	return nil
}

// attach handles "/attach a.pdf, b.xlsx". The batch is rejected whole when
// any file fails.
func (s *chatSession) attach(args string) error {
	var files []model.UploadedFile
	for _, p := range strings.Split(args, ",") {
		p = strings.Trim(strings.TrimSpace(p), `"'`)
		if p == "" {
			continue
		}
		f, err := uploads.Inspect(p)
		if err != nil {
			return err
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return &UsageError{Msg: "usage: /attach PATH[, PATH...]"}
	}
	if err := s.store.AttachFiles(files...); err != nil {
		return err
	}
	writeLine(s.out, "%s %d file(s) attached.", SuccessStyle.Render("[Upload complete]"), len(files))
	return nil
}

func (s *chatSession) remove(args string) error {
	n, err := strconv.Atoi(args)
	if err != nil || !s.store.RemoveFile(n-1) {
		return &UsageError{Msg: "usage: /remove N (see /files)"}
	}
	return nil
}

// exportTranscript handles "/export [md|json] [DIR]".
func (s *chatSession) exportTranscript(args string) error {
	fields := strings.Fields(args)
	format, dir := "md", "."
	if len(fields) > 0 {
		format = fields[0]
	}
	if len(fields) > 1 {
		dir = fields[1]
	}

	opts := export.DefaultOptions()
	opts.OutputDir = dir
	exporter, err := export.ForFormat(format, opts)
	if err != nil {
		return &UsageError{Msg: err.Error()}
	}
	path, err := export.ExportToFile(s.store.Messages(), exporter, opts)
	if err != nil {
		return err
	}
	writeLine(s.out, "%s %s", SuccessStyle.Render("[Exported]"), path)
	return nil
}

// =============================================================================
// OUTPUT
// =============================================================================

func (s *chatSession) printMessage(msg model.Message) {
	if !msg.Author.IsBot() {
		// The user's line is already on screen.
		return
	}
	text := msg.Text
	if s.md != nil {
		text = s.md.Render(text, min(s.width-4, 100))
	}
	writeLine(s.out, "%s %s", BotStyle.Render(msg.Author.DisplayName()), DimStyle.Render(msg.Clock()))
	writeLine(s.out, "%s\n", text)
}

func (s *chatSession) printFiles() {
	files := s.store.Files()
	if len(files) == 0 {
		writeLine(s.out, "%s", DimStyle.Render("No documents attached."))
		return
	}
	for i, f := range files {
		writeLine(s.out, "  %d. %s %s", i+1,
			ValueStyle.Render(util.TruncateMiddle(f.Name, 40)),
			DimStyle.Render(uploads.Kind(f.Type)+" · "+uploads.FormatSize(f.Size)))
	}
}

func (s *chatSession) printHelp() {
	cmds := [][2]string{
		{"/like, /dislike", "React to the latest reply"},
		{"/rate N [comment]", "Rate the latest reply with 1-5 stars"},
		{"/attach PATH", "Attach PDF, Word or Excel documents (max 3)"},
		{"/files", "List attached documents"},
		{"/remove N", "Remove attached document N"},
		{"/history", "Show the conversation so far"},
		{"/export [md|json]", "Save the transcript to a file"},
		{"/quit", "Exit chat"},
		{"//text", "Send text that starts with a slash"},
	}
	for _, c := range cmds {
		writeLine(s.out, "  %s %s", PromptStyle.Width(20).Render(c[0]), DimStyle.Render(c[1]))
	}
}

func (s *chatSession) printSummary() {
	stats := components.StatsFor(s.store.Messages())
	writeLine(s.out, "%s %d messages, %d liked, %d disliked",
		DimStyle.Render("Session:"), stats.Messages, stats.Liked, stats.Disliked)
}
