// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot questions for scripts and pipes.
//
// Command: ask [question...]
// Short:   Ask a single question and print the reply
//
// Flags:
//   --json    Output in JSON format
//
// Examples:
//   zabbixai ask "Why is the CPU trigger firing on db01?"
//   echo "How do I tune housekeeping?" | zabbixai ask
//   zabbixai ask --backend simulator --json "Any disk alerts?"

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/zabbixai-chat/internal/conversation"
	"github.com/jeranaias/zabbixai-chat/internal/ui/components"
)

// maxStdinQuestion caps how much piped input becomes one question.
const maxStdinQuestion = 64 << 10

func newAskCommand(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask a single question and print the reply",
		Long: `Send one question and print the reply.

With no arguments the question is read from standard input.`,
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxStdinQuestion))
				if err != nil {
					return fmt.Errorf("read question: %w", err)
				}
				question = string(data)
			}
			return app.runAsk(cmd, strings.TrimSpace(question), asJSON)
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

func (a *App) runAsk(cmd *cobra.Command, question string, asJSON bool) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if question == "" {
		return &UsageError{Msg: "no question given; pass it as arguments or on stdin"}
	}

	log := a.openLogger(false)
	store, err := a.newStore(nil, false)
	if err != nil {
		return err
	}

	start := time.Now()
	reply, sendErr := store.Send(cmd.Context(), question)
	elapsed := time.Since(start)
	log.Info("ask finished", zap.Duration("duration", elapsed), zap.Error(sendErr))

	if asJSON {
		if sendErr != nil {
			if err := NewJSONErrorResponse("ask", sendErr).Write(out); err != nil {
				return err
			}
			return sendErr
		}
		return NewJSONResponse("ask", AskData{
			Response:   reply.Text,
			MessageID:  reply.ID,
			Backend:    a.cfg.Gateway.Backend,
			DurationMs: elapsed.Milliseconds(),
		}).Write(out)
	}

	if sendErr != nil {
		if errors.Is(sendErr, conversation.ErrEmptyInput) {
			return &UsageError{Msg: sendErr.Error()}
		}
		// The apology goes to stderr so stdout stays empty for scripts.
		writeLine(errOut, "%s", reply.Text)
		return sendErr
	}

	text := reply.Text
	if a.cfg.UI.Markdown && isTerminalWriter(out) {
		text = components.NewMarkdownRenderer(HasDarkBackground()).Render(text, min(GetTerminalWidth()-2, 100))
	}
	writeLine(out, "%s", text)
	return nil
}
