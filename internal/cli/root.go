// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/zabbixai-chat/internal/config"
	"github.com/jeranaias/zabbixai-chat/internal/conversation"
	"github.com/jeranaias/zabbixai-chat/internal/feedback"
	"github.com/jeranaias/zabbixai-chat/internal/gateway"
	"github.com/jeranaias/zabbixai-chat/internal/logger"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// APP
// =============================================================================

// App carries the state shared by every subcommand: flags, the loaded
// config and the logger. Resources opened while running a command are
// released by Close.
type App struct {
	// Global flags
	configPath string
	backend    string
	endpoint   string
	logLevel   string
	theme      string

	cfg     *config.Config
	cfgPath string // file the config came from, empty for defaults
	logger  *zap.Logger
	closers []func() error
}

// NewRootCommand builds the zabbixai command tree. Running it without a
// subcommand starts the TUI.
func NewRootCommand() *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:   "zabbixai",
		Short: "Terminal chat client for the ZabbixAI monitoring assistant",
		Long: `zabbixai talks to the ZabbixAI chat API from the terminal.

Without a subcommand it starts the full-screen chat. Replies can be liked,
disliked or rated, and PDF, Word and Excel documents can be attached.`,
		Version:       fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.loadConfig()
		},
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			return app.runTUI(cmd)
		}),
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVarP(&app.configPath, "config", "c", "", "config file (default ~/.zabbixai/config.toml)")
	pf.StringVar(&app.backend, "backend", "", "reply backend: http or simulator")
	pf.StringVar(&app.endpoint, "endpoint", "", "chat API URL (default http://localhost:8000/chat)")
	pf.StringVar(&app.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&app.theme, "theme", "", "color theme: auto, dark, light")

	root.AddCommand(
		newChatCommand(app),
		newAskCommand(app),
		newServeCommand(app),
		newFeedbackCommand(app),
		newConfigCommand(app),
		newVersionCommand(),
	)
	return root
}

// =============================================================================
// CONFIG AND LOGGING
// =============================================================================

// loadConfig reads the config file, applies environment and flag overrides
// and validates the result.
func (a *App) loadConfig() error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFromPath(a.configPath)
		if err != nil {
			return &ConfigError{Path: a.configPath, Err: err}
		}
		a.cfgPath = a.configPath
	} else {
		cfg, err = config.Load()
		if cfg == nil {
			return &ConfigError{Err: err}
		}
		if err != nil {
			// Load fell back to defaults; say so but keep going.
			fmt.Fprintf(os.Stderr, "%s %v\n", WarningStyle.Render("[config]"), err)
		} else if p, pathErr := config.Path(); pathErr == nil {
			a.cfgPath = p
		}
	}

	if a.backend != "" {
		cfg.Gateway.Backend = strings.ToLower(a.backend)
	}
	if a.endpoint != "" {
		cfg.Gateway.Endpoint = a.endpoint
	}
	if a.logLevel != "" {
		cfg.Log.Level = strings.ToLower(a.logLevel)
	}
	if a.theme != "" {
		cfg.UI.Theme = strings.ToLower(a.theme)
	}
	if err := cfg.Validate(); err != nil {
		return &ConfigError{Path: a.cfgPath, Err: err}
	}

	a.cfg = cfg
	return nil
}

// openLogger builds the logger. Full-screen and REPL commands own the
// terminal, so they log to the configured file; serve logs to stderr.
func (a *App) openLogger(toStderr bool) *zap.Logger {
	lc := a.cfg.LoggerConfig()
	if toStderr {
		lc.OutputPath = "stderr"
		lc.Format = "console"
	}
	a.logger = logger.Must(lc)
	a.onClose(func() error {
		// Sync on stderr returns EINVAL on some platforms.
		_ = a.logger.Sync()
		return nil
	})
	return a.logger
}

// run wraps a command body so resources opened along the way are released
// even when it fails. Cobra skips post-run hooks after an error.
func (a *App) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() { err = errors.Join(err, a.Close()) }()
		return fn(cmd, args)
	}
}

func (a *App) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Close releases everything opened for the command, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// =============================================================================
// CONVERSATION WIRING
// =============================================================================

// openGateway builds the configured reply backend.
func (a *App) openGateway() (gateway.Gateway, error) {
	gw, err := gateway.New(a.cfg.GatewayOptions())
	if err != nil {
		return nil, &ConfigError{Path: a.cfgPath, Err: err}
	}
	return gw, nil
}

// openReporter persists feedback to SQLite and mirrors it to the log. A
// database that cannot be opened degrades to log-only reporting.
func (a *App) openReporter() conversation.Reporter {
	logReporter := feedback.NewLogReporter(a.logger)
	if !a.cfg.Feedback.Enabled {
		return logReporter
	}

	db, err := feedback.OpenSQLite(a.cfg.Feedback.DBPath)
	if err != nil {
		a.logger.Warn("feedback database unavailable, logging only",
			zap.String("path", a.cfg.Feedback.DBPath),
			zap.Error(err),
		)
		return logReporter
	}
	a.onClose(db.Close)
	return feedback.Tee{db, logReporter}
}

// newStore wires a conversation to the configured backend. Notifications go
// to the log and to notifier, when given.
func (a *App) newStore(notifier conversation.Notifier, greeting bool) (*conversation.Store, error) {
	gw, err := a.openGateway()
	if err != nil {
		return nil, err
	}

	opts := []conversation.Option{
		conversation.WithLogger(a.logger),
		conversation.WithReporter(a.openReporter()),
		conversation.WithNotifier(conversation.Notifiers{notifier, conversation.LogNotifier(a.logger)}),
	}
	if greeting {
		opts = append(opts, conversation.WithGreeting())
	}
	return conversation.New(gw, opts...), nil
}

// writeLine writes one line, ignoring errors on the terminal.
func writeLine(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
