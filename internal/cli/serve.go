// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// serve.go - Local development endpoint answering with simulated replies.
//
// Command: serve
// Short:   Run a local chat endpoint backed by the simulator
//
// Flags:
//   --addr ADDR   Listen address (default from server.listen)
//
// The simulator delays are reloaded when the config file changes.

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/zabbixai-chat/internal/config"
	"github.com/jeranaias/zabbixai-chat/internal/gateway"
	"github.com/jeranaias/zabbixai-chat/internal/server"
)

func newServeCommand(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local chat endpoint backed by the simulator",
		Long: `Serve POST /chat and GET /health on the configured address.

Replies come from the built-in simulator, so the chat client can be
exercised without a ZabbixAI deployment. Point it at the server with
--endpoint http://ADDR/chat.`,
		Args: cobra.NoArgs,
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				app.cfg.Server.Listen = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.runServe(ctx, cmd)
		}),
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func (a *App) runServe(ctx context.Context, cmd *cobra.Command) error {
	log := a.openLogger(true)

	sim := gateway.NewSimulator(&gateway.SimulatorConfig{
		MinDelay: time.Duration(a.cfg.Simulator.MinDelayMs) * time.Millisecond,
		MaxDelay: time.Duration(a.cfg.Simulator.MaxDelayMs) * time.Millisecond,
	})

	srv := server.New(sim, server.Config{
		Addr:      a.cfg.Server.Listen,
		RateLimit: a.cfg.Server.RateLimit,
		Burst:     a.cfg.Server.Burst,
		Logger:    log,
	}).WithVersion(Version)

	if err := srv.Listen(); err != nil {
		return NewCommandError("serve", "listen", a.cfg.Server.Listen, err)
	}

	if a.cfgPath != "" {
		go a.watchSimulator(ctx, sim, log)
	}

	writeLine(cmd.OutOrStdout(), "%s http://%s/chat", SuccessStyle.Render("Listening on"), srv.Addr())
	return srv.Serve(ctx)
}

// watchSimulator applies simulator delay changes from the config file.
func (a *App) watchSimulator(ctx context.Context, sim *gateway.Simulator, log *zap.Logger) {
	err := config.Watch(ctx, a.cfgPath,
		func(c *config.Config) {
			minDelay := time.Duration(c.Simulator.MinDelayMs) * time.Millisecond
			maxDelay := time.Duration(c.Simulator.MaxDelayMs) * time.Millisecond
			sim.SetDelays(minDelay, maxDelay)
			log.Info("config reloaded",
				zap.Duration("min_delay", minDelay),
				zap.Duration("max_delay", maxDelay),
			)
		},
		func(err error) {
			log.Warn("config reload failed, keeping previous settings", zap.Error(err))
		},
	)
	if err != nil {
		log.Warn("config watch disabled", zap.String("path", a.cfgPath), zap.Error(err))
	}
}
