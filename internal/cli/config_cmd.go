// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - View and create the configuration file.
//
// Command: config [subcommand]
// Short:   Manage configuration
//
// Subcommands:
//   show          Print the effective configuration (file, env and flags)
//   path          Print the config file location
//   init          Write a default config file
//
// Flags:
//   --json        Output in JSON format (show)
//   --force       Overwrite an existing file (init)

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/jeranaias/zabbixai-chat/internal/config"
)

func newConfigCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Show the effective configuration or create a default config file.

Settings are read from ~/.zabbixai/config.toml (or config.json), then
ZABBIXAI_* environment variables, then command line flags.`,
	}

	var showJSON bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if showJSON {
				writeLine(out, "%s", app.cfg.String())
				return nil
			}
			source := app.cfgPath
			if source == "" {
				source = "built-in defaults"
			}
			writeLine(out, "# source: %s", source)
			return toml.NewEncoder(out).Encode(app.cfg)
		},
	}
	show.Flags().BoolVar(&showJSON, "json", false, "output in JSON format")

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if app.cfgPath != "" {
				writeLine(out, "%s", app.cfgPath)
				return nil
			}
			p, err := config.ConfigPathTOML()
			if err != nil {
				return &ConfigError{Err: err}
			}
			writeLine(out, "%s %s", p, DimStyle.Render("(not created yet, run `zabbixai config init`)"))
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		// A broken existing file must not stop init from replacing it.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.initConfig(cmd, force)
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")

	cmd.AddCommand(show, path, initCmd)
	return cmd
}

func (a *App) initConfig(cmd *cobra.Command, force bool) error {
	target := a.configPath
	if target == "" {
		p, err := config.ConfigPathTOML()
		if err != nil {
			return &ConfigError{Err: err}
		}
		target = p
	}

	if _, err := os.Stat(target); err == nil && !force {
		return &UsageError{Msg: fmt.Sprintf("%s already exists (use --force to overwrite)", target)}
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &ConfigError{Path: target, Err: err}
	}

	cfg := config.Default()
	save := config.SaveTOML
	if strings.HasSuffix(target, ".json") {
		save = config.SaveJSON
	}
	if err := save(cfg, target); err != nil {
		return &ConfigError{Path: target, Err: err}
	}

	writeLine(cmd.OutOrStdout(), "%s %s", SuccessStyle.Render("Wrote"), target)
	return nil
}
