// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for zabbixai.
//
// # Sections
//
//   - [gateway]: backend (http or simulator), endpoint, timeout
//   - [simulator]: delay bounds of the offline backend
//   - [ui]: theme, sidebar, markdown rendering, greeting
//   - [feedback]: SQLite store for star ratings
//   - [server]: listen address and rate limit of the dev endpoint
//   - [log]: zap level, format and output path
//
// # Configuration Precedence
//
//   - Environment variables (ZABBIXAI_*)
//   - ~/.zabbixai/config.toml
//   - ~/.zabbixai/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil && cfg == nil {
//	    return err
//	}
//	gw, err := gateway.New(cfg.GatewayOptions())
//
// Watch reloads a file on change; the dev server uses it to pick up new
// simulator delays without a restart.
package config
