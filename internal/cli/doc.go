// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the zabbixai command line: the full-screen chat,
// a line-mode chat, one-shot questions, the development server, and the
// feedback and config subcommands.
package cli
