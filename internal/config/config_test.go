// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/zabbixai-chat/internal/gateway"
)

// isolate points HOME at a temp dir and clears every override variable.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, key := range []string{
		"ZABBIXAI_ENDPOINT", "ZABBIXAI_BACKEND", "ZABBIXAI_LOG_LEVEL",
		"ZABBIXAI_FEEDBACK_DB", "ZABBIXAI_LISTEN",
	} {
		t.Setenv(key, "")
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestDefault_IsValid(t *testing.T) {
	isolate(t)
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, gateway.BackendHTTP, cfg.Gateway.Backend)
	assert.Equal(t, "http://localhost:8000/chat", cfg.Gateway.Endpoint)
	assert.Equal(t, 1000, cfg.Simulator.MinDelayMs)
	assert.Equal(t, 2000, cfg.Simulator.MaxDelayMs)
	assert.True(t, cfg.UI.Greeting)
	assert.True(t, cfg.Feedback.Enabled)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Path()
	assert.ErrorIs(t, err, ErrNoConfigFile)
}

func TestLoad_TOMLKeepsUnsetDefaults(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".zabbixai", "config.toml")
	writeFile(t, path, `
[gateway]
backend = "simulator"

[simulator]
min_delay_ms = 10
max_delay_ms = 20

[ui]
sidebar = false
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, gateway.BackendSimulator, cfg.Gateway.Backend)
	assert.Equal(t, gateway.DefaultEndpoint, cfg.Gateway.Endpoint)
	assert.Equal(t, 60, cfg.Gateway.TimeoutSecs)
	assert.False(t, cfg.UI.Sidebar)
	assert.True(t, cfg.UI.Markdown, "unset bools keep their defaults")

	p, err := Path()
	require.NoError(t, err)
	assert.Equal(t, path, p)
}

func TestLoad_JSONFallback(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".zabbixai", "config.json"),
		`{"gateway": {"endpoint": "https://zabbix.example.com/api/chat", "timeout_secs": 15}}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://zabbix.example.com/api/chat", cfg.Gateway.Endpoint)
	assert.Equal(t, 15, cfg.Gateway.TimeoutSecs)
}

func TestLoad_BrokenFileReturnsDefaultsAndError(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".zabbixai", "config.toml"), "[gateway\nbackend=")

	cfg, err := Load()
	require.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, gateway.BackendHTTP, cfg.Gateway.Backend)
}

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("ZABBIXAI_ENDPOINT", "http://10.0.0.5:8000/chat")
	t.Setenv("ZABBIXAI_BACKEND", "SIMULATOR")
	t.Setenv("ZABBIXAI_LOG_LEVEL", "DEBUG")
	t.Setenv("ZABBIXAI_FEEDBACK_DB", "/tmp/fb.db")
	t.Setenv("ZABBIXAI_LISTEN", ":9000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8000/chat", cfg.Gateway.Endpoint)
	assert.Equal(t, "simulator", cfg.Gateway.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/fb.db", cfg.Feedback.DBPath)
	assert.Equal(t, ":9000", cfg.Server.Listen)
}

func TestValidate(t *testing.T) {
	isolate(t)

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown backend", func(c *Config) { c.Gateway.Backend = "grpc" }, "gateway.backend"},
		{"ftp endpoint", func(c *Config) { c.Gateway.Endpoint = "ftp://host/chat" }, "gateway.endpoint"},
		{"hostless endpoint", func(c *Config) { c.Gateway.Endpoint = "http:///chat" }, "gateway.endpoint"},
		{"zero timeout", func(c *Config) { c.Gateway.TimeoutSecs = 0 }, "gateway.timeout_secs"},
		{"negative delay", func(c *Config) { c.Simulator.MinDelayMs = -1 }, "simulator.min_delay_ms"},
		{"inverted delays", func(c *Config) { c.Simulator.MaxDelayMs = 500 }, "simulator.max_delay_ms"},
		{"huge delay", func(c *Config) { c.Simulator.MaxDelayMs = 120000 }, "simulator.max_delay_ms"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"missing db", func(c *Config) { c.Feedback.DBPath = "" }, "feedback.db_path"},
		{"empty listen", func(c *Config) { c.Server.Listen = "" }, "server.listen"},
		{"zero rate", func(c *Config) { c.Server.RateLimit = 0 }, "server.rate_limit"},
		{"zero burst", func(c *Config) { c.Server.Burst = 0 }, "server.burst"},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			fields := make([]string, 0, len(verrs))
			for _, v := range verrs {
				fields = append(fields, v.Field)
			}
			assert.Contains(t, fields, tc.field)
		})
	}

	cfg := Default()
	cfg.Feedback.Enabled = false
	cfg.Feedback.DBPath = ""
	assert.NoError(t, cfg.Validate(), "db path only required when feedback is enabled")
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Gateway.Backend = gateway.BackendSimulator
	cfg.Simulator.MaxDelayMs = 3500
	cfg.UI.Greeting = false
	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveJSON_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.Server.Listen = "0.0.0.0:8080"
	require.NoError(t, SaveJSON(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGatewayOptions(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.Gateway.Backend = "Simulator"
	cfg.Gateway.TimeoutSecs = 5
	cfg.Simulator.MinDelayMs = 100
	cfg.Simulator.MaxDelayMs = 250

	opts := cfg.GatewayOptions()
	assert.Equal(t, gateway.BackendSimulator, opts.Backend)
	assert.Equal(t, 5*time.Second, opts.Timeout)
	assert.Equal(t, 100*time.Millisecond, opts.MinDelay)
	assert.Equal(t, 250*time.Millisecond, opts.MaxDelay)

	lc := cfg.LoggerConfig()
	assert.Equal(t, cfg.Log.Path, lc.OutputPath)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[simulator]\nmin_delay_ms = 10\nmax_delay_ms = 20\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 4)
	errs := make(chan error, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c *Config) { changes <- c }, func(err error) { errs <- err })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, path, "[simulator]\nmin_delay_ms = 30\nmax_delay_ms = 40\n")

	select {
	case cfg := <-changes:
		assert.Equal(t, 30, cfg.Simulator.MinDelayMs)
		assert.Equal(t, 40, cfg.Simulator.MaxDelayMs)
	case err := <-errs:
		t.Fatalf("unexpected reload error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after write")
	}

	writeFile(t, path, "[simulator]\nmin_delay_ms = 50\nmax_delay_ms = 1\n")
	select {
	case err := <-errs:
		assert.Error(t, err)
	case <-changes:
		t.Fatal("invalid config must not be delivered")
	case <-time.After(3 * time.Second):
		t.Fatal("no error after invalid write")
	}

	cancel()
	require.NoError(t, <-done)
}
