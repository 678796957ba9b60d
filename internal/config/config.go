// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for zabbixai.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.zabbixai/config.toml
//   - ~/.zabbixai/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/zabbixai-chat/internal/gateway"
	"github.com/jeranaias/zabbixai-chat/internal/logger"
	"github.com/jeranaias/zabbixai-chat/internal/util"
)

// CurrentVersion is written into new configuration files.
const CurrentVersion = "1"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete zabbixai configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	Gateway   GatewayConfig   `toml:"gateway" json:"gateway"`
	Simulator SimulatorConfig `toml:"simulator" json:"simulator"`
	UI        UIConfig        `toml:"ui" json:"ui"`
	Feedback  FeedbackConfig  `toml:"feedback" json:"feedback"`
	Server    ServerConfig    `toml:"server" json:"server"`
	Log       LogConfig       `toml:"log" json:"log"`
}

// GatewayConfig selects where replies come from.
type GatewayConfig struct {
	// Backend is "http" or "simulator"
	Backend string `toml:"backend" json:"backend"`

	// Endpoint is the chat URL for the http backend
	Endpoint string `toml:"endpoint" json:"endpoint"`

	// TimeoutSecs bounds one request/response exchange
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// SimulatorConfig bounds the simulated thinking time.
type SimulatorConfig struct {
	MinDelayMs int `toml:"min_delay_ms" json:"min_delay_ms"`
	MaxDelayMs int `toml:"max_delay_ms" json:"max_delay_ms"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	Theme    string `toml:"theme" json:"theme"` // auto, dark, light
	Sidebar  bool   `toml:"sidebar" json:"sidebar"`
	Markdown bool   `toml:"markdown" json:"markdown"`
	Greeting bool   `toml:"greeting" json:"greeting"`
}

// FeedbackConfig controls where star ratings go.
type FeedbackConfig struct {
	Enabled bool   `toml:"enabled" json:"enabled"`
	DBPath  string `toml:"db_path" json:"db_path"`
}

// ServerConfig configures the development chat endpoint.
type ServerConfig struct {
	Listen string `toml:"listen" json:"listen"`

	// RateLimit is requests per second per client IP; Burst is the bucket size
	RateLimit float64 `toml:"rate_limit" json:"rate_limit"`
	Burst     int     `toml:"burst" json:"burst"`
}

// LogConfig mirrors logger.Config.
type LogConfig struct {
	Level  string `toml:"level" json:"level"`
	Format string `toml:"format" json:"format"`
	Path   string `toml:"path" json:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	dir, err := ConfigDir()
	if err != nil {
		dir = ".zabbixai"
	}

	return &Config{
		Version: CurrentVersion,
		Gateway: GatewayConfig{
			Backend:     gateway.BackendHTTP,
			Endpoint:    gateway.DefaultEndpoint,
			TimeoutSecs: 60,
		},
		Simulator: SimulatorConfig{
			MinDelayMs: 1000,
			MaxDelayMs: 2000,
		},
		UI: UIConfig{
			Theme:    "auto",
			Sidebar:  true,
			Markdown: true,
			Greeting: true,
		},
		Feedback: FeedbackConfig{
			Enabled: true,
			DBPath:  filepath.Join(dir, "feedback.db"),
		},
		Server: ServerConfig{
			Listen:    "localhost:8000",
			RateLimit: 5,
			Burst:     10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			Path:   filepath.Join(dir, "zabbixai.log"),
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the zabbixai configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".zabbixai"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default locations. TOML is tried first,
// then JSON, then built-in defaults. Environment overrides are applied last.
//
// A broken file is reported alongside a usable default configuration.
func Load() (*Config, error) {
	var loadErr error

	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		cfg, err := LoadFromPath(path)
		if err == nil {
			return cfg, nil
		}
		loadErr = err
		break
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, loadErr
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadFromPath loads configuration from a specific file with full validation.
// Keys absent from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in any empty values with defaults.
func fillDefaults(cfg *Config) error {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	if cfg.Gateway.Backend == "" {
		cfg.Gateway.Backend = defaults.Gateway.Backend
	}
	if cfg.Gateway.Endpoint == "" {
		cfg.Gateway.Endpoint = defaults.Gateway.Endpoint
	}
	if cfg.Gateway.TimeoutSecs == 0 {
		cfg.Gateway.TimeoutSecs = defaults.Gateway.TimeoutSecs
	}

	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}

	if cfg.Feedback.DBPath == "" {
		cfg.Feedback.DBPath = defaults.Feedback.DBPath
	}

	if cfg.Server.Listen == "" {
		cfg.Server.Listen = defaults.Server.Listen
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = defaults.Server.RateLimit
	}
	if cfg.Server.Burst == 0 {
		cfg.Server.Burst = defaults.Server.Burst
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}
	if cfg.Log.Path == "" {
		cfg.Log.Path = defaults.Log.Path
	}

	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes cfg as TOML with a short header, atomically.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# zabbixai configuration file\n")
	b.WriteString("# Environment variables ZABBIXAI_* override these values.\n\n")
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes cfg as indented JSON, atomically.
func SaveJSON(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every section and returns ValidateErrors listing all
// problems, or nil.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// Gateway
	switch strings.ToLower(c.Gateway.Backend) {
	case gateway.BackendHTTP, gateway.BackendSimulator:
	default:
		add("gateway.backend", "invalid backend '%s', must be one of: http, simulator", c.Gateway.Backend)
	}
	if u, err := url.Parse(c.Gateway.Endpoint); err != nil {
		add("gateway.endpoint", "invalid URL: %v", err)
	} else if u.Scheme != "http" && u.Scheme != "https" {
		add("gateway.endpoint", "scheme must be http or https, got '%s'", u.Scheme)
	} else if u.Host == "" {
		add("gateway.endpoint", "missing host")
	}
	if c.Gateway.TimeoutSecs < 1 || c.Gateway.TimeoutSecs > 600 {
		add("gateway.timeout_secs", "must be between 1 and 600, got %d", c.Gateway.TimeoutSecs)
	}

	// Simulator
	if c.Simulator.MinDelayMs < 0 {
		add("simulator.min_delay_ms", "must not be negative")
	}
	if c.Simulator.MaxDelayMs < c.Simulator.MinDelayMs {
		add("simulator.max_delay_ms", "must be >= min_delay_ms (%d)", c.Simulator.MinDelayMs)
	}
	if c.Simulator.MaxDelayMs > 60000 {
		add("simulator.max_delay_ms", "must be at most 60000, got %d", c.Simulator.MaxDelayMs)
	}

	// UI
	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		add("ui.theme", "invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme)
	}

	// Feedback
	if c.Feedback.Enabled && c.Feedback.DBPath == "" {
		add("feedback.db_path", "required when feedback is enabled")
	}

	// Server
	if c.Server.Listen == "" {
		add("server.listen", "must not be empty")
	}
	if c.Server.RateLimit <= 0 {
		add("server.rate_limit", "must be positive, got %v", c.Server.RateLimit)
	}
	if c.Server.Burst < 1 {
		add("server.burst", "must be at least 1, got %d", c.Server.Burst)
	}

	// Log
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		add("log.level", "invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		add("log.format", "invalid format '%s', must be one of: json, console", c.Log.Format)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported environment variables:
//   - ZABBIXAI_ENDPOINT: overrides gateway.endpoint
//   - ZABBIXAI_BACKEND: overrides gateway.backend
//   - ZABBIXAI_LOG_LEVEL: overrides log.level
//   - ZABBIXAI_FEEDBACK_DB: overrides feedback.db_path
//   - ZABBIXAI_LISTEN: overrides server.listen
func (c *Config) ApplyEnvOverrides() {
	if endpoint := os.Getenv("ZABBIXAI_ENDPOINT"); endpoint != "" {
		c.Gateway.Endpoint = endpoint
	}
	if backend := os.Getenv("ZABBIXAI_BACKEND"); backend != "" {
		c.Gateway.Backend = strings.ToLower(backend)
	}
	if level := os.Getenv("ZABBIXAI_LOG_LEVEL"); level != "" {
		c.Log.Level = strings.ToLower(level)
	}
	if db := os.Getenv("ZABBIXAI_FEEDBACK_DB"); db != "" {
		c.Feedback.DBPath = db
	}
	if listen := os.Getenv("ZABBIXAI_LISTEN"); listen != "" {
		c.Server.Listen = listen
	}
}

// =============================================================================
// DERIVED SETTINGS
// =============================================================================

// GatewayOptions converts the gateway and simulator sections for gateway.New.
func (c *Config) GatewayOptions() gateway.Options {
	return gateway.Options{
		Backend:  strings.ToLower(c.Gateway.Backend),
		Endpoint: c.Gateway.Endpoint,
		Timeout:  time.Duration(c.Gateway.TimeoutSecs) * time.Second,
		MinDelay: time.Duration(c.Simulator.MinDelayMs) * time.Millisecond,
		MaxDelay: time.Duration(c.Simulator.MaxDelayMs) * time.Millisecond,
	}
}

// LoggerConfig converts the log section for logger.New.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		OutputPath: c.Log.Path,
	}
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the config as indented JSON.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// ErrNoConfigFile is returned by Path when no config file exists yet.
var ErrNoConfigFile = errors.New("no config file found")

// Path returns the config file Load would read.
func Path() (string, error) {
	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrNoConfigFile
}
