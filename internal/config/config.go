// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/helios/internal/ollama"
	"github.com/jeranaias/helios/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete helios configuration.
type Config struct {
	Ollama  OllamaConfig  `toml:"ollama"`
	Shell   ShellConfig   `toml:"shell"`
	History HistoryConfig `toml:"history"`
	Log     LogConfig     `toml:"log"`
}

// OllamaConfig controls the connection to the Ollama service.
type OllamaConfig struct {
	URL         string `toml:"url"`
	TimeoutSecs int    `toml:"timeout_secs"`
}

// ShellConfig selects the interpreter used to run commands. An empty path
// means the platform default.
type ShellConfig struct {
	Path string `toml:"path"`
}

// HistoryConfig controls the line editor history file.
type HistoryConfig struct {
	Path    string `toml:"path"`
	Enabled *bool  `toml:"enabled"`
}

// LogConfig controls diagnostic logging. An empty path logs to stderr.
type LogConfig struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

// ClientConfig converts the section into an Ollama client configuration.
func (o OllamaConfig) ClientConfig() *ollama.ClientConfig {
	return &ollama.ClientConfig{
		BaseURL: o.URL,
		Timeout: time.Duration(o.TimeoutSecs) * time.Second,
	}
}

// IsEnabled reports whether history should be loaded and saved.
func (h HistoryConfig) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

const (
	// DefaultHistoryFile is the history file name under the home directory.
	DefaultHistoryFile = ".helios_history"

	// DefaultLogLevel keeps diagnostics out of the conversation.
	DefaultLogLevel = "warn"
)

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Ollama: OllamaConfig{
			URL:         ollama.DefaultBaseURL,
			TimeoutSecs: int(ollama.DefaultTimeout / time.Second),
		},
		History: HistoryConfig{
			Path: filepath.Join("~", DefaultHistoryFile),
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the helios configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".helios"), nil
}

// ConfigPath returns the config file path, honoring HELIOS_CONFIG.
func ConfigPath() (string, error) {
	if p := os.Getenv("HELIOS_CONFIG"); p != "" {
		return util.ExpandHome(p), nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the default config file, falling back to defaults when it does
// not exist. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		// No home directory: run on defaults and environment.
		return finish(Default())
	}
	return LoadFromPath(path)
}

// LoadFromPath reads configuration from path. A missing file yields defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}
	fillDefaults(cfg)

	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.Ollama.URL = normalizeURL(cfg.Ollama.URL)
	cfg.History.Path = util.ExpandHome(cfg.History.Path)
	cfg.Log.Path = util.ExpandHome(cfg.Log.Path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults restores defaults for keys present in the file but left empty.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if strings.TrimSpace(cfg.Ollama.URL) == "" {
		cfg.Ollama.URL = defaults.Ollama.URL
	}
	if cfg.Ollama.TimeoutSecs == 0 {
		cfg.Ollama.TimeoutSecs = defaults.Ollama.TimeoutSecs
	}
	if cfg.History.Path == "" {
		cfg.History.Path = defaults.History.Path
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvOverrides() {
	// OLLAMA_HOST is the variable the ollama CLI itself reads.
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		c.Ollama.URL = host
	}

	// HELIOS_OLLAMA_URL
	if u := os.Getenv("HELIOS_OLLAMA_URL"); u != "" {
		c.Ollama.URL = u
	}

	// HELIOS_SHELL
	if sh := os.Getenv("HELIOS_SHELL"); sh != "" {
		c.Shell.Path = sh
	}

	// HELIOS_HISTORY
	if h := os.Getenv("HELIOS_HISTORY"); h != "" {
		c.History.Path = h
	}

	// HELIOS_LOG_LEVEL
	if level := os.Getenv("HELIOS_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}

	// HELIOS_LOG_PATH
	if p := os.Getenv("HELIOS_LOG_PATH"); p != "" {
		c.Log.Path = p
	}
}

// normalizeURL turns a bare host:port into an http URL and drops a trailing
// slash.
func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	return strings.TrimRight(raw, "/")
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
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	u, err := url.Parse(c.Ollama.URL)
	switch {
	case err != nil:
		errs = append(errs, ValidationError{
			Field:   "ollama.url",
			Message: fmt.Sprintf("invalid URL '%s': %v", c.Ollama.URL, err),
		})
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, ValidationError{
			Field:   "ollama.url",
			Message: fmt.Sprintf("invalid scheme '%s', must be http or https", u.Scheme),
		})
	case u.Host == "":
		errs = append(errs, ValidationError{
			Field:   "ollama.url",
			Message: fmt.Sprintf("URL '%s' has no host", c.Ollama.URL),
		})
	}

	if c.Ollama.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "ollama.timeout_secs",
			Message: fmt.Sprintf("timeout must not be negative, got %d", c.Ollama.TimeoutSecs),
		})
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
