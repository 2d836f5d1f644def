// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

// =============================================================================
// CONFIG STRUCTURE
// =============================================================================

// Config represents the complete chatty configuration.
type Config struct {
	// ServerURL is the base URL of the chat engine.
	ServerURL string `toml:"server_url" json:"server_url"`
	// UserID identifies this client to the engine. When empty, a fresh
	// per-session identifier is generated at load time.
	UserID string `toml:"user_id" json:"user_id"`
	// TopK is the number of passages the engine retrieves per question.
	// Zero means the engine's own default.
	TopK int `toml:"top_k" json:"top_k"`
	// TimeoutSeconds bounds each engine request.
	TimeoutSeconds int `toml:"timeout_seconds" json:"timeout_seconds"`
	// Markdown renders bot answers through the terminal markdown renderer.
	Markdown bool `toml:"markdown" json:"markdown"`
	// Mouse enables mouse wheel scrolling in the transcript viewport.
	Mouse bool `toml:"mouse" json:"mouse"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		ServerURL:      "http://127.0.0.1:8000",
		UserID:         "", // generated per session, see GenerateUserID
		TopK:           3,
		TimeoutSeconds: 30,
		Markdown:       false,
		Mouse:          true,
	}
}

// GenerateUserID returns a fresh per-session user identifier.
func GenerateUserID() string {
	return "user-" + uuid.New().String()
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the chatty configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "chatty"), nil
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

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	// Try TOML first
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	// Try JSON as fallback
	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	// No config file (or unreadable): defaults plus env overrides.
	cfg, err = finishLoad(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Files ending in .json decode as JSON, everything else as TOML.
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

	return finishLoad(cfg)
}

// finishLoad applies env overrides and validates. UserID stays empty unless
// the file or environment pins one: the session layer generates its own
// identifier, and a reload must not mint a fresh identity mid-conversation.
func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadJSON loads configuration from a JSON file.
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

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) error {
	defaults := Default()

	if cfg.ServerURL == "" {
		cfg.ServerURL = defaults.ServerURL
	}
	if cfg.TopK == 0 {
		cfg.TopK = defaults.TopK
	}
	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = defaults.TimeoutSeconds
	}

	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CHATTY_SERVER_URL: overrides server_url
//   - CHATTY_USER_ID: overrides user_id
//   - CHATTY_TOP_K: overrides top_k
//   - CHATTY_TIMEOUT: overrides timeout_seconds
//   - CHATTY_MARKDOWN: set to "1" or "true" to enable markdown rendering
//   - CHATTY_MOUSE: set to "0" or "false" to disable mouse support
func (c *Config) ApplyEnvOverrides() {
	if serverURL := os.Getenv("CHATTY_SERVER_URL"); serverURL != "" {
		c.ServerURL = serverURL
	}

	if userID := os.Getenv("CHATTY_USER_ID"); userID != "" {
		c.UserID = userID
	}

	if topK := os.Getenv("CHATTY_TOP_K"); topK != "" {
		if n, err := strconv.Atoi(topK); err == nil {
			c.TopK = n
		}
	}

	if timeout := os.Getenv("CHATTY_TIMEOUT"); timeout != "" {
		if n, err := strconv.Atoi(timeout); err == nil {
			c.TimeoutSeconds = n
		}
	}

	if markdown := os.Getenv("CHATTY_MARKDOWN"); markdown != "" {
		c.Markdown = markdown == "1" || strings.ToLower(markdown) == "true"
	}

	if mouse := os.Getenv("CHATTY_MOUSE"); mouse != "" {
		c.Mouse = mouse == "1" || strings.ToLower(mouse) == "true"
	}
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

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.ServerURL == "" {
		errs = append(errs, ValidationError{
			Field:   "server_url",
			Message: "must not be empty",
		})
	} else {
		u, err := url.Parse(c.ServerURL)
		switch {
		case err != nil:
			errs = append(errs, ValidationError{
				Field:   "server_url",
				Message: fmt.Sprintf("invalid URL: %v", err),
			})
		case u.Scheme != "http" && u.Scheme != "https":
			errs = append(errs, ValidationError{
				Field:   "server_url",
				Message: fmt.Sprintf("scheme must be http or https, got '%s'", u.Scheme),
			})
		case u.Host == "":
			errs = append(errs, ValidationError{
				Field:   "server_url",
				Message: "missing host",
			})
		}
	}

	if c.TopK < 0 {
		errs = append(errs, ValidationError{
			Field:   "top_k",
			Message: fmt.Sprintf("must be non-negative, got %d", c.TopK),
		})
	}

	if c.TimeoutSeconds <= 0 {
		errs = append(errs, ValidationError{
			Field:   "timeout_seconds",
			Message: fmt.Sprintf("must be positive, got %d", c.TimeoutSeconds),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Timeout returns the request timeout as a time.Duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			// Log but don't fail - use defaults
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
