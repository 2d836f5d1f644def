// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// =============================================================================
// DEFAULTS
// =============================================================================

// TestConfig_Default tests that Default() returns a valid config with defaults.
func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.ServerURL != "http://127.0.0.1:8000" {
		t.Errorf("Default ServerURL = %q, want %q", cfg.ServerURL, "http://127.0.0.1:8000")
	}
	if cfg.TopK != 3 {
		t.Errorf("Default TopK = %d, want 3", cfg.TopK)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("Default TimeoutSeconds = %d, want 30", cfg.TimeoutSeconds)
	}
	if cfg.UserID != "" {
		t.Errorf("Default UserID = %q, want empty (generated per session)", cfg.UserID)
	}
	if cfg.Markdown {
		t.Error("Default Markdown should be disabled")
	}
	if !cfg.Mouse {
		t.Error("Default Mouse should be enabled")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() config should validate, got %v", err)
	}
}

// TestGenerateUserID tests the per-session user identifier generator.
func TestGenerateUserID(t *testing.T) {
	id := GenerateUserID()
	if !strings.HasPrefix(id, "user-") {
		t.Errorf("GenerateUserID() = %q, want 'user-' prefix", id)
	}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateUserID()
		if seen[id] {
			t.Fatalf("GenerateUserID() produced duplicate %q", id)
		}
		seen[id] = true
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// TestConfig_Validate tests configuration validation.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid default config",
			config:  Default(),
			wantErr: false,
		},
		{
			name: "empty server url",
			config: func() *Config {
				c := Default()
				c.ServerURL = ""
				return c
			}(),
			wantErr: true,
		},
		{
			name: "invalid scheme",
			config: func() *Config {
				c := Default()
				c.ServerURL = "ftp://example.com"
				return c
			}(),
			wantErr: true,
		},
		{
			name: "missing host",
			config: func() *Config {
				c := Default()
				c.ServerURL = "http://"
				return c
			}(),
			wantErr: true,
		},
		{
			name: "https url is fine",
			config: func() *Config {
				c := Default()
				c.ServerURL = "https://chat.example.com:8443"
				return c
			}(),
			wantErr: false,
		},
		{
			name: "negative top_k",
			config: func() *Config {
				c := Default()
				c.TopK = -1
				return c
			}(),
			wantErr: true,
		},
		{
			name: "zero top_k is fine",
			config: func() *Config {
				c := Default()
				c.TopK = 0
				return c
			}(),
			wantErr: false,
		},
		{
			name: "zero timeout",
			config: func() *Config {
				c := Default()
				c.TimeoutSeconds = 0
				return c
			}(),
			wantErr: true,
		},
		{
			name: "negative timeout",
			config: func() *Config {
				c := Default()
				c.TimeoutSeconds = -5
				return c
			}(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestConfig_ValidateCollectsAllErrors tests that every invalid field is reported.
func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := &Config{ServerURL: "", TopK: -1, TimeoutSeconds: 0}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail for a fully invalid config")
	}

	verrs, ok := err.(ValidateErrors)
	if !ok {
		t.Fatalf("Validate() error type = %T, want ValidateErrors", err)
	}
	if len(verrs) != 3 {
		t.Errorf("Validate() returned %d errors, want 3: %v", len(verrs), verrs)
	}
	if !strings.Contains(verrs.Error(), "; ") {
		t.Errorf("ValidateErrors.Error() = %q, want multiple errors joined with ';'", verrs.Error())
	}
}

// TestValidationError_Error tests the single-error format.
func TestValidationError_Error(t *testing.T) {
	e := ValidationError{Field: "server_url", Message: "must not be empty"}
	if got := e.Error(); got != "server_url: must not be empty" {
		t.Errorf("Error() = %q, want %q", got, "server_url: must not be empty")
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// TestConfig_ApplyEnvOverrides tests environment variable overrides.
func TestConfig_ApplyEnvOverrides(t *testing.T) {
	t.Setenv("CHATTY_SERVER_URL", "http://engine.internal:9000")
	t.Setenv("CHATTY_USER_ID", "user-override")
	t.Setenv("CHATTY_TOP_K", "7")
	t.Setenv("CHATTY_TIMEOUT", "60")
	t.Setenv("CHATTY_MARKDOWN", "true")
	t.Setenv("CHATTY_MOUSE", "0")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.ServerURL != "http://engine.internal:9000" {
		t.Errorf("ServerURL = %q, want env override", cfg.ServerURL)
	}
	if cfg.UserID != "user-override" {
		t.Errorf("UserID = %q, want 'user-override'", cfg.UserID)
	}
	if cfg.TopK != 7 {
		t.Errorf("TopK = %d, want 7", cfg.TopK)
	}
	if cfg.TimeoutSeconds != 60 {
		t.Errorf("TimeoutSeconds = %d, want 60", cfg.TimeoutSeconds)
	}
	if !cfg.Markdown {
		t.Error("Markdown should be enabled by CHATTY_MARKDOWN=true")
	}
	if cfg.Mouse {
		t.Error("Mouse should be disabled by CHATTY_MOUSE=0")
	}
}

// TestConfig_ApplyEnvOverridesIgnoresInvalidNumbers tests that junk numeric
// values leave the previous setting in place.
func TestConfig_ApplyEnvOverridesIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("CHATTY_TOP_K", "lots")
	t.Setenv("CHATTY_TIMEOUT", "soon")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.TopK != 3 {
		t.Errorf("TopK = %d, want default 3 for invalid override", cfg.TopK)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want default 30 for invalid override", cfg.TimeoutSeconds)
	}
}

// =============================================================================
// FILE LOADING
// =============================================================================

// TestLoadFromPath_TOML tests loading a TOML config file.
func TestLoadFromPath_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "server_url = \"http://10.0.0.5:8000\"\ntop_k = 5\nmarkdown = true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.ServerURL != "http://10.0.0.5:8000" {
		t.Errorf("ServerURL = %q, want file value", cfg.ServerURL)
	}
	if cfg.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.TopK)
	}
	if !cfg.Markdown {
		t.Error("Markdown should be enabled by file")
	}
	// Missing fields fall back to defaults; the user id stays unpinned.
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want default 30", cfg.TimeoutSeconds)
	}
	if cfg.UserID != "" {
		t.Errorf("UserID = %q, want empty when the file pins none", cfg.UserID)
	}
}

// TestLoadFromPath_JSON tests loading a JSON config file.
func TestLoadFromPath_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"server_url": "http://10.0.0.6:8000", "user_id": "user-json", "timeout_seconds": 45}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.ServerURL != "http://10.0.0.6:8000" {
		t.Errorf("ServerURL = %q, want file value", cfg.ServerURL)
	}
	if cfg.UserID != "user-json" {
		t.Errorf("UserID = %q, want 'user-json'", cfg.UserID)
	}
	if cfg.TimeoutSeconds != 45 {
		t.Errorf("TimeoutSeconds = %d, want 45", cfg.TimeoutSeconds)
	}
}

// TestLoadFromPath_BrokenTOML tests that parse failures surface as errors.
func TestLoadFromPath_BrokenTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("server_url = [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("LoadFromPath() should fail for broken TOML")
	}
}

// TestLoadFromPath_InvalidValues tests that validation runs after loading.
func TestLoadFromPath_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("server_url = \"ftp://nope\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("LoadFromPath() should reject a non-http server_url")
	}
}

// TestConfig_Timeout tests the duration conversion.
func TestConfig_Timeout(t *testing.T) {
	cfg := &Config{TimeoutSeconds: 45}
	if got := cfg.Timeout(); got != 45*time.Second {
		t.Errorf("Timeout() = %v, want 45s", got)
	}
}

// =============================================================================
// GLOBAL SINGLETON
// =============================================================================

// TestConfig_ConcurrentAccess tests that Global(), SetGlobal(), and ReloadGlobal()
// can be safely called concurrently without race conditions.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup

	// 50 writers using SetGlobal, 50 readers using Global
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			c := Default()
			c.UserID = "user-concurrent"
			SetGlobal(c)
		}()

		go func() {
			defer wg.Done()
			cfg := Global()
			if cfg == nil {
				t.Error("Global() returned nil")
			}
		}()
	}

	wg.Wait()
}

// TestConfig_GlobalInitialization tests that Global() properly initializes
// the config on first access.
func TestConfig_GlobalInitialization(t *testing.T) {
	ResetGlobalForTesting()

	cfg := Global()
	if cfg == nil {
		t.Fatal("Global() returned nil")
	}

	if cfg.ServerURL == "" {
		t.Error("Global config should have a server URL")
	}
}

// TestConfig_SetGlobalOverwrites tests that SetGlobal properly overwrites
// the existing global config.
func TestConfig_SetGlobalOverwrites(t *testing.T) {
	ResetGlobalForTesting()

	_ = Global()

	customCfg := Default()
	customCfg.ServerURL = "http://custom:8000"
	customCfg.UserID = "user-custom"
	SetGlobal(customCfg)

	result := Global()
	if result.ServerURL != "http://custom:8000" {
		t.Errorf("Expected server URL 'http://custom:8000', got '%s'", result.ServerURL)
	}
	if result.UserID != "user-custom" {
		t.Errorf("Expected user id 'user-custom', got '%s'", result.UserID)
	}
}

// =============================================================================
// FILE WATCHER
// =============================================================================

// TestWatcher_ReloadsOnWrite tests that a config rewrite reaches the callback.
func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("server_url = \"http://127.0.0.1:8000\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 4)
	w, err := NewWatcher(path, 50*time.Millisecond, func(cfg *Config) {
		reloaded <- cfg
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := w.Watch(); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("server_url = \"http://127.0.0.1:9999\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.ServerURL != "http://127.0.0.1:9999" {
			t.Errorf("reloaded ServerURL = %q, want rewritten value", cfg.ServerURL)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("watcher did not deliver reloaded config")
	}
}

// TestWatcher_IgnoresUnrelatedFiles tests that sibling files do not trigger reloads.
func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("server_url = \"http://127.0.0.1:8000\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 4)
	w, err := NewWatcher(path, 50*time.Millisecond, func(cfg *Config) {
		reloaded <- cfg
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := w.Watch(); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("unrelated"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
		t.Error("watcher reloaded for an unrelated file")
	case <-time.After(500 * time.Millisecond):
	}
}

// TestWatcher_SkipsBrokenRewrite tests that an invalid rewrite is not delivered.
func TestWatcher_SkipsBrokenRewrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("server_url = \"http://127.0.0.1:8000\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 4)
	w, err := NewWatcher(path, 50*time.Millisecond, func(cfg *Config) {
		reloaded <- cfg
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := w.Watch(); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("server_url = [broken"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		t.Errorf("watcher delivered config from a broken file: %+v", cfg)
	case <-time.After(500 * time.Millisecond):
	}
}
