// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chatty.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation. A file watcher reloads the
// configuration live when the file changes on disk.
//
// # Key Types
//
//   - Config: the complete configuration (engine URL, user id, UI knobs)
//   - ValidationError / ValidateErrors: structured validation failures
//   - Watcher: fsnotify-based live reload of the config file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CHATTY_*)
//   - ~/.config/chatty/config.toml
//   - ~/.config/chatty/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	url := cfg.ServerURL
//	timeout := cfg.Timeout()
package config
