// Chatty - A terminal chat client for the AI Chat Engine.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/shramanth-sulake/ai-chat-bot/internal/config"
	"github.com/shramanth-sulake/ai-chat-bot/internal/engine"
	"github.com/shramanth-sulake/ai-chat-bot/internal/ui/chat"
	"github.com/shramanth-sulake/ai-chat-bot/internal/ui/styles"
)

func main() {
	// USABILITY: TTY detection for proper terminal handling
	// The TUI owns the whole screen; refuse to start against a pipe.
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintf(os.Stderr, "Error: chatty is an interactive terminal program and requires a TTY\n")
		os.Exit(1)
	}

	// Load configuration at startup. A missing config file is fine; Global()
	// falls back to defaults and warns on stderr for anything worse.
	cfg := config.Global()

	// Initialize the theme
	theme := styles.NewTheme()

	// Create the engine client with config values
	client := engine.NewClientWithConfig(&engine.ClientConfig{
		BaseURL: cfg.ServerURL,
		Timeout: cfg.Timeout(),
		TopK:    cfg.TopK,
	})

	// Create the application model
	m := chat.NewWithClient(theme, client)

	// Create the Bubble Tea program
	opts := []tea.ProgramOption{
		tea.WithAltScreen(), // Use alternate screen buffer
	}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion()) // Enable mouse wheel scrolling
	}
	p := tea.NewProgram(m, opts...)

	// Watch the config file so edits land without a restart. Everything here
	// is advisory: the program runs fine with no config file and no watcher.
	if path, err := config.ConfigPathTOML(); err == nil {
		watcher, werr := config.NewWatcher(path, 0, func(next *config.Config) {
			config.SetGlobal(next)
			p.Send(chat.ConfigReloadedMsg{Config: next})
		})
		if werr == nil && watcher.Watch() == nil {
			defer watcher.Close()
		}
	}

	// Run the program
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running chatty: %v\n", err)
		os.Exit(1)
	}
}
