// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the Chatty TUI application.

This package contains a collection of styled components built on top of the
Bubble Tea and Lip Gloss libraries. Each component is designed to be visually
polished and consistent with the Chatty design language.

# Core Components

## Display Components

Header (header.go) - Application header with the Chatty brand, engine URL, and reachability badge.
StatusBar (statusbar.go) - Bottom status bar with engine health, turn counts, and shortcuts.
CodeBlock (codeblock.go) - Syntax-highlighted code blocks using Chroma.

## Progress and Feedback

Spinner (spinner.go) - Animated spinner with customizable styles.
ThinkingIndicator (spinner.go) - Spinner wrapper shown while a reply is pending.

# Key Types

## Theme Integration

All components accept a *styles.Theme for consistent styling:

	theme := styles.NewTheme()
	header := components.NewHeader(theme)
	header.SetWidth(80)
	header.SetServerURL("http://127.0.0.1:8000")
	view := header.View()

## Bubble Tea Integration

The spinner implements the Bubble Tea Model interface:

	type Component interface {
		Init() tea.Cmd
		Update(tea.Msg) (Component, tea.Cmd)
		View() string
	}

# Helper Functions

The package includes shared helper functions in helpers.go:
  - toStr() - Integer to string conversion without fmt
  - fmtNumber() - Thousands-separated integer formatting
*/
package components
