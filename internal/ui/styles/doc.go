// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the Chatty TUI application.

This package defines the complete color palette, theme, and animation
system used throughout the application. All colors use Lip Gloss AdaptiveColor
for automatic light/dark terminal detection.

# Color System (colors.go)

## Primary Accent Colors

  - Cyan - Brand color for the bot, focus states, and shortcuts
  - Purple - Secondary accent for spinners and selections
  - Emerald - Success states and the engine-reachable indicator
  - Amber - Warnings, cached answers, and the system bubble
  - Rose - Errors and failed sends

## Semantic Colors

Turn bubbles use semantic color tokens keyed by origin:

	UserBubbleBg   - Background for user turns
	UserBubbleFg   - Text color for user turns
	BotBubbleBg    - Background for bot turns
	BotBubbleFg    - Text color for bot turns
	SystemBubbleBg - Background for system failure notices

## Surface Colors

Layered surface system for depth:

	Surface    - Main background
	SurfaceDim - Subtle backgrounds (headers, status bars)
	Overlay    - Borders and separators

## Text Colors

Hierarchical text color system:

	TextPrimary   - Main content text
	TextSecondary - Supporting text and origin labels
	TextMuted     - Timestamps and metadata footers
	TextInverse   - Text on colored backgrounds

# Theme System (theme.go)

The Theme struct provides runtime color adaptation:

	theme := styles.NewTheme()
	if theme.IsDark {
		// Dark terminal detected
	}
	if theme.HasTrueColor {
		// Terminal supports 16M colors
	}

# Animation System (animations.go)

Pre-defined spinner styles:

	LineSpinner - Simple line rotation
	DotsSpinner - Classic three-dot animation

## Status Indicators

ASCII indicators for various states:

	StatusIndicators.Success - [OK]
	StatusIndicators.Error   - [X]
	StatusIndicators.Warning - [!]
	StatusIndicators.Info    - [i]

# Usage Example

	import "github.com/shramanth-sulake/ai-chat-bot/internal/ui/styles"

	// Use adaptive colors
	headerStyle := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextPrimary)

	// Use theme for runtime detection
	theme := styles.NewTheme()
	bubble := theme.BotBubble.Render("Hi there!")
*/
package styles
