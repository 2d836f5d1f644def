// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the Chatty TUI.
package styles

import "time"

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// LineSpinner - Simple line rotation
var LineSpinner = SpinnerConfig{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    10,
}

// DotsSpinner - Classic three-dot animation
var DotsSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    6,
}

// PulseSpinner - Pulsing indicator
var PulseSpinner = SpinnerConfig{
	Frames: []string{"( )", "(.)", "(o)", "(O)", "(o)", "(.)", "( )", "   "},
	FPS:    8,
}

// BlockSpinner - Growing/shrinking progress
var BlockSpinner = SpinnerConfig{
	Frames: []string{"[    ]", "[=   ]", "[==  ]", "[=== ]", "[====]", "[ ===]", "[  ==]", "[   =]"},
	FPS:    15,
}

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	return time.Second / time.Duration(s.FPS)
}

// =============================================================================
// CONNECTION INDICATORS
// =============================================================================

// AnimationStatusIndicators for various states (ASCII-only for compatibility)
// Note: StatusIndicators in colors.go provides the primary shape indicators
var AnimationStatusIndicators = struct {
	Success   string
	Error     string
	Loading   string
	Connected string
	Offline   string
}{
	Success:   "[OK]",
	Error:     "[X]",
	Loading:   "[.]",
	Connected: "(+)",
	Offline:   "(-)",
}
