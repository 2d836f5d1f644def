// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the Chatty TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Cyan - Brand color, bot highlights, focus states
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// CyanDeep - Darker cyan for backgrounds
var CyanDeep = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#164E63"}

// Purple - Secondary accent, spinners, selections
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// PurpleDeep - Darker purple for backgrounds
var PurpleDeep = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#4C1D95"}

// Emerald - Success states, engine-reachable indicator
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// EmeraldDeep - Darker emerald for backgrounds
var EmeraldDeep = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#064E3B"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors, failed sends, danger states
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// RoseDeep - Darker rose for backgrounds
var RoseDeep = lipgloss.AdaptiveColor{Light: "#BE123C", Dark: "#881337"}

// Amber - Warnings, cached answers, caution states
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// AmberDeep - Darker amber for backgrounds
var AmberDeep = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#78350F"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Slightly darker/lighter surface for headers/footers
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// SurfaceBright - Slightly lighter/darker surface for highlights
var SurfaceBright = lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#313244"}

// Overlay - Borders, separators, subtle backgrounds
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// OverlayDim - Dimmer overlay for less prominent elements
var OverlayDim = lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#45475A"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, timestamps, very subtle text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// CHAT BUBBLE COLORS
// =============================================================================

// User turn bubble - Blue tones, right-aligned side of the transcript
var UserBubbleBg = lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1D4ED8"}
var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#E0F2FE"}
var UserBubbleBorder = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#3B82F6"}

// Bot turn bubble - Soft teal tones (muted, not saturated)
var BotBubbleBg = lipgloss.AdaptiveColor{Light: "#F0FDFA", Dark: "#134E4A"}
var BotBubbleFg = lipgloss.AdaptiveColor{Light: "#115E59", Dark: "#CCFBF1"}
var BotBubbleBorder = lipgloss.AdaptiveColor{Light: "#5EEAD4", Dark: "#2DD4BF"}

// System turn bubble - Amber/yellow tones for failure notices
var SystemBubbleBg = lipgloss.AdaptiveColor{Light: "#FEF3C7", Dark: "#78350F"}
var SystemBubbleFg = lipgloss.AdaptiveColor{Light: "#92400E", Dark: "#FEF3C7"}
var SystemBubbleBorder = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#F59E0B"}

// =============================================================================
// SPECIAL EFFECTS
// =============================================================================

// Focus ring color for the active composer border
var FocusRing = Cyan

// FocusRingDim - Border color when the composer is locked during a send
var FocusRingDim = lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#45475A"}

// Selection highlight
var SelectionBg = lipgloss.AdaptiveColor{Light: "#BFDBFE", Dark: "#1E3A5F"}

// =============================================================================
// ACCESSIBILITY: Shapes and high contrast for colorblind users
// =============================================================================

// StatusIndicatorSet contains text/shape indicators for status states.
// These symbols provide visual cues beyond color for colorblind accessibility.
type StatusIndicatorSet struct {
	Success string // Checkmark for success states
	Error   string // X mark for error states
	Warning string // Warning triangle for caution states
	Info    string // Info circle for informational states
	Pending string // Clock for pending/loading states
	Active  string // Dot for active/online states
}

// StatusIndicators provides accessible shape/text indicators alongside colors.
// ACCESSIBILITY: ASCII-only indicators for maximum compatibility and colorblind users.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]", // ASCII checkmark alternative
	Error:   "[X]",  // ASCII X mark alternative
	Warning: "[!]",  // ASCII warning alternative
	Info:    "[i]",  // ASCII info alternative
	Pending: "[ ]",  // ASCII empty for pending
	Active:  "[*]",  // ASCII filled for active
}

// =============================================================================
// ACCESSIBILITY: High-contrast color pairs for colorblind users
// =============================================================================

// High contrast success - Bright green with bold, works for most color blindness types
var SuccessHighContrast = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#22C55E"}

// High contrast error - Bright red with bold, distinct from green even for colorblind
var ErrorHighContrast = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}

// High contrast warning - Bright amber/orange, deuteranopia-friendly
var WarningHighContrast = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}

// High contrast info - Bright blue, distinct from red/green spectrum
var InfoHighContrast = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#3B82F6"}

// =============================================================================
// ACCESSIBILITY: Link style with underline for visual distinction
// =============================================================================

// LinkColor - Accessible link color with sufficient contrast
var LinkColor = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}

// =============================================================================
// ACCESSIBILITY: Helper functions for rendering accessible status messages
// =============================================================================

// RenderSuccess renders a success message with checkmark indicator and high contrast green.
// ACCESSIBILITY: Includes shape indicator for colorblind users.
func RenderSuccess(message string) string {
	style := lipgloss.NewStyle().
		Foreground(SuccessHighContrast).
		Bold(true)
	return style.Render(StatusIndicators.Success + " " + message)
}

// RenderError renders an error message with X mark indicator and high contrast red.
// ACCESSIBILITY: Includes shape indicator for colorblind users.
func RenderError(message string) string {
	style := lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)
	return style.Render(StatusIndicators.Error + " " + message)
}

// RenderWarning renders a warning message with warning triangle and high contrast amber.
// ACCESSIBILITY: Includes shape indicator for colorblind users.
func RenderWarning(message string) string {
	style := lipgloss.NewStyle().
		Foreground(WarningHighContrast).
		Bold(true)
	return style.Render(StatusIndicators.Warning + " " + message)
}

// RenderInfo renders an info message with info circle and high contrast blue.
// ACCESSIBILITY: Includes shape indicator for colorblind users.
func RenderInfo(message string) string {
	style := lipgloss.NewStyle().
		Foreground(InfoHighContrast).
		Bold(true)
	return style.Render(StatusIndicators.Info + " " + message)
}

// RenderStatus renders a status message based on success/failure with appropriate indicator.
// ACCESSIBILITY: Uses shapes and high contrast colors for colorblind users.
func RenderStatus(success bool, message string) string {
	if success {
		return RenderSuccess(message)
	}
	return RenderError(message)
}

// RenderLink renders text as an accessible link with underline.
// ACCESSIBILITY: Underline provides visual cue beyond color for links.
func RenderLink(text string) string {
	style := lipgloss.NewStyle().
		Foreground(LinkColor).
		Underline(true)
	return style.Render(text)
}
