// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the Chatty TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	HeaderBrand    lipgloss.Style

	// ==========================================================================
	// TURN BUBBLE STYLES
	// ==========================================================================

	UserBubble   lipgloss.Style
	BotBubble    lipgloss.Style
	SystemBubble lipgloss.Style

	// ==========================================================================
	// TURN LABEL AND METADATA STYLES
	// ==========================================================================

	OriginLabel  lipgloss.Style
	Timestamp    lipgloss.Style
	MetaFooter   lipgloss.Style
	FollowUpHint lipgloss.Style

	// ==========================================================================
	// COMPOSER STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style
	CharCount        lipgloss.Style
	CharCountWarning lipgloss.Style
	CharCountDanger  lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar     lipgloss.Style
	StatusBarWide lipgloss.Style
	EngineUp      lipgloss.Style
	EngineDown    lipgloss.Style
	ShortcutKey   lipgloss.Style
	ShortcutDesc  lipgloss.Style

	// ==========================================================================
	// SPINNER AND AWAITING STYLES
	// ==========================================================================

	Spinner        lipgloss.Style
	ThinkingText   lipgloss.Style
	ThinkingDots   lipgloss.Style
	ThinkingTime   lipgloss.Style
	ThinkingDetail lipgloss.Style

	// ==========================================================================
	// CODE BLOCK STYLES
	// ==========================================================================

	CodeBlock     lipgloss.Style
	CodeLangBadge lipgloss.Style
	CodeLineNum   lipgloss.Style

	// ==========================================================================
	// ERROR BANNER STYLES
	// ==========================================================================

	ErrorBox        lipgloss.Style
	ErrorTitle      lipgloss.Style
	ErrorMessage    lipgloss.Style
	ErrorSuggestion lipgloss.Style

	// ==========================================================================
	// WELCOME SCREEN STYLES
	// ==========================================================================

	WelcomeBox      lipgloss.Style
	WelcomeLogo     lipgloss.Style
	WelcomeVersion  lipgloss.Style
	WelcomeInfo     lipgloss.Style
	WelcomeKey      lipgloss.Style
	WelcomePressKey lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT STATISTICS STYLES
	// ==========================================================================

	StatsBar   lipgloss.Style
	StatsLabel lipgloss.Style
	StatsValue lipgloss.Style

	// ==========================================================================
	// ACCESSIBILITY: Status indicator styles with shapes and high contrast
	// ==========================================================================

	// SuccessStyle - Used for success states with checkmark indicator
	SuccessStyle lipgloss.Style
	// ErrorStyle - Used for error states with X mark indicator
	ErrorStyle lipgloss.Style
	// WarningStyle - Used for warning states with warning triangle indicator
	WarningStyle lipgloss.Style
	// InfoStyle - Used for info states with info circle indicator
	InfoStyle lipgloss.Style
	// LinkStyle - Used for links with underline for visual distinction
	LinkStyle lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	// Detect terminal capabilities
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 2).
		Align(lipgloss.Center)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	// Turn bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		Background(BotBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.SystemBubble = lipgloss.NewStyle().
		Foreground(SystemBubbleFg).
		Background(SystemBubbleBg).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(SystemBubbleBorder).
		Padding(0, 2).
		Align(lipgloss.Center)

	// Turn labels and metadata
	t.OriginLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.MetaFooter = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		PaddingLeft(2)

	t.FollowUpHint = lipgloss.NewStyle().
		Foreground(LinkColor).
		Underline(true).
		PaddingLeft(2)

	// Composer
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.CharCount = lipgloss.NewStyle().
		Foreground(TextMuted).
		Align(lipgloss.Right)

	t.CharCountWarning = lipgloss.NewStyle().
		Foreground(Amber).
		Align(lipgloss.Right)

	t.CharCountDanger = lipgloss.NewStyle().
		Foreground(Rose).
		Align(lipgloss.Right)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusBarWide = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)

	t.EngineUp = lipgloss.NewStyle().
		Foreground(Emerald)

	t.EngineDown = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Spinner and awaiting
	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.ThinkingDots = lipgloss.NewStyle().
		Foreground(Purple)

	t.ThinkingTime = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ThinkingDetail = lipgloss.NewStyle().
		Foreground(TextMuted).
		PaddingLeft(2)

	// Code blocks
	t.CodeBlock = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 2)

	t.CodeLangBadge = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(Overlay).
		Padding(0, 1).
		Bold(true)

	t.CodeLineNum = lipgloss.NewStyle().
		Foreground(TextMuted).
		Width(4).
		Align(lipgloss.Right).
		MarginRight(1)

	// Error banner
	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Rose).
		Background(RoseDeep).
		Padding(1, 2)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ErrorSuggestion = lipgloss.NewStyle().
		Foreground(TextSecondary).
		PaddingLeft(2)

	// Welcome screen
	t.WelcomeBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Cyan).
		Padding(2, 4).
		Align(lipgloss.Center)

	t.WelcomeLogo = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.WelcomeVersion = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.WelcomeInfo = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.WelcomeKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.WelcomePressKey = lipgloss.NewStyle().
		Foreground(Purple).
		Blink(true)

	// Transcript statistics
	t.StatsBar = lipgloss.NewStyle().
		Foreground(TextMuted).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.StatsLabel = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StatsValue = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	// ==========================================================================
	// ACCESSIBILITY: Status indicator styles with shapes and high contrast
	// ==========================================================================

	// SuccessStyle - High contrast green with bold for colorblind accessibility
	// ACCESSIBILITY: Use with StatusIndicators.Success symbol
	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessHighContrast).
		Bold(true)

	// ErrorStyle - High contrast red with bold for colorblind accessibility
	// ACCESSIBILITY: Use with StatusIndicators.Error symbol
	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)

	// WarningStyle - High contrast amber with bold for colorblind accessibility
	// ACCESSIBILITY: Use with StatusIndicators.Warning symbol
	t.WarningStyle = lipgloss.NewStyle().
		Foreground(WarningHighContrast).
		Bold(true)

	// InfoStyle - High contrast blue with bold for colorblind accessibility
	// ACCESSIBILITY: Use with StatusIndicators.Info symbol
	t.InfoStyle = lipgloss.NewStyle().
		Foreground(InfoHighContrast).
		Bold(true)

	// LinkStyle - Blue with underline for visual distinction beyond color
	// ACCESSIBILITY: Underline provides non-color visual cue for links
	t.LinkStyle = lipgloss.NewStyle().
		Foreground(LinkColor).
		Underline(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
