// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the Chatty TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shramanth-sulake/ai-chat-bot/internal/ui/styles"
	"github.com/shramanth-sulake/ai-chat-bot/internal/util"
)

// =============================================================================
// HEADER COMPONENT - Title bar with Chatty branding
// =============================================================================

// Header represents the title bar component
type Header struct {
	Title        string // Main title (default: "Chatty")
	ServerURL    string // Answer engine base URL
	EngineOnline bool   // Last known engine reachability
	Width        int    // Available width
	theme        *styles.Theme
}

// NewHeader creates a new Header component with default values
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title:        "Chatty",
		ServerURL:    "",
		EngineOnline: false,
		Width:        80,
		theme:        theme,
	}
}

// SetWidth updates the header width
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetServerURL updates the displayed engine base URL
func (h *Header) SetServerURL(url string) {
	h.ServerURL = url
}

// SetEngineOnline updates the engine reachability indicator
func (h *Header) SetEngineOnline(online bool) {
	h.EngineOnline = online
}

// View renders the header component
func (h *Header) View() string {
	// Ensure minimum width
	width := h.Width
	if width < 40 {
		width = 40
	}

	// Calculate inner width (accounting for borders and padding)
	innerWidth := width - 6

	// Brand title with accent styling
	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Cyan)

	accentStyle := lipgloss.NewStyle().
		Foreground(styles.Purple)

	brand := accentStyle.Render("< ") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(" >")

	// Subtitle line with engine URL and reachability
	subtitleParts := []string{}

	if h.ServerURL != "" {
		urlStyle := lipgloss.NewStyle().
			Foreground(styles.TextSecondary)
		subtitleParts = append(subtitleParts, urlStyle.Render(util.TruncateRunes(h.ServerURL, 40)))
	}

	engineBadge := h.getEngineStyle().Render(h.engineIndicator() + " engine")
	subtitleParts = append(subtitleParts, engineBadge)

	subtitle := strings.Join(subtitleParts, " ")

	// Center the content
	brandLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Render(brand)

	subtitleLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Foreground(styles.TextMuted).
		Render(subtitle)

	// Combine lines
	content := lipgloss.JoinVertical(lipgloss.Center, brandLine, subtitleLine)

	// Apply the border and styling
	headerBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Cyan).
		Background(styles.SurfaceDim).
		Padding(0, 2).
		Width(width)

	return headerBox.Render(content)
}

// ViewCompact renders a compact single-line header for narrow terminals
func (h *Header) ViewCompact() string {
	// Compact format: <Chatty> | url | (+)
	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Cyan)

	accentStyle := lipgloss.NewStyle().
		Foreground(styles.Purple)

	brand := accentStyle.Render("<") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(">")

	parts := []string{brand}

	if h.ServerURL != "" {
		urlStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted)
		parts = append(parts, urlStyle.Render(util.TruncateRunes(h.ServerURL, 24)))
	}

	parts = append(parts, h.getEngineStyle().Render(h.engineIndicator()))

	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	return strings.Join(parts, separator)
}

// engineIndicator returns the shape indicator for engine reachability
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (h *Header) engineIndicator() string {
	if h.EngineOnline {
		return styles.AnimationStatusIndicators.Connected
	}
	return styles.AnimationStatusIndicators.Offline
}

// getEngineStyle returns the appropriate style for the engine indicator
func (h *Header) getEngineStyle() lipgloss.Style {
	if h.EngineOnline {
		return lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Bold(true)
	}
	return lipgloss.NewStyle().
		Foreground(styles.TextMuted)
}
