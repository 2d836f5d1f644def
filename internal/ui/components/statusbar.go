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
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the current application status
type Status int

const (
	StatusReady Status = iota
	StatusAwaiting
	StatusError
	StatusIdle
)

// String returns the display string for the status
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusAwaiting:
		return "Waiting for reply..."
	case StatusError:
		return "Error"
	case StatusIdle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success // Checkmark for ready
	case StatusAwaiting:
		return styles.StatusIndicators.Pending // Empty circle for in-flight
	case StatusError:
		return styles.StatusIndicators.Error // X mark for error
	case StatusIdle:
		return "-"
	default:
		return "?"
	}
}

// StatusBar represents the bottom status bar
type StatusBar struct {
	Status        Status // Current status
	ServerURL     string // Answer engine base URL
	EngineOnline  bool   // Last known engine reachability
	Questions     int    // User turns appended this session
	Replies       int    // Bot turns appended this session
	Width         int    // Available width
	ShowShortcuts bool   // Show keyboard shortcuts
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:        StatusReady,
		ServerURL:     "",
		EngineOnline:  false,
		Questions:     0,
		Replies:       0,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetServerURL updates the displayed engine base URL
func (s *StatusBar) SetServerURL(url string) {
	s.ServerURL = url
}

// SetEngineOnline updates the engine reachability indicator
func (s *StatusBar) SetEngineOnline(online bool) {
	s.EngineOnline = online
}

// SetTurnCounts updates the per-session question/reply counters
func (s *StatusBar) SetTurnCounts(questions, replies int) {
	s.Questions = questions
	s.Replies = replies
}

// View renders the status bar
func (s *StatusBar) View() string {
	// Choose layout based on width
	if s.Width < 60 {
		return s.viewNarrow()
	}
	if s.Width < 100 {
		return s.viewMedium()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals
// Format: [engine] Status
func (s *StatusBar) viewNarrow() string {
	parts := []string{}

	// Engine reachability (compact)
	parts = append(parts, s.getEngineStyle().Render(s.engineIndicator()))

	engineSection := "[" + strings.Join(parts, "|") + "]"

	// Status
	statusStyle := s.getStatusStyle()
	statusText := statusStyle.Render(s.Status.Icon())

	separator := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" ")

	result := engineSection + separator + statusText

	// Apply background
	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

// viewMedium renders a medium-width status bar
// Format: engine | url | N/M turns | Status
func (s *StatusBar) viewMedium() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	parts := []string{}

	// Engine reachability
	// ACCESSIBILITY: Uses high contrast colors for colorblind users
	parts = append(parts, s.getEngineStyle().Render(s.engineIndicator()+" engine"))

	// Engine URL (truncated if needed)
	if s.ServerURL != "" {
		urlStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		parts = append(parts, urlStyle.Render(util.TruncateRunes(s.ServerURL, 28)))
	}

	// Turn counters
	countStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	parts = append(parts, countStyle.Render(fmtNumber(s.Questions)+" asked"))

	// Status
	statusStyle := s.getStatusStyle()
	parts = append(parts, statusStyle.Render(s.Status.String()))

	result := strings.Join(parts, separator)

	// Apply background
	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// viewWide renders a full-featured status bar for wide terminals
// Format: engine | url | N asked | M answered ... Status ^C quit
func (s *StatusBar) viewWide() string {
	// Left section: engine reachability, URL, turn counters
	leftParts := []string{}

	engineBadge := s.getEngineStyle().Render(s.engineIndicator() + " engine")
	leftParts = append(leftParts, engineBadge)

	if s.ServerURL != "" {
		urlStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		leftParts = append(leftParts, urlStyle.Render(s.ServerURL))
	}

	countStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	leftParts = append(leftParts, countStyle.Render(fmtNumber(s.Questions)+" asked"))
	leftParts = append(leftParts, countStyle.Render(fmtNumber(s.Replies)+" answered"))

	leftSep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	leftSection := strings.Join(leftParts, leftSep)

	// Right section: status and shortcuts
	rightParts := []string{}

	statusStyle := s.getStatusStyle()
	rightParts = append(rightParts, statusStyle.Render(s.Status.String()))

	if s.ShowShortcuts {
		rightParts = append(rightParts, s.renderShortcuts())
	}

	rightSection := strings.Join(rightParts, " ")

	// Calculate spacing
	leftWidth := lipgloss.Width(leftSection)
	rightWidth := lipgloss.Width(rightSection)
	totalContent := leftWidth + rightWidth

	spacing := s.Width - totalContent - 4 // Account for padding
	if spacing < 4 {
		spacing = 4
	}

	result := leftSection + strings.Repeat(" ", spacing) + rightSection

	// Apply styled border for wide view
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(styles.Overlay).
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// ==========================================================================
// HELPER RENDER METHODS
// ==========================================================================

// renderShortcuts renders keyboard shortcut hints
func (s *StatusBar) renderShortcuts() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	shortcuts := []string{
		keyStyle.Render("Enter") + descStyle.Render("send"),
		keyStyle.Render("Tab") + descStyle.Render("follow-up"),
		keyStyle.Render("^C") + descStyle.Render("quit"),
	}

	return strings.Join(shortcuts, " ")
}

// engineIndicator returns the shape indicator for engine reachability
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (s *StatusBar) engineIndicator() string {
	if s.EngineOnline {
		return styles.AnimationStatusIndicators.Connected
	}
	return styles.AnimationStatusIndicators.Offline
}

// getEngineStyle returns the style for engine reachability
// ACCESSIBILITY: Uses high contrast colors with bold for colorblind users
func (s *StatusBar) getEngineStyle() lipgloss.Style {
	if s.EngineOnline {
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(styles.TextMuted)
}

// getStatusStyle returns the style for the current status
// ACCESSIBILITY: Uses high contrast colors with bold for colorblind users
func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady:
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	case StatusAwaiting:
		return lipgloss.NewStyle().Foreground(styles.InfoHighContrast).Bold(true)
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
	case StatusIdle:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}
