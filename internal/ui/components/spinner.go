// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the Chatty TUI.
package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shramanth-sulake/ai-chat-bot/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner is a customizable loading spinner component.
type Spinner struct {
	// Core spinner from bubbles
	spinner spinner.Model

	// Configuration
	message   string
	detail    string
	startTime time.Time

	// State
	isActive  bool
	showTimer bool
}

// SpinnerStyle defines the visual style for the spinner.
type SpinnerStyle int

const (
	SpinnerLine  SpinnerStyle = iota // Line rotation (default)
	SpinnerDots                      // Classic dots
	SpinnerPulse                     // Pulsing circle
	SpinnerBlock                     // Block animation
)

// NewSpinner creates a new spinner with default ASCII-compatible settings.
func NewSpinner() Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: styles.LineSpinner.Frames,
		FPS:    styles.LineSpinner.Duration(),
	}

	return Spinner{
		spinner:   s,
		message:   "Loading",
		showTimer: true,
	}
}

// NewThinkingSpinner creates a spinner specifically for the awaiting state.
func NewThinkingSpinner() Spinner {
	s := NewSpinner()
	s.message = "Thinking"
	s.showTimer = true
	return s
}

// =============================================================================
// STYLE CONFIGURATION
// =============================================================================

// SetStyle changes the spinner animation style (ASCII-compatible styles).
func (s *Spinner) SetStyle(style SpinnerStyle) {
	var config styles.SpinnerConfig

	switch style {
	case SpinnerDots:
		config = styles.DotsSpinner
	case SpinnerPulse:
		config = styles.PulseSpinner
	case SpinnerBlock:
		config = styles.BlockSpinner
	default:
		config = styles.LineSpinner
	}

	s.spinner.Spinner = spinner.Spinner{
		Frames: config.Frames,
		FPS:    config.Duration(),
	}
}

// SetMessage sets the text displayed next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.message = msg
}

// SetDetail sets additional detail text below the spinner.
func (s *Spinner) SetDetail(detail string) {
	s.detail = detail
}

// SetShowTimer enables or disables the elapsed time display.
func (s *Spinner) SetShowTimer(show bool) {
	s.showTimer = show
}

// =============================================================================
// STATE MANAGEMENT
// =============================================================================

// Start activates the spinner and records the start time.
func (s *Spinner) Start() tea.Cmd {
	s.isActive = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.isActive = false
}

// IsActive returns whether the spinner is currently running.
func (s *Spinner) IsActive() bool {
	return s.isActive
}

// GetElapsed returns the duration since the spinner started.
func (s *Spinner) GetElapsed() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	return time.Since(s.startTime)
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the spinner.
func (s Spinner) Init() tea.Cmd {
	return nil
}

// Update handles messages for the spinner.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.isActive {
		return s, nil
	}

	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner.
func (s Spinner) View() string {
	if !s.isActive {
		return ""
	}

	// Spinner character
	spinnerView := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Render(s.spinner.View())

	// Message text
	messageView := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Render(s.message)

	// Animated dots
	dotsView := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Render("...")

	result := spinnerView + " " + messageView + dotsView

	// Add timer if enabled
	if s.showTimer && !s.startTime.IsZero() {
		elapsed := time.Since(s.startTime)
		timerView := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Render(" (" + formatElapsed(elapsed) + ")")
		result += timerView
	}

	// Add detail if present
	if s.detail != "" {
		detailView := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			PaddingLeft(2).
			Render(s.detail)
		result += "\n" + detailView
	}

	return result
}

// =============================================================================
// THINKING INDICATOR
// =============================================================================

// ThinkingIndicator is a specialized spinner for the awaiting state.
type ThinkingIndicator struct {
	spinner   Spinner
	startTime time.Time
}

// NewThinkingIndicator creates a new thinking indicator.
func NewThinkingIndicator() ThinkingIndicator {
	return ThinkingIndicator{
		spinner: NewThinkingSpinner(),
	}
}

// Start begins the thinking animation.
func (t *ThinkingIndicator) Start() tea.Cmd {
	t.startTime = time.Now()
	return t.spinner.Start()
}

// Stop ends the thinking animation.
func (t *ThinkingIndicator) Stop() {
	t.spinner.Stop()
}

// SetDetail sets the detail text (e.g., the question being answered)
func (t *ThinkingIndicator) SetDetail(detail string) {
	t.spinner.SetDetail(detail)
}

// IsActive returns whether thinking is active.
func (t *ThinkingIndicator) IsActive() bool {
	return t.spinner.IsActive()
}

// GetElapsed returns time spent thinking.
func (t *ThinkingIndicator) GetElapsed() time.Duration {
	if t.startTime.IsZero() {
		return 0
	}
	return time.Since(t.startTime)
}

// Update handles messages.
func (t ThinkingIndicator) Update(msg tea.Msg) (ThinkingIndicator, tea.Cmd) {
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return t, cmd
}

// View renders the thinking indicator.
func (t ThinkingIndicator) View() string {
	return t.spinner.View()
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// formatElapsed formats a duration for display.
func formatElapsed(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 60 {
		return toStr(seconds) + "s"
	}
	minutes := seconds / 60
	secs := seconds % 60
	return toStr(minutes) + "m " + toStr(secs) + "s"
}
