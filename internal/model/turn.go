// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation transcript.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// =============================================================================
// ORIGIN TYPE
// =============================================================================

// Origin identifies who authored a turn.
type Origin string

const (
	OriginUser   Origin = "user"
	OriginBot    Origin = "bot"
	OriginSystem Origin = "system"
)

// String returns the string representation of the origin.
func (o Origin) String() string {
	return string(o)
}

// DisplayName returns the label rendered next to each bubble.
func (o Origin) DisplayName() string {
	switch o {
	case OriginUser:
		return "You"
	case OriginBot:
		return "Chatty"
	case OriginSystem:
		return "System"
	default:
		return string(o)
	}
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn represents a single entry in the conversation transcript. A turn is
// created atomically with its final content and is never edited afterwards.
type Turn struct {
	// Identity
	ID        string
	Origin    Origin
	CreatedAt time.Time

	// Content
	Text string

	// Stamp is the display time label, captured once at creation so the
	// rendered history never shifts as the session crosses midnight.
	Stamp string

	// Reply metadata, populated for bot turns only. Confidence is the
	// engine's 0.0-1.0 score, Sources are citation strings in the engine's
	// order, FollowUp is the suggested next question ("" when none), and
	// Followups are the additional ranked suggestion texts.
	Confidence float64
	Sources    []string
	Cached     bool
	FollowUp   string
	Followups  []string
	Redacted   bool
}

// NewTurn creates a turn with a generated ID and a captured stamp.
func NewTurn(origin Origin, text string) Turn {
	now := time.Now()
	return Turn{
		ID:        generateTurnID(),
		Origin:    origin,
		Text:      text,
		CreatedAt: now,
		Stamp:     FormatStamp(now),
	}
}

// NewUserTurn creates a turn holding verbatim user input.
func NewUserTurn(text string) Turn {
	return NewTurn(OriginUser, text)
}

// NewBotTurn creates a turn holding resolved bot reply text. Reply metadata
// is assigned by the caller before the turn is appended.
func NewBotTurn(text string) Turn {
	return NewTurn(OriginBot, text)
}

// NewSystemTurn creates a turn holding an error description.
func NewSystemTurn(text string) Turn {
	return NewTurn(OriginSystem, text)
}

// =============================================================================
// TURN METHODS
// =============================================================================

// HasFollowUp reports whether the turn carries a follow-up suggestion.
func (t Turn) HasFollowUp() bool {
	return t.FollowUp != ""
}

// HasSources reports whether the turn carries source citations.
func (t Turn) HasSources() bool {
	return len(t.Sources) > 0
}

// IsEmpty returns true if the turn has no display text.
func (t Turn) IsEmpty() bool {
	return t.Text == ""
}

// Preview returns a truncated preview of the turn text.
// Uses rune-based truncation to handle Unicode correctly.
func (t Turn) Preview(maxLen int) string {
	runes := []rune(t.Text)
	if len(runes) <= maxLen {
		return t.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// FormatStamp formats a timestamp for display next to a turn.
// It uses smart formatting based on how recent the timestamp is:
//   - Today: just time (e.g., "15:04")
//   - This week: day and time (e.g., "Mon 15:04")
//   - Older: date and time (e.g., "Jan 2 15:04")
func FormatStamp(t time.Time) string {
	now := time.Now()

	// Today: just time
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}

	// This week: day and time
	if now.Sub(t) < 7*24*time.Hour {
		return t.Format("Mon 15:04")
	}

	// Older: date and time
	return t.Format("Jan 2 15:04")
}

// generateTurnID creates a unique turn ID. Collisions only matter within one
// session, where the ID serves as a rendering key.
func generateTurnID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "turn_" + hex.EncodeToString(bytes)
}
