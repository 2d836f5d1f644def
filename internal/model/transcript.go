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
// TRANSCRIPT TYPE
// =============================================================================

// Transcript holds the ordered conversation history for one session.
// It is strictly append-only: turns are never edited, reordered, or removed,
// so insertion order is display order for the lifetime of the session.
// The turn slice is unexported to keep that invariant out of reach.
type Transcript struct {
	// Identity
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	turns []Turn
}

// NewTranscript creates an empty transcript with a generated ID.
func NewTranscript() *Transcript {
	now := time.Now()
	return &Transcript{
		ID:        generateTranscriptID(),
		CreatedAt: now,
		UpdatedAt: now,
		turns:     make([]Turn, 0),
	}
}

// =============================================================================
// TURN MANAGEMENT
// =============================================================================

// Append adds a turn to the end of the transcript.
func (tr *Transcript) Append(t Turn) {
	tr.turns = append(tr.turns, t)
	tr.UpdatedAt = time.Now()
}

// AddUserTurn creates and appends a user turn, returning the stored turn.
func (tr *Transcript) AddUserTurn(text string) Turn {
	t := NewUserTurn(text)
	tr.Append(t)
	return t
}

// AddBotTurn creates and appends a bot turn with no reply metadata.
// Callers that have metadata build the turn themselves and use Append.
func (tr *Transcript) AddBotTurn(text string) Turn {
	t := NewBotTurn(text)
	tr.Append(t)
	return t
}

// AddSystemTurn creates and appends a system turn, returning the stored turn.
func (tr *Transcript) AddSystemTurn(text string) Turn {
	t := NewSystemTurn(text)
	tr.Append(t)
	return t
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Turns returns a copy of the turn list in insertion order.
func (tr *Transcript) Turns() []Turn {
	out := make([]Turn, len(tr.turns))
	copy(out, tr.turns)
	return out
}

// At returns the turn at index i.
func (tr *Transcript) At(i int) (Turn, bool) {
	if i < 0 || i >= len(tr.turns) {
		return Turn{}, false
	}
	return tr.turns[i], true
}

// Last returns the most recent turn.
func (tr *Transcript) Last() (Turn, bool) {
	if len(tr.turns) == 0 {
		return Turn{}, false
	}
	return tr.turns[len(tr.turns)-1], true
}

// LastBotTurn returns the most recent bot turn.
func (tr *Transcript) LastBotTurn() (Turn, bool) {
	for i := len(tr.turns) - 1; i >= 0; i-- {
		if tr.turns[i].Origin == OriginBot {
			return tr.turns[i], true
		}
	}
	return Turn{}, false
}

// LastFollowUp returns the follow-up suggestion of the most recent bot turn
// that carries one.
func (tr *Transcript) LastFollowUp() (string, bool) {
	for i := len(tr.turns) - 1; i >= 0; i-- {
		if tr.turns[i].Origin == OriginBot && tr.turns[i].HasFollowUp() {
			return tr.turns[i].FollowUp, true
		}
	}
	return "", false
}

// Len returns the number of turns.
func (tr *Transcript) Len() int {
	return len(tr.turns)
}

// IsEmpty returns true if there are no turns.
func (tr *Transcript) IsEmpty() bool {
	return len(tr.turns) == 0
}

// CountByOrigin returns the number of turns with the given origin.
func (tr *Transcript) CountByOrigin(o Origin) int {
	n := 0
	for _, t := range tr.turns {
		if t.Origin == o {
			n++
		}
	}
	return n
}

// Preview returns a short preview of the latest user turn, or of the first
// turn when the user has not written yet.
func (tr *Transcript) Preview() string {
	if len(tr.turns) == 0 {
		return "Empty conversation"
	}
	for i := len(tr.turns) - 1; i >= 0; i-- {
		if tr.turns[i].Origin == OriginUser {
			return tr.turns[i].Preview(100)
		}
	}
	return tr.turns[0].Preview(100)
}

// Clone creates a deep copy of the transcript.
func (tr *Transcript) Clone() *Transcript {
	clone := &Transcript{
		ID:        tr.ID,
		CreatedAt: tr.CreatedAt,
		UpdatedAt: tr.UpdatedAt,
		turns:     make([]Turn, len(tr.turns)),
	}
	copy(clone.turns, tr.turns)
	for i := range clone.turns {
		if tr.turns[i].Sources != nil {
			clone.turns[i].Sources = append([]string(nil), tr.turns[i].Sources...)
		}
		if tr.turns[i].Followups != nil {
			clone.turns[i].Followups = append([]string(nil), tr.turns[i].Followups...)
		}
	}
	return clone
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateTranscriptID creates a unique transcript ID.
func generateTranscriptID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "conv_" + hex.EncodeToString(bytes)
}
