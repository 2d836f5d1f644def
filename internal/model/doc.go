// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation transcript.
//
// This package defines the core domain types used throughout the application
// for representing the chat history shown to the user.
//
// # Key Types
//
//   - Transcript: Append-only container for one session's turns
//   - Turn: Single entry with origin, text, stamp, and bot reply metadata
//   - Origin: Turn author enumeration (user, bot, system)
//
// # Usage
//
// Create a transcript and append turns:
//
//	tr := model.NewTranscript()
//	tr.AddUserTurn("What are your opening hours?")
//
//	turn := model.NewBotTurn("We open at 9am.")
//	turn.Confidence = 0.92
//	turn.Sources = []string{"faq.xlsx | hours | row:3 | chunk:0"}
//	tr.Append(turn)
//
// Turns are immutable once appended; the transcript exposes read accessors
// only and never shrinks during a session.
package model
