// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view component for the TUI.
//
// This file contains the question submission pipeline: normalization,
// validation, the optimistic user turn, and follow-up activation.
package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/unicode/norm"

	"github.com/shramanth-sulake/ai-chat-bot/internal/ui/components"
)

// =============================================================================
// QUESTION SUBMISSION
// =============================================================================

// submit sends a question to the engine: the explicit text when non-empty
// (follow-up activation), otherwise the current draft.
//
// The pipeline is: NFC-normalize, trim, validate, clear any standing error,
// append exactly one user turn optimistically, reset the draft (only when it
// was the source), enter the awaiting state, and issue the command that
// settles as exactly one ReplyMsg or ReplyErrMsg.
//
// submit itself does not refuse to run while awaiting: the Send key is
// ignored in that state, but a direct second call appends a second user turn
// and issues a second request, each settling independently. Exclusion is
// advisory, enforced at the key handler.
func (m Model) submit(question string) (tea.Model, tea.Cmd) {
	text := question
	fromDraft := text == ""
	if fromDraft {
		text = m.composer.Value()
	}

	// UNICODE: normalize before trimming so composed and decomposed input
	// produce the same question text.
	text = strings.TrimSpace(norm.NFC.String(text))

	if text == "" {
		banner := NewErrorMsg("Nothing to Send", "Type a question first.")
		m.lastError = &banner
		return m, nil
	}

	// A new send clears any standing error.
	m.lastError = nil

	// Optimistic append: the question is visible before the engine answers.
	m.transcript.AddUserTurn(text)

	if fromDraft {
		m.composer.Reset()
	}

	m.state = StateAwaiting
	m.statusBar.SetStatus(components.StatusAwaiting)

	m.syncCounts()
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		m.submitQuestionCmd(text),
		m.thinking.Start(),
	)
}

// activateFollowUp submits the most recent follow-up suggestion. The draft
// is untouched: the suggestion is sent, not the composer text.
func (m Model) activateFollowUp() (tea.Model, tea.Cmd) {
	followUp, ok := m.transcript.LastFollowUp()
	if !ok {
		m.notice = "No follow-up to ask"
		return m, nil
	}
	return m.submit(followUp)
}
