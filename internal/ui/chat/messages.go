// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view component for the TUI.
//
// This file defines all Bubble Tea message types used by the chat interface.
// Messages are organized into the following categories:
//   - Engine: Greeting delivery, health probe results, and reply settlement
//   - Config: Live configuration reload
//   - Transcript: Saving the conversation to disk
//   - Errors: Error display and dismissal
//
// All message types follow Bubble Tea conventions and are immutable.
package chat

import (
	"errors"
	"fmt"
	"time"

	"github.com/shramanth-sulake/ai-chat-bot/internal/config"
	"github.com/shramanth-sulake/ai-chat-bot/internal/engine"
)

// =============================================================================
// ENGINE MESSAGES
// =============================================================================

// GreetingMsg delivers the opening reply fetched from the engine at startup.
// The reply is never nil: when the fetch fails the command substitutes the
// built-in fallback greeting, so startup never surfaces a transport error.
type GreetingMsg struct {
	Reply    *engine.ChatReply
	Fallback bool // True when the engine could not be reached
}

// HealthMsg reports the result of the startup health probe.
// The probe is advisory: it drives the status bar indicator and nothing else.
type HealthMsg struct {
	Online bool
	Err    error
}

// ReplyMsg delivers a successful engine reply for a submitted question.
// Exactly one ReplyMsg or ReplyErrMsg settles each submission.
type ReplyMsg struct {
	Reply    *engine.ChatReply
	Question string
	Elapsed  time.Duration
}

// ReplyErrMsg reports a failed submission. Exactly one ReplyMsg or
// ReplyErrMsg settles each submission.
type ReplyErrMsg struct {
	Err      error
	Question string
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a freshly validated config after the config file
// changed on disk. Sent into the program from the file watcher in main.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// =============================================================================
// TRANSCRIPT MESSAGES
// =============================================================================

// TranscriptSavedMsg reports the outcome of writing the transcript to disk.
type TranscriptSavedMsg struct {
	Path  string
	Error error
}

// =============================================================================
// ERROR MESSAGES
// =============================================================================

// ErrorMsg displays an error banner to the user.
type ErrorMsg struct {
	Title       string
	Message     string
	Suggestions []string
	Dismissible bool
}

// ErrorDismissMsg dismisses the current error banner.
type ErrorDismissMsg struct{}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// NewErrorMsg creates a new dismissible error message.
// Use this for non-critical errors that users can dismiss.
func NewErrorMsg(title, message string) ErrorMsg {
	return ErrorMsg{
		Title:       title,
		Message:     message,
		Dismissible: true,
	}
}

// engineErrorMsg builds an error banner for a failed engine call, with
// suggestions derived from the typed error rather than string sniffing.
func engineErrorMsg(err error) ErrorMsg {
	return ErrorMsg{
		Title:       engineErrorTitle(err),
		Message:     err.Error(),
		Suggestions: engineErrorSuggestions(err),
		Dismissible: true,
	}
}

// engineErrorTitle maps a transport error to a short banner title.
func engineErrorTitle(err error) string {
	switch {
	case engine.IsUnreachable(err):
		return "Engine Unreachable"
	case engine.IsTimeout(err):
		return "Request Timed Out"
	default:
		if status, _, ok := engine.IsHTTPStatus(err); ok {
			return fmt.Sprintf("Engine Error (HTTP %d)", status)
		}
		return "Request Failed"
	}
}

// engineErrorSuggestions returns actionable hints for a transport error.
func engineErrorSuggestions(err error) []string {
	switch {
	case engine.IsUnreachable(err):
		return []string{
			"Start the chat engine and try again",
			"Check server_url in ~/.config/chatty/config.toml",
		}
	case engine.IsTimeout(err):
		return []string{
			"Try again",
			"Raise timeout_seconds in the config if the engine is slow",
		}
	default:
		var clientErr *engine.ClientError
		if errors.As(err, &clientErr) && clientErr.Type == engine.ErrTypeInvalidResponse {
			return []string{"Check that server_url points at a chat engine"}
		}
		return nil
	}
}
