// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view component for the TUI.
//
// This file defines the asynchronous commands that talk to the chat engine.
// Every submission settles as exactly one ReplyMsg or ReplyErrMsg; the
// greeting command never fails outward.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shramanth-sulake/ai-chat-bot/internal/engine"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// Probe and greeting timeouts. Question submissions use the configured
// client timeout instead, so timeout_seconds in the config is honored.
const (
	healthTimeout   = 5 * time.Second
	greetingTimeout = 10 * time.Second
)

// checkHealthCmd probes the engine's health endpoint once. The result only
// drives the status indicators; it never produces a turn or a banner.
func (m Model) checkHealthCmd() tea.Cmd {
	client := m.engine
	return func() tea.Msg {
		if client == nil {
			return HealthMsg{Online: false}
		}

		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()

		err := client.CheckHealth(ctx)
		return HealthMsg{Online: err == nil, Err: err}
	}
}

// fetchGreetingCmd fetches the engine's opening message. On any failure it
// substitutes the built-in fallback greeting, so startup never surfaces a
// transport error.
func (m Model) fetchGreetingCmd() tea.Cmd {
	client := m.engine
	return func() tea.Msg {
		if client == nil {
			fallback := engine.FallbackGreeting()
			return GreetingMsg{Reply: &fallback, Fallback: true}
		}

		ctx, cancel := context.WithTimeout(context.Background(), greetingTimeout)
		defer cancel()

		reply, err := client.FetchGreeting(ctx)
		if err != nil || reply == nil {
			fallback := engine.FallbackGreeting()
			return GreetingMsg{Reply: &fallback, Fallback: true}
		}
		return GreetingMsg{Reply: reply}
	}
}

// submitQuestionCmd sends one question to the engine. The closure captures
// the client and user ID so a config reload mid-flight cannot redirect an
// already-submitted question.
func (m Model) submitQuestionCmd(question string) tea.Cmd {
	client := m.engine
	userID := m.userID
	return func() tea.Msg {
		if client == nil {
			return ReplyErrMsg{Err: engine.ErrEngineUnreachable, Question: question}
		}

		ctx, cancel := context.WithTimeout(context.Background(), client.GetConfig().Timeout)
		defer cancel()

		start := time.Now()
		reply, err := client.SubmitQuestion(ctx, userID, question)
		if err != nil {
			return ReplyErrMsg{Err: err, Question: question}
		}
		return ReplyMsg{Reply: reply, Question: question, Elapsed: time.Since(start)}
	}
}
