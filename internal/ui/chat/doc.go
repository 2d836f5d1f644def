// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main conversation view for the Chatty TUI.

The chat package implements a terminal question-and-answer interface using the
Bubble Tea framework, speaking to a Chatty answer engine over HTTP. One
question is in flight at a time; each submission settles into exactly one
reply or one failure notice in the transcript.

# Key Components

## Model (model.go)

The Model struct is the central Bubble Tea model that maintains all chat state:
  - The conversation transcript (user, bot, and system turns)
  - The composer with multi-line draft support
  - Viewport for transcript scrolling
  - Ready/Awaiting state gating submissions
  - The standing error banner and its dismissal

## View Rendering (view.go)

Rendering logic for the complete chat interface:
  - Header with engine URL and reachability indicator
  - Turn bubbles with origin-specific styling (user, bot, system)
  - Reply metadata: confidence, cache marker, sources, follow-up hints
  - Markdown answers through glamour, fenced code blocks highlighted
  - Status bar with turn counts and engine status

## Commands (update.go)

Asynchronous engine calls that settle as messages:
  - Greeting fetch on startup, with a canned fallback when the engine is down
  - Health probe updating the reachability indicators
  - Question submission with the configured timeout

## Input Pipeline (input.go)

Draft validation and submission:
  - Unicode normalization and whitespace trimming
  - Optimistic user turn append before the engine answers
  - Follow-up activation via Tab, leaving the draft untouched

## Key Bindings (keys.go)

Centralized key map plus the context-aware help data that drives the
welcome screen shortcut list.

## Transcript Save (export.go)

Ctrl+S snapshots the transcript to a Markdown file under the config
directory. The outcome surfaces as a system turn, never a fatal error.

# Usage

Create a chat model wired to an engine client and run it as a Bubble Tea
program:

	client := engine.NewClient()
	m := chat.NewWithClient(styles.NewTheme(), client)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
*/
package chat
