// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view component for the TUI.
//
// This file defines keyboard bindings and shortcuts for the chat interface.
// The composer keeps its standard editing keys (the textarea owns arrows,
// home/end, and the emacs-style bindings), so transcript scrolling uses
// PgUp/PgDn and the mouse wheel only.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat interface.
// Each binding supports multiple keys and includes help text for documentation.
type KeyMap struct {
	Send           key.Binding
	LineBreak      key.Binding
	FollowUp       key.Binding
	ClearDraft     key.Binding
	CopyAnswer     key.Binding
	SaveTranscript key.Binding
	ScrollUp       key.Binding
	ScrollDown     key.Binding
	DismissError   key.Binding
	Quit           key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat interface.
// Shift+Enter is not reliably reported by terminals, so Alt+Enter and
// Ctrl+J are the modified variants that insert a line break.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		LineBreak: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("Alt+Enter/C-j", "line break"),
		),
		FollowUp: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "ask follow-up"),
		),
		ClearDraft: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear draft"),
		),
		CopyAnswer: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy last answer"),
		),
		SaveTranscript: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "save transcript"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		DismissError: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "dismiss error"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns a slice of key bindings to show in the short help view.
// These are the most commonly used shortcuts.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.FollowUp, k.LineBreak, k.Quit}
}

// FullHelp returns a slice of key bindings to show in the full help view.
// This is organized into groups for better readability.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Composing
		{k.Send, k.LineBreak, k.ClearDraft},
		// Conversation
		{k.FollowUp, k.CopyAnswer, k.SaveTranscript},
		// Navigation
		{k.ScrollUp, k.ScrollDown},
		// General
		{k.DismissError, k.Quit},
	}
}

// =============================================================================
// HELP TEXT DATA
// =============================================================================

// HelpContext represents the UI context for filtering help items.
// Follows lazygit's pattern of context-aware keybinding display.
type HelpContext string

const (
	// ContextComposing is the default state - the composer accepts input
	ContextComposing HelpContext = "composing"
	// ContextAwaiting is when a question is in flight and sending is disabled
	ContextAwaiting HelpContext = "awaiting"
	// ContextError is when an error banner is displayed
	ContextError HelpContext = "error"
)

// HelpCategory represents action type grouping for help display.
type HelpCategory string

const (
	CategoryComposing    HelpCategory = "Composing"
	CategoryConversation HelpCategory = "Conversation"
	CategoryNavigation   HelpCategory = "Navigation"
	CategoryGeneral      HelpCategory = "General"
)

// HelpItem represents a single help entry with key, description, and context.
// Context-aware help shows only the keybindings active in the current state.
type HelpItem struct {
	Key      string        // Key binding(s) displayed (e.g., "Enter", "C-y")
	Desc     string        // Human-readable description
	Contexts []HelpContext // Contexts where this binding is active
	Category HelpCategory  // Action type grouping for display
}

// GetHelpItems returns all help items for display.
// Send, clear, and follow-up are absent from the awaiting context: those
// keys are ignored while a question is in flight.
func GetHelpItems() []HelpItem {
	all := []HelpContext{ContextComposing, ContextAwaiting, ContextError}
	composingOnly := []HelpContext{ContextComposing, ContextError}
	errorOnly := []HelpContext{ContextError}

	return []HelpItem{
		// Composing - disabled while awaiting a reply
		{"Enter", "Send question", composingOnly, CategoryComposing},
		{"Alt+Enter/C-j", "Insert line break", composingOnly, CategoryComposing},
		{"C-l", "Clear draft", composingOnly, CategoryComposing},

		// Conversation
		{"Tab", "Ask suggested follow-up", composingOnly, CategoryConversation},
		{"C-y", "Copy last answer", all, CategoryConversation},
		{"C-s", "Save transcript", all, CategoryConversation},

		// Navigation - always available
		{"PgUp/PgDn", "Scroll transcript", all, CategoryNavigation},

		// General
		{"Esc", "Dismiss error", errorOnly, CategoryGeneral},
		{"C-c", "Quit", all, CategoryGeneral},
	}
}

// GetHelpItemsForContext returns help items filtered for the given context.
func GetHelpItemsForContext(ctx HelpContext) []HelpItem {
	all := GetHelpItems()
	var filtered []HelpItem

	for _, item := range all {
		for _, itemCtx := range item.Contexts {
			if itemCtx == ctx {
				filtered = append(filtered, item)
				break
			}
		}
	}

	return filtered
}

// GetHelpItemsByCategory returns help items grouped by category for the given
// context. Returns a map of category -> items for organized display.
func GetHelpItemsByCategory(ctx HelpContext) map[HelpCategory][]HelpItem {
	items := GetHelpItemsForContext(ctx)
	grouped := make(map[HelpCategory][]HelpItem)

	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}

	return grouped
}

// GetCategoryOrder returns the preferred display order for categories.
func GetCategoryOrder() []HelpCategory {
	return []HelpCategory{
		CategoryComposing,
		CategoryConversation,
		CategoryNavigation,
		CategoryGeneral,
	}
}

// GetContextDisplayName returns a human-readable name for a context.
func GetContextDisplayName(ctx HelpContext) string {
	switch ctx {
	case ContextComposing:
		return "Composing"
	case ContextAwaiting:
		return "Waiting for Reply"
	case ContextError:
		return "Error"
	default:
		return string(ctx)
	}
}
