// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view component for the TUI.
package chat

import (
	"strings"

	"github.com/atotto/clipboard"
)

// =============================================================================
// TEXT UTILITIES
// =============================================================================

// wrapText wraps text to a maximum width, handling Unicode correctly.
// It preserves existing line breaks and intelligently breaks long lines at spaces.
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}

	var result strings.Builder
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}

		// UNICODE: operate on runes so multibyte characters never split mid-sequence
		runes := []rune(line)

		// Wrap long lines
		for len(runes) > maxWidth {
			// Find a good break point (look for space)
			breakPoint := maxWidth
			for j := maxWidth; j > 0; j-- {
				if runes[j] == ' ' {
					breakPoint = j
					break
				}
			}

			result.WriteString(string(runes[:breakPoint]))
			result.WriteString("\n")
			runes = []rune(strings.TrimLeft(string(runes[breakPoint:]), " "))
		}
		result.WriteString(string(runes))
	}

	return result.String()
}

// =============================================================================
// CLIPBOARD UTILITIES
// =============================================================================

// copyToClipboard copies the given text to the system clipboard.
// Returns an error if the clipboard is not available or the operation fails.
func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}
