// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the Chatty TUI application.
//
// This package contains common helper functions used throughout the application
// for string manipulation and type conversion.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth: Display-width truncation (CJK-aware via go-runewidth)
//   - StringWidth: Display width of a string in terminal columns
//
// Type Conversion:
//   - IntToString: Numeric to string conversion
//   - FloatToString: Two-decimal formatting for confidence scores
//
// # Usage
//
//	// Truncate long strings safely for display
//	display := util.TruncateRunes(longText, 50)
//
//	// Format a confidence score for the metadata footer
//	s := util.FloatToString(0.85) // "0.85"
package util
