// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the Chatty TUI.
package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/shramanth-sulake/ai-chat-bot/internal/ui/styles"
)

// =============================================================================
// CODE BLOCK RENDERER
// =============================================================================

// CodeBlock represents a rendered code block.
type CodeBlock struct {
	Language string
	Code     string
	MaxWidth int
}

// NewCodeBlock creates a new code block.
func NewCodeBlock(language, code string) CodeBlock {
	return CodeBlock{
		Language: language,
		Code:     code,
		MaxWidth: 80,
	}
}

// SetMaxWidth sets the maximum width for the code block.
func (c *CodeBlock) SetMaxWidth(width int) {
	c.MaxWidth = width
}

// Render renders the code block with styling.
// USABILITY: Syntax highlighting for better code readability
func (c CodeBlock) Render() string {
	// Clean the code
	code := strings.TrimSpace(c.Code)

	// Apply syntax highlighting if language is specified or can be detected
	language := c.Language
	if language == "" {
		language = detectLanguage(code)
	}

	// Get highlighted code (returns original if highlighting fails)
	highlightedCode := highlightCode(code, language)
	lines := strings.Split(highlightedCode, "\n")

	// Build the rendered lines with line numbers
	var renderedLines []string

	lineNumStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(4).
		Align(lipgloss.Right).
		MarginRight(1)

	for i, line := range lines {
		lineNum := lineNumStyle.Render(toStr(i + 1))
		// Line already has syntax highlighting from chroma, don't apply additional styling
		renderedLines = append(renderedLines, lineNum+line)
	}

	codeContent := strings.Join(renderedLines, "\n")

	// Create the header with language badge
	var header string
	if c.Language != "" {
		langBadge := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Background(styles.OverlayDim).
			Padding(0, 1).
			Bold(true).
			Render(c.Language)
		header = langBadge + "\n"
	}

	// Create the code block container
	maxWidth := c.MaxWidth - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	block := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(1, 2).
		MaxWidth(maxWidth).
		Render(header + codeContent)

	return block
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// highlightCode applies syntax highlighting to code using the chroma library.
// This provides proper ANSI-safe syntax highlighting for terminal output.
func highlightCode(code, language string) string {
	// Get lexer for language
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	// Get style (use terminal-friendly style)
	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	// Get terminal formatter
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	// Tokenize and format
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code // Fallback to plain text
	}

	var buf strings.Builder
	err = formatter.Format(&buf, style, iterator)
	if err != nil {
		return code
	}

	return buf.String()
}

// detectLanguage attempts to detect the programming language of the given code.
func detectLanguage(code string) string {
	lexer := lexers.Analyse(code)
	if lexer != nil {
		return lexer.Config().Name
	}
	return ""
}
