// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view component for the TUI.
//
// This file contains all rendering logic for the chat interface, including:
//   - Main view rendering (renderChat)
//   - Turn rendering (user, bot, and system bubbles with reply metadata)
//   - The composer area with focus ring and character count
//   - The standing error banner
//   - Markdown and fenced code block rendering of answers
//
// Formatting and text helpers live in utils.go.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/shramanth-sulake/ai-chat-bot/internal/model"
	"github.com/shramanth-sulake/ai-chat-bot/internal/ui/components"
	"github.com/shramanth-sulake/ai-chat-bot/internal/ui/styles"
	"github.com/shramanth-sulake/ai-chat-bot/internal/util"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// renderChat renders the complete chat view.
// Layout: header + transcript (viewport) + [error banner] + composer + status bar.
// Total height must equal m.height exactly to prevent overflow/underflow.
//
// COUPLING WARNING: The viewport height is pre-calculated in handleResize()
// (model.go) using conservative constant estimates. This function measures
// actual heights with lipgloss.Height() and has a fallback if there is a
// mismatch. If you change the height of any component here, also update the
// constants in handleResize().
func (m Model) renderChat() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Build fixed-height components first to calculate available space
	header := m.header.View()
	composer := m.renderComposer()
	status := m.statusBar.View()

	var errorBanner string
	if m.lastError != nil {
		errorBanner = m.renderErrorBanner()
	}

	// Calculate exact heights. lipgloss.Height("") is 1, so the banner
	// height is only counted when a banner is actually rendered.
	headerHeight := lipgloss.Height(header)
	composerHeight := lipgloss.Height(composer)
	statusHeight := lipgloss.Height(status)
	bannerHeight := 0
	if errorBanner != "" {
		bannerHeight = lipgloss.Height(errorBanner)
	}

	availableHeight := m.height - headerHeight - bannerHeight - composerHeight - statusHeight
	if availableHeight < 1 {
		availableHeight = 1
	}

	// The viewport should already be sized correctly via handleResize.
	messages := m.viewport.View()

	// Verify viewport height matches available space to catch sizing bugs
	viewportRenderedHeight := lipgloss.Height(messages)
	if viewportRenderedHeight != availableHeight {
		// Force correct height to prevent layout breakage. This is a
		// fallback; the root cause should be fixed in handleResize.
		messages = lipgloss.NewStyle().
			Height(availableHeight).
			MaxHeight(availableHeight).
			Width(m.width).
			Render(messages)
	}

	// Stack vertically - the banner sits directly above the composer so the
	// failure is visible next to where the user recovers from it.
	if errorBanner != "" {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			messages,
			errorBanner,
			composer,
			status,
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		messages,
		composer,
		status,
	)
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// updateViewport re-renders the transcript into the viewport.
func (m *Model) updateViewport() {
	m.viewport.SetContent(m.renderTranscript())
}

// renderTranscript renders all turns, plus the thinking indicator while a
// question is in flight.
func (m Model) renderTranscript() string {
	turns := m.transcript.Turns()
	if len(turns) == 0 {
		return m.renderEmptyState()
	}

	var sb strings.Builder
	for i := range turns {
		rendered := m.renderTurn(&turns[i])
		if rendered != "" {
			sb.WriteString(rendered)
			sb.WriteString("\n")
		}
	}

	if m.state == StateAwaiting {
		sb.WriteString(m.renderThinking())
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderTurn dispatches to the origin-specific renderer.
func (m Model) renderTurn(turn *model.Turn) string {
	switch turn.Origin {
	case model.OriginUser:
		return m.renderUserTurn(turn)
	case model.OriginBot:
		return m.renderBotTurn(turn)
	case model.OriginSystem:
		return m.renderSystemTurn(turn)
	default:
		return ""
	}
}

// renderUserTurn renders a question bubble hugging the right edge.
func (m Model) renderUserTurn(turn *model.Turn) string {
	maxWidth := m.width - 8
	if maxWidth > m.width-2 {
		maxWidth = m.width - 2 // Never exceed terminal
	}
	if maxWidth < 10 {
		maxWidth = 10 // Minimum takes precedence
	}

	bubble := lipgloss.NewStyle().
		Foreground(styles.UserBubbleFg).
		Background(styles.UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.UserBubbleBorder).
		Padding(0, 2).
		MaxWidth(maxWidth)

	wrapWidth := maxWidth - 4
	if wrapWidth < 10 {
		wrapWidth = 10
	}
	rendered := bubble.Render(wrapText(turn.Text, wrapWidth))

	// Label and stamp align to the bubble's right edge
	block := lipgloss.JoinVertical(lipgloss.Right, m.turnMeta(turn), rendered)

	// Push right via computed margin
	marginLeft := m.width - lipgloss.Width(block) - 4
	if marginLeft < 0 {
		marginLeft = 0
	}

	return lipgloss.NewStyle().
		MarginLeft(marginLeft).
		MarginTop(1).
		MarginBottom(1).
		Render(block)
}

// renderBotTurn renders an answer with its reply metadata.
func (m Model) renderBotTurn(turn *model.Turn) string {
	maxWidth := m.width - 8
	if maxWidth > m.width-2 {
		maxWidth = m.width - 2 // Never exceed terminal
	}
	if maxWidth < 10 {
		maxWidth = 10 // Minimum takes precedence
	}

	sections := []string{
		m.turnMeta(turn),
		m.renderBotBody(turn.Text, maxWidth),
		m.renderBotMeta(turn, maxWidth),
	}

	block := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return lipgloss.NewStyle().
		MarginTop(1).
		MarginBottom(1).
		MarginLeft(2).
		Render(block)
}

// renderBotBody renders the answer text. With markdown enabled the whole
// body goes through glamour; otherwise text renders in bubbles with fenced
// code blocks syntax highlighted separately.
func (m Model) renderBotBody(content string, maxWidth int) string {
	if m.mdRenderer != nil {
		if rendered, err := m.mdRenderer.Render(content); err == nil {
			return strings.TrimRight(rendered, "\n")
		}
		// Glamour failed; fall through to the plain rendition
	}

	wrapWidth := maxWidth - 4
	if wrapWidth < 10 {
		wrapWidth = 10
	}

	textBubble := lipgloss.NewStyle().
		Foreground(styles.BotBubbleFg).
		Background(styles.BotBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.BotBubbleBorder).
		Padding(0, 2).
		MaxWidth(maxWidth)

	if !strings.Contains(content, "```") {
		return textBubble.Render(wrapText(content, wrapWidth))
	}

	// Split on fences: text parts render as bubbles, code parts render
	// through the highlighting component.
	var parts []string
	var currentText []string
	var codeLines []string
	var language string
	var inCodeBlock bool

	flushText := func() {
		if len(currentText) == 0 {
			return
		}
		text := strings.Join(currentText, "\n")
		if strings.TrimSpace(text) != "" {
			parts = append(parts, textBubble.Render(wrapText(text, wrapWidth)))
		}
		currentText = nil
	}

	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "```"):
			if inCodeBlock {
				flushText()
				cb := components.NewCodeBlock(language, strings.Join(codeLines, "\n"))
				cb.SetMaxWidth(maxWidth)
				parts = append(parts, cb.Render())
				codeLines = nil
				language = ""
				inCodeBlock = false
			} else {
				flushText()
				language = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				inCodeBlock = true
			}
		case inCodeBlock:
			codeLines = append(codeLines, line)
		default:
			currentText = append(currentText, line)
		}
	}

	flushText()

	// An unclosed fence still renders as code
	if inCodeBlock && len(codeLines) > 0 {
		cb := components.NewCodeBlock(language, strings.Join(codeLines, "\n"))
		cb.SetMaxWidth(maxWidth)
		parts = append(parts, cb.Render())
	}

	return strings.Join(parts, "\n")
}

// renderBotMeta renders the reply metadata under the answer: confidence,
// cache marker, enumerated sources, redaction notice, and follow-up hints.
func (m Model) renderBotMeta(turn *model.Turn, maxWidth int) string {
	mutedStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	amberStyle := lipgloss.NewStyle().Foreground(styles.Amber)

	var lines []string

	confidence := mutedStyle.Render("confidence " + util.FloatToString(turn.Confidence))
	if turn.Cached {
		confidence += " " + amberStyle.Render("(cached)")
	}
	lines = append(lines, confidence)

	for i, source := range turn.Sources {
		citation := fmt.Sprintf("[%d] %s", i+1, source)
		lines = append(lines, mutedStyle.Render(util.TruncateWidth(citation, maxWidth)))
	}

	if turn.Redacted {
		lines = append(lines, amberStyle.Render("note: parts of this answer were redacted"))
	}

	if turn.HasFollowUp() {
		hint := lipgloss.NewStyle().Foreground(styles.Cyan).Render("Suggested: "+turn.FollowUp) +
			mutedStyle.Render(" (") +
			lipgloss.NewStyle().Foreground(styles.Amber).Bold(true).Render("Tab") +
			mutedStyle.Render(" to ask)")
		lines = append(lines, hint)

		// Additional ranked suggestions beyond the primary one
		for _, extra := range turn.Followups {
			if extra == "" || extra == turn.FollowUp {
				continue
			}
			lines = append(lines, mutedStyle.Render("  or: "+extra))
		}
	}

	return strings.Join(lines, "\n")
}

// renderSystemTurn renders a failure notice with amber double-border styling.
func (m Model) renderSystemTurn(turn *model.Turn) string {
	maxWidth := m.width - 8
	if maxWidth > m.width-2 {
		maxWidth = m.width - 2 // Never exceed terminal
	}
	if maxWidth < 10 {
		maxWidth = 10 // Minimum takes precedence
	}

	bubble := lipgloss.NewStyle().
		Foreground(styles.SystemBubbleFg).
		Background(styles.SystemBubbleBg).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.SystemBubbleBorder).
		Padding(0, 2).
		MaxWidth(maxWidth).
		Align(lipgloss.Center)

	wrapWidth := maxWidth - 4
	if wrapWidth < 10 {
		wrapWidth = 10
	}
	rendered := bubble.Render(wrapText(turn.Text, wrapWidth))

	block := lipgloss.JoinVertical(lipgloss.Left, m.turnMeta(turn), rendered)

	return lipgloss.NewStyle().
		MarginTop(1).
		MarginBottom(1).
		Render(block)
}

// turnMeta renders the origin label and creation stamp shown on every bubble.
func (m Model) turnMeta(turn *model.Turn) string {
	var nameStyle lipgloss.Style
	switch turn.Origin {
	case model.OriginUser:
		nameStyle = lipgloss.NewStyle().Foreground(styles.UserBubbleBorder).Bold(true)
	case model.OriginBot:
		nameStyle = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	default:
		nameStyle = lipgloss.NewStyle().Foreground(styles.SystemBubbleBorder).Bold(true)
	}

	stampStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	return nameStyle.Render(turn.Origin.DisplayName()) + stampStyle.Render(" · "+turn.Stamp)
}

// renderThinking renders the in-flight spinner at the end of the transcript.
func (m Model) renderThinking() string {
	return lipgloss.NewStyle().
		MarginLeft(2).
		MarginTop(1).
		Render(m.thinking.View())
}

// =============================================================================
// EMPTY STATE
// =============================================================================

// renderEmptyState renders the welcome screen shown before any turns exist.
// The shortcut list comes from the context-aware help data, so it stays in
// sync with the actual key bindings.
func (m Model) renderEmptyState() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	emptyWidth := width - 8
	if emptyWidth < 40 {
		emptyWidth = 40 // Minimum for readable content
	}
	if emptyWidth > 80 {
		emptyWidth = 80 // Cap width for readability
	}

	var sb strings.Builder

	welcomeStyle := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Bold(true).
		Align(lipgloss.Center).
		Width(emptyWidth)
	sb.WriteString(welcomeStyle.Render("Welcome to Chatty"))
	sb.WriteString("\n\n")

	serverStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Align(lipgloss.Center).
		Width(emptyWidth)
	server := ""
	if m.engine != nil {
		server = m.engine.BaseURL()
	}
	if server == "" {
		server = "No engine configured"
	}
	sb.WriteString(serverStyle.Render("Engine: " + server))
	sb.WriteString("\n\n")

	sepStyle := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Align(lipgloss.Center).
		Width(emptyWidth)
	sb.WriteString(sepStyle.Render(strings.Repeat("-", 40)))
	sb.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Amber).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)
	categoryStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	grouped := GetHelpItemsByCategory(ContextComposing)
	for _, category := range GetCategoryOrder() {
		items := grouped[category]
		if len(items) == 0 {
			continue
		}
		sb.WriteString(categoryStyle.Render(string(category)))
		sb.WriteString("\n")
		for _, item := range items {
			line := fmt.Sprintf("  %s  %s",
				keyStyle.Render(fmt.Sprintf("%-16s", item.Key)),
				descStyle.Render(item.Desc))
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	examplesHeaderStyle := lipgloss.NewStyle().
		Foreground(styles.Emerald).
		Bold(true)
	sb.WriteString(examplesHeaderStyle.Render("Try asking"))
	sb.WriteString("\n\n")

	exampleStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Italic(true)
	examples := []string{
		"\"What can you help me with?\"",
		"\"How do I reset my password?\"",
		"\"Summarize the onboarding guide\"",
	}
	for _, example := range examples {
		sb.WriteString("  " + exampleStyle.Render(example))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")

	hintStyle := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Align(lipgloss.Center).
		Width(emptyWidth)
	sb.WriteString(hintStyle.Render("Enter to send | Ctrl+C to quit"))

	containerStyle := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(width - 4).
		Padding(2, 0)

	return containerStyle.Render(sb.String())
}

// =============================================================================
// ERROR BANNER
// =============================================================================

// renderErrorBanner renders the standing error above the composer. The same
// text also lives in the transcript as a system turn; the banner is the
// at-a-glance copy and dismisses with Esc.
func (m Model) renderErrorBanner() string {
	if m.lastError == nil {
		return ""
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Rose).
		Bold(true)
	hintStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.lastError.Title))
	if m.lastError.Dismissible {
		sb.WriteString(hintStyle.Render("  (Esc to dismiss)"))
	}
	sb.WriteString("\n")

	wrapWidth := width - 8
	if wrapWidth < 10 {
		wrapWidth = 10
	}
	sb.WriteString(wrapText(m.lastError.Message, wrapWidth))

	for _, suggestion := range m.lastError.Suggestions {
		sb.WriteString("\n")
		sb.WriteString(hintStyle.Render("  - " + suggestion))
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Rose).
		Padding(0, 2).
		Width(width - 2).
		Render(sb.String())
}

// =============================================================================
// COMPOSER
// =============================================================================

// renderComposer renders the input area: focus ring, textarea, and footer.
// The ring dims while a question is in flight, mirroring the disabled send.
func (m Model) renderComposer() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	ringColor := styles.FocusRing
	if m.state == StateAwaiting {
		ringColor = styles.FocusRingDim
	}

	ring := lipgloss.NewStyle().
		Foreground(ringColor).
		Render(strings.Repeat("─", width))

	inputLine := lipgloss.NewStyle().
		Width(width - 2).
		Padding(0, 1).
		Render(m.composer.View())

	footer := m.renderComposerFooter()

	result := lipgloss.JoinVertical(
		lipgloss.Left,
		ring,
		inputLine,
		footer,
	)

	// Fixed height prevents layout shift while typing
	const composerArea = composerLines + 2
	return lipgloss.NewStyle().
		Height(composerArea).
		MaxHeight(composerArea).
		Width(width).
		Render(result)
}

// renderComposerFooter renders the transient notice on the left and the
// character count on the right.
func (m Model) renderComposerFooter() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	count := len([]rune(m.composer.Value()))
	limit := m.composer.CharLimit
	if limit <= 0 {
		limit = 1
	}

	// Count color escalates as the draft approaches the limit
	var countStyle lipgloss.Style
	percent := float64(count) / float64(limit) * 100
	switch {
	case percent >= 90:
		countStyle = lipgloss.NewStyle().Foreground(styles.Rose)
	case percent >= 75:
		countStyle = lipgloss.NewStyle().Foreground(styles.Amber)
	default:
		countStyle = lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
	countStr := countStyle.Render(util.IntToString(count) + " / " + util.IntToString(limit))

	var notice string
	if m.notice != "" {
		notice = lipgloss.NewStyle().Foreground(styles.Emerald).Render(m.notice)
	} else if m.state == StateAwaiting {
		notice = lipgloss.NewStyle().Foreground(styles.Amber).Render("waiting for reply...")
	}

	lineWidth := width - 4
	if lineWidth < 10 {
		lineWidth = 10
	}
	gap := lineWidth - lipgloss.Width(notice) - lipgloss.Width(countStr)
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Padding(0, 2).
		Render(notice + strings.Repeat(" ", gap) + countStr)
}

// =============================================================================
// MARKDOWN
// =============================================================================

// bubbleContentWidth is the inner text width of a bot bubble, used to size
// the markdown renderer.
func (m Model) bubbleContentWidth() int {
	w := m.width - 12
	if w < 20 {
		w = 20
	}
	if w > 100 {
		w = 100
	}
	return w
}

// newMarkdownRenderer builds a glamour renderer wrapped to the given width.
// Returns nil when initialization fails; callers fall back to plain bubbles.
func newMarkdownRenderer(wrapWidth int) *glamour.TermRenderer {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return nil
	}
	return renderer
}
