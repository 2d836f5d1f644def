// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shramanth-sulake/ai-chat-bot/internal/config"
	"github.com/shramanth-sulake/ai-chat-bot/internal/model"
	"github.com/shramanth-sulake/ai-chat-bot/internal/util"
)

// =============================================================================
// TRANSCRIPT SAVE
// =============================================================================

// saveTranscript writes the conversation to a Markdown file under the config
// directory. The write happens in a command; the outcome lands back in the
// transcript as a system turn, so a failed save is never fatal.
//
// Saving is a read-only snapshot of the transcript. It does not count as a
// conversation operation and appends nothing besides the outcome turn.
func (m Model) saveTranscript() (tea.Model, tea.Cmd) {
	if m.transcript.IsEmpty() {
		m.notice = "Nothing to save"
		return m, nil
	}

	// Capture before closure to avoid race
	snapshot := m.transcript.Clone()
	serverURL := ""
	if m.engine != nil {
		serverURL = m.engine.BaseURL()
	}

	return m, func() tea.Msg {
		dir, err := config.ConfigDir()
		if err != nil {
			return TranscriptSavedMsg{Error: err}
		}

		stamp := time.Now().Format("20060102-150405")
		path := filepath.Join(dir, "transcripts", "chatty-"+stamp+".md")

		content := transcriptMarkdown(snapshot, serverURL)
		if err := util.AtomicWriteFileWithDir(path, content, 0644, 0755); err != nil {
			return TranscriptSavedMsg{Error: err}
		}

		return TranscriptSavedMsg{Path: path}
	}
}

// transcriptMarkdown renders the transcript as a Markdown document.
func transcriptMarkdown(tr *model.Transcript, serverURL string) []byte {
	turns := tr.Turns()

	var sb strings.Builder

	sb.WriteString("# Chatty Transcript\n\n")

	sb.WriteString("## Session Information\n\n")
	if serverURL != "" {
		sb.WriteString(fmt.Sprintf("- **Engine**: %s\n", serverURL))
	}
	sb.WriteString(fmt.Sprintf("- **Questions**: %d\n", tr.CountByOrigin(model.OriginUser)))
	sb.WriteString(fmt.Sprintf("- **Answers**: %d\n", tr.CountByOrigin(model.OriginBot)))
	sb.WriteString(fmt.Sprintf("- **Saved**: %s\n", time.Now().Format(time.RFC3339)))
	sb.WriteString("\n---\n\n")

	sb.WriteString("## Conversation\n\n")

	for i := range turns {
		turn := &turns[i]

		sb.WriteString(fmt.Sprintf("### [%s] <sub>%s</sub>\n\n",
			turn.Origin.DisplayName(), turn.Stamp))

		// Answer text is already Markdown-shaped; write it as-is
		sb.WriteString(strings.TrimSpace(turn.Text))
		sb.WriteString("\n\n")

		if turn.Origin == model.OriginBot {
			if meta := turnMetaMarkdown(turn); meta != "" {
				sb.WriteString(meta)
				sb.WriteString("\n\n")
			}
		}

		if i < len(turns)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Saved from Chatty on %s*\n",
		time.Now().Format("January 2, 2006 at 3:04 PM")))

	return []byte(sb.String())
}

// turnMetaMarkdown renders the reply metadata attached to a bot turn.
func turnMetaMarkdown(turn *model.Turn) string {
	var sb strings.Builder

	parts := []string{"Confidence: " + util.FloatToString(turn.Confidence)}
	if turn.Cached {
		parts = append(parts, "Cached")
	}
	if turn.Redacted {
		parts = append(parts, "Redacted")
	}
	sb.WriteString(fmt.Sprintf("<sub>%s</sub>", strings.Join(parts, " | ")))

	if turn.HasSources() {
		sb.WriteString("\n\nSources:\n\n")
		for i, source := range turn.Sources {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, source))
		}
		sb.WriteString("\n")
	}

	if turn.HasFollowUp() {
		sb.WriteString(fmt.Sprintf("\n*Suggested follow-up: %s*", turn.FollowUp))
	}

	return strings.TrimRight(sb.String(), "\n")
}
