// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view component for the TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/shramanth-sulake/ai-chat-bot/internal/config"
	"github.com/shramanth-sulake/ai-chat-bot/internal/engine"
	"github.com/shramanth-sulake/ai-chat-bot/internal/model"
	"github.com/shramanth-sulake/ai-chat-bot/internal/ui/components"
	"github.com/shramanth-sulake/ai-chat-bot/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
// An error is not a separate state: it is a standing banner shown while the
// composer is ready, so errors never block the next question.
type State int

const (
	StateReady    State = iota // Composer accepts input
	StateAwaiting              // A question is in flight, sending is disabled
)

// inputCharLimit caps the composer draft length.
const inputCharLimit = 4000

// composerLines is the visible height of the multi-line composer.
const composerLines = 3

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state        State
	lastError    *ErrorMsg
	greetingDone bool

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Conversation
	transcript *model.Transcript

	// Engine client
	engine *engine.Client

	// Config snapshot; replaced wholesale on live reload
	cfg *config.Config

	// Per-session user identity sent with every question
	userID string

	// UI Components
	viewport  viewport.Model
	composer  textarea.Model
	header    *components.Header
	statusBar *components.StatusBar
	thinking  components.Spinner

	// Key bindings
	keyMap KeyMap

	// Transient notice shown on the composer line, cleared on next keypress
	notice string

	// Markdown renderer, rebuilt on resize and config reload.
	// Nil when markdown rendering is disabled or initialization failed.
	mdRenderer *glamour.TermRenderer
}

// New creates a new chat model using the global configuration.
func New(theme *styles.Theme) Model {
	// Create multi-line composer. Enter is reserved for sending, so the
	// newline binding moves to Alt+Enter / Ctrl+J.
	ta := textarea.New()
	ta.Placeholder = "Ask me anything..."
	ta.Prompt = ""
	ta.CharLimit = inputCharLimit
	ta.ShowLineNumbers = false
	ta.SetHeight(composerLines)
	ta.KeyMap.InsertNewline = key.NewBinding(
		key.WithKeys("alt+enter", "ctrl+j"),
	)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.Focus()

	// Create viewport for the transcript
	vp := viewport.New(80, 20)
	vp.SetContent("")

	cfg := config.Global()
	if cfg == nil {
		cfg = config.Default()
	}

	userID := cfg.UserID
	if userID == "" {
		userID = config.GenerateUserID()
	}

	header := components.NewHeader(theme)
	statusBar := components.NewStatusBar(theme)
	statusBar.SetStatus(components.StatusReady)

	return Model{
		state:      StateReady,
		theme:      theme,
		transcript: model.NewTranscript(),
		cfg:        cfg,
		userID:     userID,
		viewport:   vp,
		composer:   ta,
		header:     header,
		statusBar:  statusBar,
		thinking:   components.NewThinkingSpinner(),
		keyMap:     DefaultKeyMap(),
	}
}

// NewWithClient creates a new chat model with an engine client.
func NewWithClient(theme *styles.Theme, client *engine.Client) Model {
	m := New(theme)
	m.engine = client
	if client != nil {
		m.header.SetServerURL(client.BaseURL())
		m.statusBar.SetServerURL(client.BaseURL())
	}
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model: cursor blink, the once-only greeting fetch,
// and the advisory health probe.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.fetchGreetingCmd(),
		m.checkHealthCmd(),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case GreetingMsg:
		return m.handleGreeting(msg)

	case HealthMsg:
		return m.handleHealth(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case ReplyErrMsg:
		return m.handleReplyErr(msg)

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)

	case TranscriptSavedMsg:
		return m.handleTranscriptSaved(msg)

	case ErrorMsg:
		m.lastError = &msg
		return m, nil

	case ErrorDismissMsg:
		return m.dismissError()

	case spinner.TickMsg:
		if m.state == StateAwaiting {
			var cmd tea.Cmd
			m.thinking, cmd = m.thinking.Update(msg)
			return m, cmd
		}
		return m, nil

	default:
		// For any unhandled messages, update the composer when ready and
		// always update the viewport for mouse wheel and scroll events.
		if m.state == StateReady {
			var taCmd tea.Cmd
			m.composer, taCmd = m.composer.Update(msg)
			cmds = append(cmds, taCmd)
		}

		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		cmds = append(cmds, vpCmd)

		return m, tea.Batch(cmds...)
	}
}

// View renders the chat view.
func (m Model) View() string {
	return m.renderChat()
}

// =============================================================================
// RESIZE HANDLING
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// Calculate viewport dimensions.
	// Layout: header + viewport (dynamic) + [error banner] + composer + status bar
	//
	// IMPORTANT: These constants MUST stay in sync with the actual rendered
	// heights in view.go renderChat(). renderChat() measures actual heights
	// with lipgloss.Height() and falls back if there is a mismatch, but these
	// values should be conservative (larger) so the viewport is never too tall.
	const (
		headerHeight      = 4 // bordered title box (3 rendered lines) + buffer
		composerHeight    = 6 // focus ring + input lines + char count + buffer
		statusBarHeight   = 2 // single styled line + buffer
		errorBannerHeight = 7 // bordered banner with title + detail + hints
	)

	reservedHeight := headerHeight + composerHeight + statusBarHeight
	if m.lastError != nil {
		reservedHeight += errorBannerHeight
	}

	viewportHeight := m.height - reservedHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	viewportWidth := m.width
	if viewportWidth < 1 {
		viewportWidth = 1
	}

	m.viewport.Width = viewportWidth
	m.viewport.Height = viewportHeight

	// Composer renders inside a Padding(0,1) line, so the textarea itself
	// gets the padded content width.
	composerWidth := m.width - 4
	if composerWidth < 10 {
		composerWidth = 10
	}
	m.composer.SetWidth(composerWidth)

	m.header.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)

	if m.theme != nil {
		m.theme.SetSize(m.width, m.height)
	}

	// Markdown rendering wraps to the bubble content width, so the renderer
	// is rebuilt whenever that width changes.
	m.mdRenderer = nil
	if m.cfg != nil && m.cfg.Markdown {
		m.mdRenderer = newMarkdownRenderer(m.bubbleContentWidth())
	}

	// Re-render viewport content with new dimensions
	m.updateViewport()
	m.viewport.GotoBottom()

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, vpCmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any keypress clears the transient notice
	m.notice = ""

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.DismissError):
		if m.lastError != nil {
			return m.dismissError()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Send):
		// Sending is disabled while a question is in flight; the key is
		// simply ignored, nothing is queued.
		if m.state == StateAwaiting {
			return m, nil
		}
		return m.submit("")

	case key.Matches(msg, m.keyMap.FollowUp):
		if m.state == StateAwaiting {
			return m, nil
		}
		return m.activateFollowUp()

	case key.Matches(msg, m.keyMap.ClearDraft):
		if m.state == StateAwaiting {
			return m, nil
		}
		m.composer.Reset()
		return m, nil

	case key.Matches(msg, m.keyMap.CopyAnswer):
		return m.copyLastAnswer()

	case key.Matches(msg, m.keyMap.SaveTranscript):
		return m.saveTranscript()

	case key.Matches(msg, m.keyMap.ScrollUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.ScrollDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	// Everything else belongs to the composer while ready. Line breaks are
	// inserted by the textarea itself: its InsertNewline binding was moved
	// to Alt+Enter / Ctrl+J in New.
	if m.state == StateReady {
		var cmd tea.Cmd
		m.composer, cmd = m.composer.Update(msg)
		return m, cmd
	}

	return m, nil
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

// handleGreeting appends the opening bot turn exactly once. A fallback
// greeting also marks the engine offline in the chrome, since the fetch
// failing is the first evidence the engine is down.
func (m Model) handleGreeting(msg GreetingMsg) (tea.Model, tea.Cmd) {
	if m.greetingDone || msg.Reply == nil {
		return m, nil
	}
	m.greetingDone = true

	m.transcript.Append(botTurnFromReply(msg.Reply))

	if msg.Fallback {
		m.header.SetEngineOnline(false)
		m.statusBar.SetEngineOnline(false)
	}

	m.syncCounts()
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// handleHealth records the advisory probe result. It never produces a turn
// or an error banner: a dead engine only dims the status indicator.
func (m Model) handleHealth(msg HealthMsg) (tea.Model, tea.Cmd) {
	m.header.SetEngineOnline(msg.Online)
	m.statusBar.SetEngineOnline(msg.Online)
	return m, nil
}

// handleReply settles a successful submission: exactly one bot turn is
// appended and the awaiting state is released.
func (m Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	// Release is unconditional: every settlement returns the composer to
	// ready, whatever else this handler does.
	m.state = StateReady
	m.thinking.Stop()
	m.statusBar.SetStatus(components.StatusReady)

	// A successful reply is proof of reachability, whatever the last probe said
	m.header.SetEngineOnline(true)
	m.statusBar.SetEngineOnline(true)

	m.transcript.Append(botTurnFromReply(msg.Reply))

	m.syncCounts()
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, textarea.Blink
}

// handleReplyErr settles a failed submission: exactly one system turn is
// appended, the same text stands as the error banner, and the awaiting
// state is released.
func (m Model) handleReplyErr(msg ReplyErrMsg) (tea.Model, tea.Cmd) {
	m.state = StateReady
	m.thinking.Stop()
	m.statusBar.SetStatus(components.StatusError)

	if engine.IsUnreachable(msg.Err) {
		m.header.SetEngineOnline(false)
		m.statusBar.SetEngineOnline(false)
	}

	banner := engineErrorMsg(msg.Err)
	m.lastError = &banner
	m.transcript.AddSystemTurn(banner.Message)

	m.syncCounts()
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, textarea.Blink
}

// handleConfigReloaded swaps the config snapshot and rebuilds the transport
// client, then re-probes the (possibly different) engine.
func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Config == nil {
		return m, nil
	}
	m.cfg = msg.Config

	m.engine = engine.NewClientWithConfig(&engine.ClientConfig{
		BaseURL: msg.Config.ServerURL,
		Timeout: msg.Config.Timeout(),
		TopK:    msg.Config.TopK,
	})

	// The session identity survives a reload unless the file now pins one.
	if msg.Config.UserID != "" {
		m.userID = msg.Config.UserID
	}

	m.header.SetServerURL(m.engine.BaseURL())
	m.statusBar.SetServerURL(m.engine.BaseURL())

	m.mdRenderer = nil
	if msg.Config.Markdown {
		m.mdRenderer = newMarkdownRenderer(m.bubbleContentWidth())
	}

	m.transcript.AddSystemTurn("Configuration reloaded")
	m.syncCounts()
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, m.checkHealthCmd()
}

// handleTranscriptSaved reports the save outcome as a system turn.
func (m Model) handleTranscriptSaved(msg TranscriptSavedMsg) (tea.Model, tea.Cmd) {
	if msg.Error != nil {
		m.transcript.AddSystemTurn("[FAIL] Transcript save failed: " + msg.Error.Error())
	} else {
		m.transcript.AddSystemTurn("[OK] Transcript saved to: " + msg.Path)
	}
	m.syncCounts()
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// =============================================================================
// CLIPBOARD
// =============================================================================

// copyLastAnswer copies the latest bot answer to the system clipboard.
// Feedback goes to the transient notice line, never the transcript.
func (m Model) copyLastAnswer() (tea.Model, tea.Cmd) {
	last, ok := m.transcript.LastBotTurn()
	if !ok {
		m.notice = "No answer to copy"
		return m, nil
	}
	if err := copyToClipboard(last.Text); err != nil {
		m.notice = "Failed to copy"
		return m, nil
	}
	m.notice = "Copied!"
	return m, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// botTurnFromReply builds a bot turn from an engine reply. The full reply
// metadata is attached regardless of which field supplied the display text.
func botTurnFromReply(reply *engine.ChatReply) model.Turn {
	turn := model.NewBotTurn(reply.DisplayText())
	turn.Confidence = reply.Confidence
	turn.Sources = append([]string(nil), reply.Sources...)
	turn.Cached = reply.Cached
	turn.FollowUp = reply.FollowUpText()
	turn.Followups = reply.FollowupTexts()
	turn.Redacted = reply.Redacted
	return turn
}

// syncCounts pushes the question/reply tallies into the status bar.
func (m *Model) syncCounts() {
	m.statusBar.SetTurnCounts(
		m.transcript.CountByOrigin(model.OriginUser),
		m.transcript.CountByOrigin(model.OriginBot),
	)
}

// dismissError clears the standing banner and returns focus to the composer.
// The matching system turn stays in the transcript.
func (m Model) dismissError() (tea.Model, tea.Cmd) {
	m.lastError = nil
	m.composer.Focus()
	return m, textarea.Blink
}

// Transcript exposes the conversation transcript.
func (m Model) Transcript() *model.Transcript {
	return m.transcript
}
