// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine provides the HTTP client for the chat engine API.
package engine

// =============================================================================
// FALLBACK TEXT
// =============================================================================

const (
	// FallbackGreetingText is shown when the greeting fetch fails for any
	// reason. It matches the greeting the engine itself serves.
	FallbackGreetingText = "Hi there! I'm Chatty, how can I assist you today?"

	// UnknownAnswerText is displayed when a reply carries neither an answer
	// nor a follow-up suggestion.
	UnknownAnswerText = "I don't know."
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ChatRequest is the body of a question submission.
type ChatRequest struct {
	// UserID identifies the asking session to the engine.
	UserID string `json:"user_id"`

	// Question is the trimmed question text.
	Question string `json:"question"`

	// TopK is the retrieval depth the engine should use. Omitted when zero;
	// the engine then applies its own default.
	TopK int `json:"top_k,omitempty"`
}

// =============================================================================
// REPLY TYPES
// =============================================================================

// FollowupHint is one ranked follow-up suggestion from the engine.
type FollowupHint struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// ChatReply is the structured reply returned by both chat endpoints.
//
// Answer and FollowUp are pointers because the engine distinguishes "absent"
// from "empty": a low-confidence reply carries a null answer together with a
// follow-up question to ask instead.
type ChatReply struct {
	Answer     *string        `json:"answer"`
	Confidence float64        `json:"confidence"`
	Sources    []string       `json:"sources"`
	Cached     bool           `json:"cached"`
	FollowUp   *string        `json:"follow_up"`
	Followups  []FollowupHint `json:"followups"`
	Redacted   bool           `json:"redacted"`
}

// DisplayText resolves the text a bot bubble should show: the answer when
// present, else the follow-up question, else a fixed "I don't know." line.
func (r ChatReply) DisplayText() string {
	if r.Answer != nil {
		return *r.Answer
	}
	if r.FollowUp != nil {
		return *r.FollowUp
	}
	return UnknownAnswerText
}

// HasAnswer reports whether the reply carries a non-null answer.
func (r ChatReply) HasAnswer() bool {
	return r.Answer != nil
}

// HasFollowUp reports whether the reply carries a non-null follow-up.
func (r ChatReply) HasFollowUp() bool {
	return r.FollowUp != nil
}

// FollowUpText returns the follow-up suggestion, or "" when absent.
func (r ChatReply) FollowUpText() string {
	if r.FollowUp == nil {
		return ""
	}
	return *r.FollowUp
}

// FollowupTexts returns the ranked extra suggestion texts in engine order.
func (r ChatReply) FollowupTexts() []string {
	if len(r.Followups) == 0 {
		return nil
	}
	texts := make([]string, 0, len(r.Followups))
	for _, f := range r.Followups {
		if f.Text != "" {
			texts = append(texts, f.Text)
		}
	}
	return texts
}

// FallbackGreeting returns the reply substituted when the greeting fetch
// fails: fixed text, full confidence, no sources, not cached, no follow-up.
func FallbackGreeting() ChatReply {
	text := FallbackGreetingText
	return ChatReply{
		Answer:     &text,
		Confidence: 1.0,
		Sources:    []string{},
		Cached:     false,
		FollowUp:   nil,
	}
}

// =============================================================================
// ERROR WIRE TYPE
// =============================================================================

// EngineError is the JSON error body the engine returns on failures,
// e.g. {"detail": "question is empty"}.
type EngineError struct {
	Detail string `json:"detail"`
}

// =============================================================================
// HEALTH TYPES
// =============================================================================

// HealthResponse is the body of the engine's health probe.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime,omitempty"`
}

// OK reports whether the probe result indicates a healthy engine.
func (h HealthResponse) OK() bool {
	return h.Status == "ok"
}
