// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine provides the HTTP client for the chat engine API.
package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// =============================================================================
// DISPLAY TEXT TESTS
// =============================================================================

func TestChatReply_DisplayText(t *testing.T) {
	tests := []struct {
		name     string
		answer   *string
		followUp *string
		want     string
	}{
		{"answer wins", strPtr("the answer"), strPtr("a follow-up"), "the answer"},
		{"follow-up when answer null", nil, strPtr("a follow-up"), "a follow-up"},
		{"fixed fallback when both null", nil, nil, "I don't know."},
		{"empty answer still wins", strPtr(""), strPtr("a follow-up"), ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reply := ChatReply{Answer: tc.answer, FollowUp: tc.followUp}
			require.Equal(t, tc.want, reply.DisplayText())
		})
	}
}

// =============================================================================
// FALLBACK GREETING TESTS
// =============================================================================

func TestFallbackGreeting_Fields(t *testing.T) {
	g := FallbackGreeting()

	require.True(t, g.HasAnswer())
	require.Equal(t, FallbackGreetingText, *g.Answer)
	require.Equal(t, "Hi there! I'm Chatty, how can I assist you today?", g.DisplayText())
	require.Equal(t, 1.0, g.Confidence)
	require.NotNil(t, g.Sources)
	require.Empty(t, g.Sources)
	require.False(t, g.Cached)
	require.Nil(t, g.FollowUp)
	require.False(t, g.Redacted)
}

// =============================================================================
// FOLLOW-UP HELPERS
// =============================================================================

func TestChatReply_FollowupTexts(t *testing.T) {
	reply := ChatReply{
		Followups: []FollowupHint{
			{Text: "first", Score: 0.9},
			{Text: "", Score: 0.5},
			{Text: "second", Score: 0.3},
		},
	}

	require.Equal(t, []string{"first", "second"}, reply.FollowupTexts())
}

func TestChatReply_FollowupTexts_Empty(t *testing.T) {
	require.Nil(t, ChatReply{}.FollowupTexts())
}

func TestChatReply_FollowUpText(t *testing.T) {
	require.Equal(t, "", ChatReply{}.FollowUpText())
	require.Equal(t, "try this", ChatReply{FollowUp: strPtr("try this")}.FollowUpText())
}

// =============================================================================
// WIRE SHAPE TESTS
// =============================================================================

// TestChatReply_DecodesEnginePayload pins the decode of the engine's full
// reply shape, including the ranked followups list.
func TestChatReply_DecodesEnginePayload(t *testing.T) {
	payload := `{
		"answer": "We open at 9am.",
		"confidence": 0.87,
		"sources": ["faq.xlsx | hours | row:3 | chunk:0", "faq.xlsx | hours | row:4 | chunk:1"],
		"cached": false,
		"follow_up": "Do you want weekend hours too?",
		"followups": [{"text": "Do you want weekend hours too?", "score": 0.81}],
		"redacted": true
	}`

	var reply ChatReply
	require.NoError(t, json.Unmarshal([]byte(payload), &reply))

	require.Equal(t, "We open at 9am.", *reply.Answer)
	require.Equal(t, 0.87, reply.Confidence)
	require.Len(t, reply.Sources, 2)
	require.False(t, reply.Cached)
	require.Equal(t, "Do you want weekend hours too?", *reply.FollowUp)
	require.Equal(t, 0.81, reply.Followups[0].Score)
	require.True(t, reply.Redacted)
}

// TestChatRequest_OmitsZeroTopK pins that an unset retrieval depth is left
// to the engine's default rather than sent as zero.
func TestChatRequest_OmitsZeroTopK(t *testing.T) {
	raw, err := json.Marshal(ChatRequest{UserID: "u", Question: "q"})
	require.NoError(t, err)
	require.NotContains(t, string(raw), "top_k")

	raw, err = json.Marshal(ChatRequest{UserID: "u", Question: "q", TopK: 5})
	require.NoError(t, err)
	require.Contains(t, string(raw), `"top_k":5`)
}

// =============================================================================
// HEALTH TYPE TESTS
// =============================================================================

func TestHealthResponse_OK(t *testing.T) {
	require.True(t, HealthResponse{Status: "ok"}.OK())
	require.False(t, HealthResponse{Status: "degraded"}.OK())
	require.False(t, HealthResponse{}.OK())
}
