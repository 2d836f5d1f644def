// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine provides the HTTP client for the chat engine API.
//
// This package implements the transport layer for the Chatty backend:
// a greeting fetch issued once at startup, a question submission issued
// per user message, and an advisory health probe. Every call makes exactly
// one attempt; there are no retries and no local caching.
//
// # Key Types
//
//   - Client: HTTP client for the engine endpoints
//   - ChatRequest: Question submission body (user_id, question, top_k)
//   - ChatReply: Structured reply (answer, confidence, sources, cache flag,
//     follow-up suggestion, redaction flag)
//   - ClientError: Typed error carrying the HTTP status and body on failure
//
// # Usage
//
// Create a client and submit a question:
//
//	client := engine.NewClient()
//	reply, err := client.SubmitQuestion(ctx, "user-1", "What are the opening hours?")
//	if err != nil {
//	    if status, body, ok := engine.IsHTTPStatus(err); ok {
//	        // surface status and body to the user
//	    }
//	}
//	fmt.Println(reply.DisplayText())
//
// The greeting fetch degrades silently:
//
//	reply, err := client.FetchGreeting(ctx)
//	if err != nil {
//	    greeting := engine.FallbackGreeting()
//	    // show greeting as a normal bot turn; no error surfaces
//	}
package engine
