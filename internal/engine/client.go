// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine provides the HTTP client for the chat engine API.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the chat engine client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error

	// HTTP failure details, populated for ErrTypeHTTPStatus.
	StatusCode int
	Body       string
}

func (e *ClientError) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg += " (HTTP " + strconv.Itoa(e.StatusCode) + ")"
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnreachable
	ErrTypeTimeout
	ErrTypeHTTPStatus
	ErrTypeInvalidResponse
	ErrTypeConnection
)

// Sentinel errors for easy checking.
var (
	ErrEngineUnreachable = &ClientError{Type: ErrTypeUnreachable, Message: "chat engine is not reachable"}
	ErrTimeout           = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the chat engine client.
type ClientConfig struct {
	// BaseURL is the engine API base URL (default: http://127.0.0.1:8000)
	// Note: Uses explicit IPv4 address instead of localhost to avoid IPv6 resolution issues on Windows
	BaseURL string

	// Timeout for requests (default: 30s)
	Timeout time.Duration

	// TopK is the retrieval depth sent with every question (default: 3)
	TopK int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:8000",
		Timeout: 30 * time.Second,
		TopK:    3,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the chat engine API.
// It issues exactly one attempt per call: no retries, no local caching
// (the reply's cached flag is reported by the engine, never computed here).
//
// The Client is thread-safe for concurrent use.
//
// Example:
//
//	client := engine.NewClient()
//	reply, err := client.SubmitQuestion(ctx, "user-1", "What are the opening hours?")
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new engine client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new engine client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.TopK == 0 {
		config.TopK = 3
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckHealth verifies that the chat engine is reachable and healthy.
// The result is advisory: the caller may show it in a status line but the
// chat flow never depends on it.
func (c *Client) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/health", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrEngineUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Type:    ErrTypeConnection,
			Message: "unexpected status from chat engine: " + resp.Status,
		}
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode health response", Cause: err}
	}
	if !health.OK() {
		return &ClientError{
			Type:    ErrTypeConnection,
			Message: "chat engine reports status " + health.Status,
		}
	}

	return nil
}

// =============================================================================
// GREETING
// =============================================================================

// FetchGreeting retrieves the initial greeting reply.
// Any failure (network, non-2xx, malformed body) returns a typed error; the
// caller substitutes FallbackGreeting rather than surfacing it.
func (c *Client) FetchGreeting(ctx context.Context) (*ChatReply, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/chat/", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrEngineUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newHTTPError("greeting request failed", resp)
	}

	var reply ChatReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode greeting", Cause: err}
	}

	return &reply, nil
}

// =============================================================================
// QUESTION SUBMISSION
// =============================================================================

// SubmitQuestion sends a question and returns the engine's structured reply.
// On failure the returned error carries the HTTP status code and response
// body when available, or the underlying network error otherwise.
func (c *Client) SubmitQuestion(ctx context.Context, userID, question string) (*ChatReply, error) {
	reqBody := ChatRequest{
		UserID:   userID,
		Question: question,
		TopK:     c.config.TopK,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat/", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrEngineUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newHTTPError("chat request failed", resp)
	}

	var reply ChatReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode reply", Cause: err}
	}

	return &reply, nil
}

// =============================================================================
// UTILITY METHODS
// =============================================================================

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// BaseURL returns the configured engine base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// newHTTPError builds a ClientError from a non-2xx response, capturing the
// status code and body text. The engine's {"detail": ...} shape is folded
// into the message when present.
func newHTTPError(prefix string, resp *http.Response) *ClientError {
	// Bound the read: error bodies are small, and a broken server should
	// not be able to balloon memory here.
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	bodyText := strings.TrimSpace(string(raw))

	msg := prefix + ": " + resp.Status
	var engineErr EngineError
	if err := json.Unmarshal(raw, &engineErr); err == nil && engineErr.Detail != "" {
		msg = prefix + ": " + engineErr.Detail
	}

	return &ClientError{
		Type:       ErrTypeHTTPStatus,
		Message:    msg,
		StatusCode: resp.StatusCode,
		Body:       bodyText,
	}
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsUnreachable checks if an error indicates the engine is not reachable.
func IsUnreachable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeUnreachable
	}
	return errors.Is(err, ErrEngineUnreachable)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsHTTPStatus extracts the status code and body from an HTTP failure.
// Returns ok=false for errors of any other kind.
func IsHTTPStatus(err error) (status int, body string, ok bool) {
	var clientErr *ClientError
	if errors.As(err, &clientErr) && clientErr.Type == ErrTypeHTTPStatus {
		return clientErr.StatusCode, clientErr.Body, true
	}
	return 0, "", false
}
