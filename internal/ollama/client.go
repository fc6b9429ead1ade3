// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the Ollama client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches sentinel errors by type so wrapped variants still compare equal.
func (e *ClientError) Is(target error) bool {
	var t *ClientError
	if !errors.As(target, &t) {
		return false
	}
	return t.Type == e.Type && t.Type != ErrTypeUnknown
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotRunning
	ErrTypeTimeout
	ErrTypeModelNotFound
	ErrTypeConnection
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrNotRunning    = &ClientError{Type: ErrTypeNotRunning, Message: "Ollama is not running"}
	ErrTimeout       = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrModelNotFound = &ClientError{Type: ErrTypeModelNotFound, Message: "model not found"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

const (
	// DefaultBaseURL uses an explicit IPv4 address to avoid IPv6 localhost resolution.
	DefaultBaseURL = "http://127.0.0.1:11434"

	// DefaultTimeout bounds non-streaming requests. Local models can take a
	// while to load on first use.
	DefaultTimeout = 5 * time.Minute
)

// ClientConfig holds configuration options for the Ollama client.
type ClientConfig struct {
	// BaseURL is the Ollama API base URL (default: http://127.0.0.1:11434)
	BaseURL string

	// Timeout for non-streaming requests (default: 5m). Pull streams are
	// bounded only by their context.
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the Ollama API.
//
// The Client is safe for concurrent use.
type Client struct {
	config       *ClientConfig
	httpClient   *http.Client
	streamClient *http.Client
}

// NewClientWithConfig creates a new Ollama client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		// Ollama runs on localhost over plain HTTP; the stream has no client
		// timeout because a pull can run for many minutes.
		streamClient: &http.Client{},
	}
}

// BaseURL returns the API base URL in use.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// MODEL OPERATIONS
// =============================================================================

// ListModels retrieves all locally available models from Ollama.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/tags", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, "failed to list models")
	}

	var result ListModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return result.Models, nil
}

// Pull starts downloading a model and returns the progress stream. The caller
// must Close the stream.
func (c *Client) Pull(ctx context.Context, model string) (*PullStream, error) {
	resp, err := c.postJSON(ctx, c.streamClient, "/api/pull", PullRequest{Model: model, Stream: true})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, statusError(resp, "pull request failed")
	}

	return NewPullStream(resp.Body), nil
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// Chat sends a chat request and returns the complete response (non-streaming).
func (c *Client) Chat(ctx context.Context, model string, messages []Message) (*ChatResponse, error) {
	resp, err := c.postJSON(ctx, c.httpClient, "/api/chat", ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrModelNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, "chat request failed")
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func (c *Client) postJSON(ctx context.Context, hc *http.Client, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	return resp, nil
}

// transportError maps a failed round trip onto the sentinel errors. The
// underlying cause is kept for logging.
func transportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return &ClientError{Type: ErrTypeConnection, Message: "request cancelled", Cause: err}
	}
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return &ClientError{Type: ErrTypeTimeout, Message: ErrTimeout.Message, Cause: err}
	}
	return &ClientError{Type: ErrTypeNotRunning, Message: ErrNotRunning.Message, Cause: err}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// statusError reads an Ollama error body if present.
func statusError(resp *http.Response, fallback string) error {
	var ollamaErr OllamaError
	if err := json.NewDecoder(resp.Body).Decode(&ollamaErr); err == nil && ollamaErr.Error != "" {
		t := ErrTypeInvalidResponse
		if resp.StatusCode == http.StatusNotFound {
			t = ErrTypeModelNotFound
		}
		return &ClientError{Type: t, Message: ollamaErr.Error}
	}
	return &ClientError{Type: ErrTypeInvalidResponse, Message: fallback + ": " + resp.Status}
}
