// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import "time"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Message represents a chat message in the conversation.
type Message struct {
	Role    string `json:"role"`    // "system", "user", "assistant"
	Content string `json:"content"` // The message content
}

// ChatRequest is the request body for /api/chat endpoint.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// PullRequest is the request body for /api/pull endpoint.
type PullRequest struct {
	Model  string `json:"model"`
	Stream bool   `json:"stream"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ChatResponse is the response from /api/chat endpoint.
type ChatResponse struct {
	Model           string    `json:"model"`
	CreatedAt       time.Time `json:"created_at"`
	Message         Message   `json:"message"`
	Done            bool      `json:"done"`
	DoneReason      string    `json:"done_reason,omitempty"`
	TotalDuration   int64     `json:"total_duration,omitempty"` // nanoseconds
	PromptEvalCount int       `json:"prompt_eval_count,omitempty"`
	EvalCount       int       `json:"eval_count,omitempty"`
	EvalDuration    int64     `json:"eval_duration,omitempty"` // nanoseconds
}

// TotalTime returns the total generation time reported by the server.
func (r *ChatResponse) TotalTime() time.Duration {
	return time.Duration(r.TotalDuration)
}

// ModelInfo contains information about a locally available model.
type ModelInfo struct {
	Name       string       `json:"name"`
	Model      string       `json:"model"`
	ModifiedAt time.Time    `json:"modified_at"`
	Size       int64        `json:"size"`
	Digest     string       `json:"digest"`
	Details    ModelDetails `json:"details,omitempty"`
}

// ID returns the identifier to pass back to the API. Older servers only
// populate name.
func (m ModelInfo) ID() string {
	if m.Model != "" {
		return m.Model
	}
	return m.Name
}

// ModelDetails contains detailed information about a model.
type ModelDetails struct {
	Format            string `json:"format"`
	Family            string `json:"family"`
	ParameterSize     string `json:"parameter_size"`
	QuantizationLevel string `json:"quantization_level"`
}

// ListModelsResponse is the response from /api/tags endpoint.
type ListModelsResponse struct {
	Models []ModelInfo `json:"models"`
}

// PullProgress is one event of a streamed /api/pull response. Total and
// Completed are nil when the server did not send them.
type PullProgress struct {
	Status    string `json:"status,omitempty"`
	Digest    string `json:"digest,omitempty"`
	Total     *int64 `json:"total,omitempty"`
	Completed *int64 `json:"completed,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Percent reports download completion. ok is false unless both byte counts are
// present and the total is positive.
func (p PullProgress) Percent() (pct float64, ok bool) {
	if p.Total == nil || p.Completed == nil || *p.Total <= 0 {
		return 0, false
	}
	return float64(*p.Completed) / float64(*p.Total) * 100, true
}

// OllamaError represents an error body from the Ollama API.
type OllamaError struct {
	Error string `json:"error"`
}

// =============================================================================
// HELPER METHODS
// =============================================================================

// NewUserMessage creates a new user message.
func NewUserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: "assistant", Content: content}
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) Message {
	return Message{Role: "system", Content: content}
}
