// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "github.com/jeranaias/helios/internal/ollama"

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is one role-tagged message exchanged with the model.
type Turn struct {
	Role    Role
	Content string
}

// SystemTurn creates a system turn.
func SystemTurn(content string) Turn {
	return Turn{Role: RoleSystem, Content: content}
}

// UserTurn creates a user turn.
func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

// AssistantTurn creates an assistant turn.
func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

// ToOllama converts the turn to the wire message type.
func (t Turn) ToOllama() ollama.Message {
	switch t.Role {
	case RoleSystem:
		return ollama.NewSystemMessage(t.Content)
	case RoleAssistant:
		return ollama.NewAssistantMessage(t.Content)
	case RoleUser:
		return ollama.NewUserMessage(t.Content)
	default:
		return ollama.Message{Role: t.Role.String(), Content: t.Content}
	}
}

// ToOllamaMessages converts turns in order.
func ToOllamaMessages(turns []Turn) []ollama.Message {
	msgs := make([]ollama.Message, len(turns))
	for i, t := range turns {
		msgs[i] = t.ToOllama()
	}
	return msgs
}
