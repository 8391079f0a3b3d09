package core

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author category of a message.
type Role string

const (
	// RoleUser marks a message authored by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks a message produced by an agent on behalf of the system.
	RoleAssistant Role = "assistant"
	// RoleSystem marks an internally generated control message.
	RoleSystem Role = "system"
	// RoleAgent marks an agent-to-agent message.
	RoleAgent Role = "agent"
)

// Message is a single entry in a session's conversation log. Once appended to
// a session a message is immutable; the log is insertion ordered and never
// reordered.
type Message struct {
	ID        string         `json:"id"`
	Role      Role           `json:"role"`
	Content   string         `json:"content"`
	AgentID   string         `json:"agentId,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewUserMessage builds a user-authored message with a fresh id.
func NewUserMessage(content string) Message {
	return Message{
		ID:        NewID(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// NewAssistantMessage builds an assistant message attributed to the given agent.
func NewAssistantMessage(agentID, content string, metadata map[string]any) Message {
	return Message{
		ID:        NewID(),
		Role:      RoleAssistant,
		Content:   content,
		AgentID:   agentID,
		Timestamp: time.Now().UTC(),
		Metadata:  metadata,
	}
}

// NewID generates a unique identifier for messages, sessions and spans.
func NewID() string { return uuid.NewString() }
