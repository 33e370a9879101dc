package domain

import (
	"fmt"
	"net/url"
	"time"
)

// SessionType selects the persistence strategy for a session.
type SessionType string

const (
	// SessionPersistent survives process restart (durable artifact per key).
	SessionPersistent SessionType = "persistent"
	// SessionTemporary is volatile and scoped to the process lifetime.
	SessionTemporary SessionType = "temporary"
)

// Valid reports whether t is a known session type.
func (t SessionType) Valid() bool {
	return t == SessionPersistent || t == SessionTemporary
}

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleError     = "error"
)

// TurnMetadata is optional per-turn annotation.
type TurnMetadata struct {
	ToolsUsed []string      `json:"tools_used,omitempty"`
	Elapsed   time.Duration `json:"execution_time,omitempty"`
	Model     string        `json:"model,omitempty"`
}

// SessionTurn is one append-only entry of a conversation.
type SessionTurn struct {
	Role      string        `json:"role"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	Metadata  *TurnMetadata `json:"metadata,omitempty"`
}

// SessionKey identifies a session by (user, type, optional conversation).
type SessionKey struct {
	UserID         string      `json:"user_id"`
	Type           SessionType `json:"session_type"`
	ConversationID string      `json:"conversation_id,omitempty"`
}

// Encode renders the key as a single collision-free string. Each component
// is escaped so that separators inside user-supplied ids cannot alias a
// different tuple.
func (k SessionKey) Encode() string {
	s := url.QueryEscape(k.UserID) + "_" + url.QueryEscape(string(k.Type))
	if k.ConversationID != "" {
		s += "_" + url.QueryEscape(k.ConversationID)
	}
	return s
}

func (k SessionKey) String() string { return k.Encode() }

// Validate checks the key components.
func (k SessionKey) Validate() error {
	if k.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if !k.Type.Valid() {
		return fmt.Errorf("%w: unknown session type %q", ErrValidation, k.Type)
	}
	return nil
}

// SessionSummary reports per-role turn counts for one session.
type SessionSummary struct {
	Key        string         `json:"session_key"`
	TotalTurns int            `json:"total_turns"`
	ByRole     map[string]int `json:"by_role"`
	Type       SessionType    `json:"session_type"`
	HasHistory bool           `json:"has_conversation_data"`
}
