// Package domain holds the core types shared across the router,
// policy, session, and transport layers.
package domain

// UserContext carries attributes attached to every invocation. The core
// never interprets these; capabilities and prompts may surface them.
type UserContext struct {
	Name      string `json:"name,omitempty"`
	Territory string `json:"territory,omitempty"`
	Role      string `json:"role,omitempty"`
}

// Query is a single natural-language request. Immutable once submitted.
type Query struct {
	Text           string      `json:"query"`
	UserID         string      `json:"user_id"`
	SessionType    SessionType `json:"session_type,omitempty"`
	ConversationID string      `json:"conversation_id,omitempty"`
	Context        UserContext `json:"user_context,omitempty"`
}

// DefaultUserContext mirrors the defaults applied when a caller supplies none.
func DefaultUserContext() UserContext {
	return UserContext{
		Name:      "Sales Representative",
		Territory: "Northeast",
		Role:      "Sales Rep",
	}
}
