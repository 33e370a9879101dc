package domain

import (
	"encoding/json"
	"time"
)

// FailureKind distinguishes handled failure classes on an Answer.
type FailureKind string

const (
	FailureNone       FailureKind = ""
	FailureGuardrail  FailureKind = "guardrail"   // input or output tripwire
	FailureCapability FailureKind = "capability"  // data source error
	FailureInternal   FailureKind = "internal"    // unexpected error
)

// CapabilityCall records one capability invocation for a query.
type CapabilityCall struct {
	Capability string          `json:"capability"`
	Args       map[string]any  `json:"args,omitempty"`
	Payload    Payload         `json:"-"`
	RawPayload json.RawMessage `json:"payload,omitempty"`
	Err        error           `json:"-"`
	Duration   time.Duration   `json:"duration"`
}

// Citation references a document backing a knowledge answer.
type Citation struct {
	URI      string            `json:"uri,omitempty"`
	Title    string            `json:"title,omitempty"`
	Snippet  string            `json:"snippet,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Reference is a resolved, user-facing download link for a citation.
type Reference struct {
	Filename string `json:"filename"`
	FileURL  string `json:"fileurl"`
}

// Answer is the final result for one query.
type Answer struct {
	Success   bool          `json:"success"`
	Response  string        `json:"response"`
	Model     string        `json:"model,omitempty"`
	ToolsUsed []string      `json:"tools_used"`
	Citations []Citation    `json:"citations,omitempty"`
	Elapsed   time.Duration `json:"execution_time"`
	Failure   FailureKind   `json:"-"`
	Err       string        `json:"error,omitempty"`
	Verdict   PolicyVerdict `json:"-"`
}

// FailureAnswer builds a handled-failure Answer.
func FailureAnswer(kind FailureKind, msg string, elapsed time.Duration) Answer {
	return Answer{
		Success:   false,
		Response:  msg,
		ToolsUsed: []string{},
		Elapsed:   elapsed,
		Failure:   kind,
		Err:       msg,
	}
}
