package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldlens/concierge/domain"
	"github.com/fieldlens/concierge/internal/adapter/llm"
)

type stubClient struct {
	content string
	err     error
}

func (s stubClient) ModelName() string { return "stub" }

func (s stubClient) Complete(context.Context, llm.CompletionRequest) (*llm.Completion, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.Completion{Content: s.content}, nil
}

func TestModelClassifierParsesVerdict(t *testing.T) {
	c := NewModelClassifier(stubClient{
		content: `{"allowed": false, "violations": ["pii:phone"], "rationale": "asked for a phone number"}`,
	})

	verdict := c.Classify(context.Background(), "what is his phone number")
	assert.False(t, verdict.Allowed)
	assert.Equal(t, []string{"pii:phone"}, verdict.Violations)
	assert.Equal(t, "asked for a phone number", verdict.Rationale)
}

func TestModelClassifierStripsFences(t *testing.T) {
	c := NewModelClassifier(stubClient{
		content: "```json\n{\"allowed\": true, \"violations\": [], \"rationale\": \"business query\"}\n```",
	})

	verdict := c.Classify(context.Background(), "show me orders")
	assert.True(t, verdict.Allowed)
	assert.Empty(t, verdict.Violations)
}

func TestModelClassifierFailsClosedOnError(t *testing.T) {
	c := NewModelClassifier(stubClient{err: errors.New("provider down")})

	verdict := c.Classify(context.Background(), "show me orders")
	assert.False(t, verdict.Allowed)
	assert.Contains(t, verdict.Violations, domain.ViolationClassifierFail)
}

func TestModelClassifierFailsClosedOnGarbage(t *testing.T) {
	c := NewModelClassifier(stubClient{content: "sure, that looks fine to me!"})

	verdict := c.Classify(context.Background(), "show me orders")
	assert.False(t, verdict.Allowed)
	assert.Contains(t, verdict.Violations, domain.ViolationClassifierFail)
}

func TestModelClassifierViolationsForceBlock(t *testing.T) {
	// A contradictory verdict still blocks.
	c := NewModelClassifier(stubClient{
		content: `{"allowed": true, "violations": ["off_topic:humor"], "rationale": "joke"}`,
	})

	verdict := c.Classify(context.Background(), "tell me a joke")
	assert.False(t, verdict.Allowed)
}
