package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldlens/concierge/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return engine
}

func TestClassifyAllowsBusinessQueries(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	queries := []string{
		"What is the status of Dr. Sarah Johnson's orders?",
		"Show me product trends for this month",
		"Is Dr. Shafique close to his compliance limit?",
		"Tell me about Guardant360",
	}
	for _, q := range queries {
		verdict := engine.Classify(ctx, q)
		assert.True(t, verdict.Allowed, "expected allow for %q, got %+v", q, verdict)
		assert.Empty(t, verdict.Violations)
	}
}

func TestClassifyBlocksPIIRequests(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	cases := []struct {
		query     string
		violation string
	}{
		{"What is Dr. Johnson's phone number?", domain.ViolationPIIPhone},
		{"Give me the contact number for Dr. Martinez", domain.ViolationPIIPhone},
		{"What's Dr. Shafique's email address?", domain.ViolationPIIEmail},
		{"I need Dr. Johnson's SSN", domain.ViolationPIISSN},
		{"What is the social security number of Dr. Brown?", domain.ViolationPIISSN},
		{"Where is Dr. Martinez's home address?", domain.ViolationPIIAddress},
	}
	for _, tc := range cases {
		verdict := engine.Classify(ctx, tc.query)
		assert.False(t, verdict.Allowed, "expected block for %q", tc.query)
		assert.Contains(t, verdict.Violations, tc.violation, "query %q", tc.query)
	}
}

func TestClassifyBlocksOffTopic(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	cases := []struct {
		query     string
		violation string
	}{
		{"What is 15 * 23?", domain.ViolationOffTopicMath},
		{"Calculate the square root of 144", domain.ViolationOffTopicMath},
		{"Tell me a joke", domain.ViolationOffTopicHumor},
		{"Say something funny", domain.ViolationOffTopicHumor},
		{"What do you think about the election?", domain.ViolationOffTopicOther},
		{"What's your opinion on this?", domain.ViolationOffTopicOther},
	}
	for _, tc := range cases {
		verdict := engine.Classify(ctx, tc.query)
		assert.False(t, verdict.Allowed, "expected block for %q", tc.query)
		assert.Contains(t, verdict.Violations, tc.violation, "query %q", tc.query)
	}
}

func TestClassifyAllowsRelationshipQueries(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	// Business-relationship questions brush against contact vocabulary but
	// must stay allowed.
	queries := []string{
		"Who has Dr. Shafique contacted recently?",
		"Who did Dr. Martinez engage with last month?",
		"Has Dr. Johnson been in contact with the lab director?",
	}
	for _, q := range queries {
		verdict := engine.Classify(ctx, q)
		assert.True(t, verdict.Allowed, "expected allow for %q, got %+v", q, verdict)
	}
}

func TestClassifyStrongIdentifiersBeatRelationshipException(t *testing.T) {
	engine := newTestEngine(t)

	// An explicit identifier request inside a relationship phrasing still blocks.
	verdict := engine.Classify(context.Background(),
		"Who has Dr. Shafique contacted, and what is his phone number?")
	assert.False(t, verdict.Allowed)
	assert.Contains(t, verdict.Violations, domain.ViolationPIIPhone)
}

func TestClassifyFailsClosedOnBadPolicy(t *testing.T) {
	// A policy that yields no result object must produce a blocking verdict.
	engine, err := NewEngine(context.Background(), `
package guardrail

unrelated := true
`)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	verdict := engine.Classify(context.Background(), "show me orders")
	assert.False(t, verdict.Allowed)
	assert.Contains(t, verdict.Violations, domain.ViolationClassifierFail)
}

func TestClassifyRationalePopulated(t *testing.T) {
	engine := newTestEngine(t)

	allowed := engine.Classify(context.Background(), "Show me regional performance")
	assert.NotEmpty(t, allowed.Rationale)

	blocked := engine.Classify(context.Background(), "Tell me a joke")
	assert.NotEmpty(t, blocked.Rationale)
	assert.NotEqual(t, allowed.Rationale, blocked.Rationale)
}
