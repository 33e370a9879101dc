package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldlens/concierge/domain"
)

func selectOne(t *testing.T, text string) []Selection {
	t.Helper()
	selections, err := NewRuleSelector().Select(context.Background(), domain.Query{Text: text})
	assert.NoError(t, err)
	assert.NotEmpty(t, selections)
	return selections
}

func TestRuleSelectorIntents(t *testing.T) {
	cases := []struct {
		query      string
		capability string
	}{
		{"What is the status of Dr. Johnson's orders?", "orders.lookup"},
		{"Who has Dr. Shafique contacted recently?", "engagements.lookup"},
		{"What were the talking points with Dr. Martinez?", "engagements.lookup"},
		{"Is Dr. Johnson near her compliance limit?", "compliance.check"},
		{"How much has Dr. Shafique spent this year?", "compliance.check"},
		{"Show me product trends", "analytics.report"},
		{"Which region has the best revenue?", "analytics.report"},
		{"Tell me about Guardant360", "knowledge.lookup"},
	}
	for _, tc := range cases {
		selections := selectOne(t, tc.query)
		assert.Equal(t, tc.capability, selections[0].Capability, "query %q", tc.query)
	}
}

func TestRuleSelectorComprehensive(t *testing.T) {
	selections := selectOne(t, "Give me a comprehensive overview of Dr. Shafique")
	assert.Len(t, selections, 3)
	assert.Equal(t, "orders.lookup", selections[0].Capability)
	assert.Equal(t, "engagements.lookup", selections[1].Capability)
	assert.Equal(t, "compliance.check", selections[2].Capability)
	for _, sel := range selections {
		assert.Equal(t, "Shafique", sel.Args["doctor_name"])
	}
}

func TestRuleSelectorAnalyticsModes(t *testing.T) {
	regional := selectOne(t, "How are the regions performing?")
	assert.Equal(t, "analytics.report", regional[0].Capability)
	assert.Equal(t, "regional", regional[0].Args["mode"])

	insights := selectOne(t, "What are the key insights from this month's performance?")
	assert.Equal(t, "insights", insights[0].Args["mode"])

	trends := selectOne(t, "Show me product trends")
	assert.Equal(t, "trends", trends[0].Args["mode"])
}

func TestRuleSelectorKnowledgeCarriesQuery(t *testing.T) {
	selections := selectOne(t, "What cancers does Guardant Reveal cover?")
	assert.Equal(t, "knowledge.lookup", selections[0].Capability)
	assert.Equal(t, "What cancers does Guardant Reveal cover?", selections[0].Args["query"])
}

func TestExtractDoctor(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"What did Dr. Sarah Johnson order?", "Sarah Johnson"},
		{"Any update from dr martinez", "martinez"},
		{"How is Dr. Shafique doing?", "Shafique"},
		{"Show me all orders", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, extractDoctor(tc.text), "text %q", tc.text)
	}
}
