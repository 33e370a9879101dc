// Package router decides which capabilities serve a query, runs them, and
// synthesizes the final answer text.
package router

import (
	"context"
	"regexp"
	"strings"

	"github.com/fieldlens/concierge/domain"
)

// Selection is one capability pick with its call arguments.
type Selection struct {
	Capability string
	Args       map[string]any
}

// Selector maps an allowed query to an ordered capability list.
type Selector interface {
	Select(ctx context.Context, q domain.Query) ([]Selection, error)
}

var doctorNamePattern = regexp.MustCompile(`(?i)\bdr\.?\s+([a-z]+(?:\s+[a-z]+)?)`)

// extractDoctor pulls a doctor name out of free text, "Dr. First Last" or
// "Dr. Last". Returns empty when no doctor is mentioned.
func extractDoctor(text string) string {
	m := doctorNamePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	name := strings.TrimSpace(m[1])
	// A trailing verb means the pattern over-matched ("Dr. Smith ordered").
	if first, rest, ok := strings.Cut(name, " "); ok {
		switch strings.ToLower(rest) {
		case "ordered", "order", "orders", "contacted", "contact", "doing",
			"spent", "has", "have", "been", "made", "and", "is", "was":
			name = first
		}
	}
	return name
}

// RuleSelector picks capabilities by keyword intent. It is the offline
// default and the fallback when the model selector yields nothing usable.
type RuleSelector struct{}

var _ Selector = (*RuleSelector)(nil)

func NewRuleSelector() *RuleSelector { return &RuleSelector{} }

func (s *RuleSelector) Select(_ context.Context, q domain.Query) ([]Selection, error) {
	text := strings.ToLower(q.Text)
	doctor := extractDoctor(q.Text)
	doctorArgs := map[string]any{}
	if doctor != "" {
		doctorArgs["doctor_name"] = doctor
	}

	if comprehensive(text) && doctor != "" {
		return []Selection{
			{Capability: "orders.lookup", Args: doctorArgs},
			{Capability: "engagements.lookup", Args: doctorArgs},
			{Capability: "compliance.check", Args: doctorArgs},
		}, nil
	}

	switch {
	case containsAny(text, "engage", "contacted", "contact with", "talking point",
		"last visit", "meeting", "interaction", "who has", "who did"):
		return []Selection{{Capability: "engagements.lookup", Args: doctorArgs}}, nil

	case containsAny(text, "compliance", "limit", "budget", "spend", "spent", "risk level"):
		return []Selection{{Capability: "compliance.check", Args: doctorArgs}}, nil

	case containsAny(text, "trend", "analytics", "performance", "region", "insight",
		"growing", "revenue", "market"):
		return []Selection{{Capability: "analytics.report", Args: map[string]any{"mode": analyticsMode(text)}}}, nil

	case containsAny(text, "order", "purchase", "bought", "status of"):
		return []Selection{{Capability: "orders.lookup", Args: doctorArgs}}, nil

	default:
		return []Selection{{Capability: "knowledge.lookup", Args: map[string]any{"query": q.Text}}}, nil
	}
}

func comprehensive(text string) bool {
	return containsAny(text, "everything about", "full picture", "comprehensive",
		"overview of", "all about", "summary of dr", "how is dr", "how's dr")
}

func analyticsMode(text string) string {
	switch {
	case containsAny(text, "region", "territory"):
		return string(domain.AnalyticsRegional)
	case containsAny(text, "insight", "highlight", "key takeaway"):
		return string(domain.AnalyticsInsights)
	default:
		return string(domain.AnalyticsTrends)
	}
}

func containsAny(text string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
