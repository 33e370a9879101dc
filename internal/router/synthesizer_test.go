package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldlens/concierge/domain"
)

func TestSynthesizeOrderSummary(t *testing.T) {
	s := NewSynthesizer()

	text := s.Synthesize(domain.Query{}, []domain.CapabilityCall{{
		Capability: "orders.lookup",
		Payload: domain.OrderSummary{
			Doctor:       "Sarah Johnson",
			TotalOrders:  1,
			TotalValue:   2500,
			StatusCounts: map[string]int{"On Hold": 1},
			RecentOrders: []domain.Order{{
				OrderID: "ORD-001", Product: "Guardant360",
				Status: "On Hold", Amount: 2500, Date: "2024-01-15",
			}},
		},
	}})

	assert.Contains(t, text, "1 orders for Dr. Sarah Johnson")
	assert.Contains(t, text, "$2500.00")
	assert.Contains(t, text, "1 on hold")
	assert.Contains(t, text, "ORD-001")
	assert.Contains(t, text, "Data sources consulted: orders.")
}

func TestSynthesizeEngagementContacts(t *testing.T) {
	s := NewSynthesizer()

	text := s.Synthesize(domain.Query{}, []domain.CapabilityCall{{
		Capability: "engagements.lookup",
		Payload: domain.EngagementInfo{
			Doctor:   "Dr. Ahmed Shafique",
			LastDate: "2024-01-20",
			Type:     "In-Person Visit",
			Outcome:  "Positive",
			ContactsMade: []domain.ContactMade{
				{ContactType: "phone_call", Contact: "IT Manager Bob Johnson", Date: "2024-01-20", Purpose: "Integration"},
			},
		},
	}})

	assert.Contains(t, text, "Dr. Ahmed Shafique")
	assert.Contains(t, text, "Business contacts made:")
	assert.Contains(t, text, "IT Manager Bob Johnson")
	assert.Contains(t, text, "phone call")
	assert.NotContains(t, text, "phone_call")
}

func TestSynthesizeNoDataVariants(t *testing.T) {
	s := NewSynthesizer()

	engagement := s.Synthesize(domain.Query{}, []domain.CapabilityCall{{
		Capability: "engagements.lookup",
		Payload:    domain.EngagementInfo{Doctor: "Nobody", NoData: true},
	}})
	assert.Contains(t, engagement, "no engagement records")

	compliance := s.Synthesize(domain.Query{}, []domain.CapabilityCall{{
		Capability: "compliance.check",
		Payload:    domain.ComplianceStatus{Doctor: "Nobody", NoData: true},
	}})
	assert.Contains(t, compliance, "no compliance records")
}

func TestSynthesizeMixedSuccessAndFailure(t *testing.T) {
	s := NewSynthesizer()

	text := s.Synthesize(domain.Query{}, []domain.CapabilityCall{
		{Capability: "orders.lookup", Err: domain.ErrCapabilityFailure},
		{Capability: "compliance.check", Payload: domain.ComplianceStatus{
			Doctor: "Dr. Julie Martinez", AnnualLimit: 3500, CurrentSpent: 2100,
			Remaining: 1400, PercentageUsed: 60, Risk: domain.RiskLow,
		}},
	})

	assert.Contains(t, text, "wasn't able to complete the orders lookup")
	assert.Contains(t, text, "Dr. Julie Martinez")
	// Only the successful call counts as a consulted source.
	assert.Contains(t, text, "Data sources consulted: compliance.")
}

func TestSynthesizeAllFailed(t *testing.T) {
	s := NewSynthesizer()

	text := s.Synthesize(domain.Query{}, []domain.CapabilityCall{
		{Capability: "orders.lookup", Err: domain.ErrCapabilityFailure},
	})
	assert.NotContains(t, text, "Data sources consulted")
}

func TestSynthesizeKnowledgeFallbackNote(t *testing.T) {
	s := NewSynthesizer()

	text := s.Synthesize(domain.Query{}, []domain.CapabilityCall{{
		Capability: "knowledge.lookup",
		Payload:    domain.KnowledgeAnswer{Text: "Canned answer.", Fallback: true},
	}})
	assert.Contains(t, text, "Canned answer.")
	assert.Contains(t, text, "temporarily unavailable")
}
