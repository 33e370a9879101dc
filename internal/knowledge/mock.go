package knowledge

import (
	"context"
	"strings"

	"github.com/fieldlens/concierge/domain"
)

type cannedAnswer struct {
	keywords  []string
	text      string
	citations []domain.Citation
}

// MockRetriever serves canned product answers without any network
// dependency. Citations use synthetic URIs so the reference resolver can
// still be exercised end to end.
type MockRetriever struct {
	answers  []cannedAnswer
	fallback string
}

var _ Retriever = (*MockRetriever)(nil)

func NewMockRetriever() *MockRetriever {
	return &MockRetriever{
		answers: []cannedAnswer{
			{
				keywords: []string{"guardant360", "guardant 360"},
				text: "Guardant360 is a comprehensive liquid biopsy test that analyzes " +
					"circulating tumor DNA to identify genomic alterations in advanced " +
					"solid tumors. Typical turnaround is about seven days from sample receipt.",
				citations: []domain.Citation{
					{URI: "s3://mock-bucket/product-guides/guardant360-overview.pdf", Snippet: "Guardant360 comprehensive genomic profiling overview."},
					{URI: "s3://mock-bucket/product-guides/liquid-biopsy-basics.pdf", Snippet: "Principles of circulating tumor DNA analysis."},
				},
			},
			{
				keywords: []string{"reveal"},
				text: "Guardant Reveal is a blood-only test for residual disease and " +
					"recurrence monitoring in early-stage colorectal cancer. It requires " +
					"no tissue sample.",
				citations: []domain.Citation{
					{URI: "s3://mock-bucket/product-guides/guardant-reveal-overview.pdf", Snippet: "Guardant Reveal residual disease monitoring."},
				},
			},
			{
				keywords: []string{"omni"},
				text: "GuardantOMNI is a broad-panel liquid biopsy assay designed for " +
					"biopharmaceutical research and clinical trial enrollment.",
				citations: []domain.Citation{
					{URI: "s3://mock-bucket/product-guides/guardantomni-overview.pdf", Snippet: "GuardantOMNI research panel description."},
				},
			},
		},
		fallback: "I can help with questions about Guardant360, Guardant Reveal, and " +
			"GuardantOMNI. Could you tell me which product you are asking about?",
	}
}

// Retrieve matches the query against canned answers; an unmatched query
// gets the generic product prompt with no citations.
func (m *MockRetriever) Retrieve(_ context.Context, query string) (*Result, error) {
	lower := strings.ToLower(query)
	for _, answer := range m.answers {
		for _, kw := range answer.keywords {
			if strings.Contains(lower, kw) {
				return &Result{Text: answer.text, Citations: answer.citations}, nil
			}
		}
	}
	return &Result{Text: m.fallback}, nil
}
