// Package knowledge provides product knowledge retrieval: a Bedrock
// knowledge-base client for live deployments, an offline mock, and the
// citation-to-reference resolver used by the HTTP layer.
package knowledge

import (
	"context"

	"github.com/fieldlens/concierge/domain"
)

// Result is one retrieval outcome. Fallback marks a canned answer
// produced while the retrieval backend was unreachable.
type Result struct {
	Text      string
	Citations []domain.Citation
	Fallback  bool
}

// Retriever answers free-text product questions from the knowledge base.
type Retriever interface {
	Retrieve(ctx context.Context, query string) (*Result, error)
}
