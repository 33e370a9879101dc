package capability

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/fieldlens/concierge/domain"
	"github.com/fieldlens/concierge/internal/knowledge"
)

// Knowledge answers free-text product questions through the configured
// retriever, with a canned fallback when retrieval is unavailable.
type Knowledge struct {
	retriever knowledge.Retriever
	fallback  knowledge.Retriever
}

var _ Capability = (*Knowledge)(nil)

// NewKnowledge wires the primary retriever plus an always-available mock
// fallback. Passing nil as primary runs fallback-only.
func NewKnowledge(primary knowledge.Retriever) *Knowledge {
	return &Knowledge{retriever: primary, fallback: knowledge.NewMockRetriever()}
}

func (k *Knowledge) Name() string { return "knowledge.lookup" }

func (k *Knowledge) Description() string {
	return "Answer product and clinical questions from the knowledge base with source citations."
}

func (k *Knowledge) Params() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The product question to answer",
			},
		},
		"required": []string{"query"},
	}
}

func (k *Knowledge) Invoke(ctx context.Context, args map[string]any) (domain.Payload, error) {
	query := stringArg(args, "query")
	if query == "" {
		return nil, fmt.Errorf("%w: knowledge lookup requires a query", domain.ErrValidation)
	}

	if k.retriever != nil {
		result, err := k.retriever.Retrieve(ctx, query)
		if err == nil {
			return domain.KnowledgeAnswer{
				Query:     query,
				Text:      result.Text,
				Fallback:  result.Fallback,
				Citations: result.Citations,
			}, nil
		}
		log.Warn().Err(err).Msg("knowledge retrieval failed, serving fallback answer")
	}

	result, err := k.fallback.Retrieve(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: knowledge fallback: %v", domain.ErrCapabilityFailure, err)
	}
	return domain.KnowledgeAnswer{
		Query:     query,
		Text:      result.Text,
		Fallback:  true,
		Citations: result.Citations,
	}, nil
}
