package router

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/fieldlens/concierge/domain"
	"github.com/fieldlens/concierge/internal/adapter/llm"
	"github.com/fieldlens/concierge/internal/capability"
)

const selectorSystemPrompt = `You are a routing assistant for a field sales support system.
Given a business question, call the tools needed to answer it. Call multiple
tools when the question spans orders, engagements, or compliance. Do not
answer the question yourself.`

// ModelSelector asks the chat model to pick capabilities via tool calls,
// falling back to keyword rules when the model returns none.
type ModelSelector struct {
	client   llm.Client
	registry *capability.Registry
	fallback Selector
}

var _ Selector = (*ModelSelector)(nil)

func NewModelSelector(client llm.Client, registry *capability.Registry) *ModelSelector {
	return &ModelSelector{
		client:   client,
		registry: registry,
		fallback: NewRuleSelector(),
	}
}

func (s *ModelSelector) Select(ctx context.Context, q domain.Query) ([]Selection, error) {
	tools := make([]llm.ToolSpec, 0, len(s.registry.Names()))
	for _, c := range s.registry.All() {
		tools = append(tools, llm.ToolSpec{
			Name:        c.Name(),
			Description: c.Description(),
			Parameters:  c.Params(),
		})
	}

	user := q.Text
	if q.Context.Name != "" {
		user = fmt.Sprintf("Rep %s (%s, %s) asks: %s",
			q.Context.Name, q.Context.Role, q.Context.Territory, q.Text)
	}

	resp, err := s.client.Complete(ctx, llm.CompletionRequest{
		System: selectorSystemPrompt,
		User:   user,
		Tools:  tools,
	})
	if err != nil {
		log.Warn().Err(err).Msg("router: model selection failed, using rules")
		return s.fallback.Select(ctx, q)
	}

	var picks []Selection
	for _, call := range resp.ToolCalls {
		if _, ok := s.registry.Get(call.Name); !ok {
			log.Warn().Str("tool", call.Name).Msg("router: model picked unknown capability")
			continue
		}
		picks = append(picks, Selection{Capability: call.Name, Args: call.Args})
	}
	if len(picks) == 0 {
		return s.fallback.Select(ctx, q)
	}
	return picks, nil
}
