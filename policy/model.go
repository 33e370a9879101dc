package policy

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/fieldlens/concierge/domain"
	"github.com/fieldlens/concierge/internal/adapter/llm"
)

const classifierPrompt = `You are a guardrail for a field sales assistant.
Classify the user query. Respond with only a JSON object:
{"allowed": bool, "violations": [labels], "rationale": string}
Violation labels: pii:phone, pii:email, pii:ssn, pii:address,
off_topic:math, off_topic:humor, off_topic:general.
Requests for personal contact details are violations. Questions about
business relationships ("who has Dr. X contacted") are allowed.`

// ModelClassifier delegates classification to a chat model that returns
// a JSON verdict. Any model or parse error fails closed.
type ModelClassifier struct {
	client llm.Client
}

var _ Classifier = (*ModelClassifier)(nil)

func NewModelClassifier(client llm.Client) *ModelClassifier {
	return &ModelClassifier{client: client}
}

func (m *ModelClassifier) Classify(ctx context.Context, text string) domain.PolicyVerdict {
	resp, err := m.client.Complete(ctx, llm.CompletionRequest{
		System: classifierPrompt,
		User:   text,
	})
	if err != nil {
		log.Warn().Err(err).Msg("model classification failed, denying by default")
		return domain.BlockedVerdict(
			"guardrail evaluation failed, denying by default",
			domain.ViolationClassifierFail,
		)
	}

	var raw struct {
		Allowed    bool     `json:"allowed"`
		Violations []string `json:"violations"`
		Rationale  string   `json:"rationale"`
	}
	if err := json.Unmarshal([]byte(extractJSON(resp.Content)), &raw); err != nil {
		log.Warn().Err(err).Msg("model classification returned unparseable verdict")
		return domain.BlockedVerdict(
			"guardrail returned unexpected decision shape, denying by default",
			domain.ViolationClassifierFail,
		)
	}

	verdict := domain.PolicyVerdict{
		Allowed:    raw.Allowed,
		Violations: raw.Violations,
		Rationale:  raw.Rationale,
	}
	if len(verdict.Violations) > 0 {
		verdict.Allowed = false
	}
	return verdict
}

// extractJSON strips markdown fences and surrounding prose so a verdict
// embedded in a chatty reply still parses.
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return content
	}
	return content[start : end+1]
}
