// Package policy implements the input/output guardrails: a rego rule
// engine for query classification, an offline keyword PII detector, and
// a response scanner for generated text.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"

	"github.com/fieldlens/concierge/domain"
)

// Classifier produces a policy verdict for raw query text. Implementations
// must fail closed: a classification error yields a blocking verdict, never
// an error the caller could ignore.
type Classifier interface {
	Classify(ctx context.Context, text string) domain.PolicyVerdict
}

// Engine evaluates the guardrail rego policy.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine compiles the given rego module and prepares it for evaluation.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.guardrail.result"),
		rego.Module("guardrail.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}
	return &Engine{query: query}, nil
}

// Classify evaluates the policy for one query text. Evaluation errors or
// malformed policy output fail closed to a blocking verdict.
func (e *Engine) Classify(ctx context.Context, text string) domain.PolicyVerdict {
	results, err := e.query.Eval(ctx, rego.EvalInput(map[string]any{"text": text}))
	if err != nil {
		return domain.BlockedVerdict(
			"guardrail evaluation failed, denying by default",
			domain.ViolationClassifierFail,
		)
	}
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return domain.BlockedVerdict(
			"guardrail produced no decision, denying by default",
			domain.ViolationClassifierFail,
		)
	}

	obj, ok := results[0].Expressions[0].Value.(map[string]any)
	if !ok {
		return domain.BlockedVerdict(
			"guardrail returned unexpected decision shape, denying by default",
			domain.ViolationClassifierFail,
		)
	}

	verdict := domain.PolicyVerdict{}
	if allowed, ok := obj["allowed"].(bool); ok {
		verdict.Allowed = allowed
	}
	if rationale, ok := obj["rationale"].(string); ok {
		verdict.Rationale = rationale
	}
	if raw, ok := obj["violations"].([]any); ok {
		for _, v := range raw {
			if label, ok := v.(string); ok {
				verdict.Violations = append(verdict.Violations, label)
			}
		}
	}

	// A policy bug that reports "allowed" alongside violations still blocks.
	if len(verdict.Violations) > 0 {
		verdict.Allowed = false
	}
	return verdict
}

// DefaultPolicy is the guardrail rego module. Requests for personal
// contact identifiers are blocked; business-relationship questions that
// merely brush against the contact vocabulary ("who has Dr. X contacted")
// stay allowed.
const DefaultPolicy = `
package guardrail

default allowed = false

text := lower(input.text)

relationship_query {
	regex.match("who\\s+(has|have|did)\\b.*\\b(contact|engag)", text)
}

relationship_query {
	contains(text, "contacted by")
}

relationship_query {
	contains(text, "been in contact with")
}

violations["pii:phone"] { contains(text, "phone number") }
violations["pii:phone"] { contains(text, "telephone") }
violations["pii:phone"] { contains(text, "contact number") }
violations["pii:phone"] { contains(text, "phone"); not relationship_query }
violations["pii:phone"] { contains(text, "call "); not relationship_query; personal_target }

violations["pii:email"] { contains(text, "email address") }
violations["pii:email"] { contains(text, "contact email") }
violations["pii:email"] { contains(text, "email"); not relationship_query }
violations["pii:email"] { contains(text, "@"); not relationship_query }

violations["pii:ssn"] { contains(text, "ssn") }
violations["pii:ssn"] { contains(text, "social security") }

violations["pii:address"] { contains(text, "home address") }
violations["pii:address"] { contains(text, "mailing address") }
violations["pii:address"] { contains(text, "personal address") }
violations["pii:address"] { address_alone; not relationship_query }

address_alone {
	contains(text, "address")
	not contains(text, "email address")
	not contains(text, "address the")
}

personal_target {
	regex.match("\\b(dr|doctor|him|her|them)\\b", text)
}

violations["off_topic:math"] { regex.match("what\\s+is\\s+[-0-9.]+\\s*[-+*/x]\\s*[-0-9.]+", text) }
violations["off_topic:math"] { contains(text, "calculate") }
violations["off_topic:math"] { contains(text, "solve ") }
violations["off_topic:math"] { contains(text, "math problem") }

violations["off_topic:humor"] { contains(text, "joke") }
violations["off_topic:humor"] { contains(text, "funny") }
violations["off_topic:humor"] { contains(text, "make me laugh") }

violations["off_topic:general"] { contains(text, "politic") }
violations["off_topic:general"] { contains(text, "election") }
violations["off_topic:general"] { contains(text, "religio") }
violations["off_topic:general"] { contains(text, "your opinion") }

allowed { count(violations) == 0 }

rationale := "query is business-appropriate" { count(violations) == 0 }

rationale := sprintf("blocked by policy: %s", [concat(", ", violations)]) { count(violations) > 0 }

result := {
	"allowed": allowed,
	"violations": violations,
	"rationale": rationale,
}
`
