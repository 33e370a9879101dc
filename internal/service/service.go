// Package service hosts the query orchestrator: guardrail classification,
// capability routing, synthesis, output scanning, and session recording.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fieldlens/concierge/domain"
	"github.com/fieldlens/concierge/internal/router"
	"github.com/fieldlens/concierge/internal/session"
	"github.com/fieldlens/concierge/policy"
)

const defaultQueryTimeout = 30 * time.Second

const blockedResponse = "I can only help with business questions about orders, " +
	"engagements, compliance, and our products. I can't share personal contact " +
	"information or answer off-topic requests."

const withheldResponse = "I found an answer but withheld it because it contained " +
	"information I'm not allowed to share."

// Orchestrator runs one query end to end. The guardrail classification is
// a blocking prerequisite: no capability runs before an allow verdict.
type Orchestrator struct {
	classifier  policy.Classifier
	selector    router.Selector
	dispatcher  *router.Dispatcher
	synthesizer *router.Synthesizer
	sessions    *session.Manager
	metrics     *Metrics
	model       string
	timeout     time.Duration
	started     time.Time
}

// Options configures optional orchestrator behavior.
type Options struct {
	// Timeout bounds one query end to end. Zero means the default.
	Timeout time.Duration
	// Model is the reported model identifier on answers.
	Model string
}

func NewOrchestrator(
	classifier policy.Classifier,
	selector router.Selector,
	dispatcher *router.Dispatcher,
	sessions *session.Manager,
	opts Options,
) *Orchestrator {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &Orchestrator{
		classifier:  classifier,
		selector:    selector,
		dispatcher:  dispatcher,
		synthesizer: router.NewSynthesizer(),
		sessions:    sessions,
		metrics:     &Metrics{},
		model:       opts.Model,
		timeout:     timeout,
		started:     time.Now(),
	}
}

// Metrics exposes the orchestrator counters.
func (o *Orchestrator) Metrics() Snapshot { return o.metrics.Snapshot() }

// Uptime reports how long the orchestrator has been running.
func (o *Orchestrator) Uptime() time.Duration { return time.Since(o.started) }

// Model reports the configured model identifier.
func (o *Orchestrator) Model() string { return o.model }

// Sessions exposes the session manager for the transport layer.
func (o *Orchestrator) Sessions() *session.Manager { return o.sessions }

// Capabilities lists the registered capability names.
func (o *Orchestrator) Capabilities() []string { return o.dispatcher.Capabilities() }

// Handle processes one query: classify, route, dispatch, synthesize,
// scan, and record. It always returns an Answer; handled failures are
// encoded on the answer rather than returned as errors.
func (o *Orchestrator) Handle(ctx context.Context, q domain.Query) domain.Answer {
	started := time.Now()
	o.metrics.RecordQuery()

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	key := domain.SessionKey{
		UserID:         q.UserID,
		Type:           q.SessionType,
		ConversationID: q.ConversationID,
	}
	o.record(key, domain.SessionTurn{
		Role:      domain.RoleUser,
		Content:   q.Text,
		CreatedAt: time.Now().UTC(),
	})

	answer := o.run(ctx, q, started)
	answer.Elapsed = time.Since(started)
	answer.Model = o.model

	role := domain.RoleAssistant
	if !answer.Success {
		role = domain.RoleError
	}
	o.record(key, domain.SessionTurn{
		Role:      role,
		Content:   answer.Response,
		CreatedAt: time.Now().UTC(),
		Metadata: &domain.TurnMetadata{
			ToolsUsed: answer.ToolsUsed,
			Elapsed:   answer.Elapsed,
			Model:     answer.Model,
		},
	})
	return answer
}

func (o *Orchestrator) run(ctx context.Context, q domain.Query, started time.Time) domain.Answer {
	verdict := o.classify(ctx, q.Text)
	if !verdict.Allowed {
		o.metrics.RecordBlock()
		log.Info().
			Strs("violations", verdict.Violations).
			Str("user", q.UserID).
			Msg("query blocked by guardrail")
		ans := domain.FailureAnswer(domain.FailureGuardrail, blockedResponse, time.Since(started))
		ans.Verdict = verdict
		return ans
	}

	selections, err := o.selector.Select(ctx, q)
	if err != nil || len(selections) == 0 {
		o.metrics.RecordFailure()
		log.Error().Err(err).Msg("capability selection failed")
		return domain.FailureAnswer(domain.FailureInternal,
			"Something went wrong while planning that request. Please try again.",
			time.Since(started))
	}

	calls := o.dispatcher.Dispatch(ctx, selections)

	allFailed := true
	var tools []string
	seen := map[string]bool{}
	var citations []domain.Citation
	for _, call := range calls {
		if call.Err != nil {
			continue
		}
		allFailed = false
		if !seen[call.Capability] {
			seen[call.Capability] = true
			tools = append(tools, call.Capability)
		}
		if ka, ok := call.Payload.(domain.KnowledgeAnswer); ok && !ka.Fallback {
			citations = append(citations, ka.Citations...)
		}
	}
	if allFailed {
		o.metrics.RecordFailure()
		return domain.FailureAnswer(domain.FailureCapability,
			"I couldn't reach the data sources needed for that request. Please try again shortly.",
			time.Since(started))
	}

	text := o.synthesizer.Synthesize(q, calls)

	if scan := policy.ScanOutput(text); !scan.Safe {
		o.metrics.RecordBlock()
		log.Warn().
			Strs("violations", scan.Violations).
			Msg("synthesized response withheld by output scan")
		ans := domain.FailureAnswer(domain.FailureGuardrail, withheldResponse, time.Since(started))
		ans.Verdict = domain.BlockedVerdict("response withheld by output scan", domain.ViolationOutputPII)
		ans.ToolsUsed = tools
		return ans
	}

	if tools == nil {
		tools = []string{}
	}
	return domain.Answer{
		Success:   true,
		Response:  text,
		ToolsUsed: tools,
		Citations: citations,
		Elapsed:   time.Since(started),
		Verdict:   verdict,
	}
}

// classify runs the guardrail, retrying once when the first attempt was
// cut short by a deadline while time remains on the parent context.
func (o *Orchestrator) classify(ctx context.Context, text string) domain.PolicyVerdict {
	attempt, cancel := context.WithTimeout(ctx, 5*time.Second)
	verdict := o.classifier.Classify(attempt, text)
	cancel()

	if !verdict.Allowed &&
		len(verdict.Violations) == 1 &&
		verdict.Violations[0] == domain.ViolationClassifierFail &&
		ctx.Err() == nil &&
		errors.Is(attempt.Err(), context.DeadlineExceeded) {
		log.Warn().Msg("guardrail classification timed out, retrying once")
		verdict = o.classifier.Classify(ctx, text)
	}
	return verdict
}

func (o *Orchestrator) record(key domain.SessionKey, turn domain.SessionTurn) {
	if o.sessions == nil {
		return
	}
	if err := o.sessions.Append(key, turn); err != nil {
		log.Warn().Err(err).Str("session", key.Encode()).Msg("failed to record session turn")
	}
}
