package domain

// Violation labels produced by the policy classifier.
const (
	ViolationPIIPhone       = "pii:phone"
	ViolationPIIEmail       = "pii:email"
	ViolationPIISSN         = "pii:ssn"
	ViolationPIIAddress     = "pii:address"
	ViolationOffTopicMath   = "off_topic:math"
	ViolationOffTopicHumor  = "off_topic:humor"
	ViolationOffTopicOther  = "off_topic:general"
	ViolationClassifierFail = "guardrail:error"
	ViolationOutputPII      = "output:pii"
)

// PolicyVerdict is the structured result of classifying one query.
// Produced once per Query, never mutated.
type PolicyVerdict struct {
	Allowed    bool     `json:"allowed"`
	Violations []string `json:"violated_policies,omitempty"`
	Rationale  string   `json:"rationale,omitempty"`
}

// BlockedVerdict builds a denying verdict, used by fail-closed paths.
func BlockedVerdict(rationale string, violations ...string) PolicyVerdict {
	return PolicyVerdict{
		Allowed:    false,
		Violations: violations,
		Rationale:  rationale,
	}
}
