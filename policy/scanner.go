package policy

import "regexp"

// Output-side PII patterns. Applied to generated answers after synthesis,
// independent of the input classifier.
var (
	phonePattern = regexp.MustCompile(`\b\d{3}-\d{3}-\d{4}\b`)
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	ssnPattern   = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)
)

// ScanResult reports output-side pattern hits.
type ScanResult struct {
	Safe       bool     `json:"safe"`
	Violations []string `json:"violations,omitempty"`
}

// ScanOutput checks a generated response for phone, email, and SSN shaped
// values. A hit means the response must be withheld.
func ScanOutput(text string) ScanResult {
	var violations []string
	if phonePattern.MatchString(text) {
		violations = append(violations, "phone pattern detected in response")
	}
	if emailPattern.MatchString(text) {
		violations = append(violations, "email pattern detected in response")
	}
	if ssnPattern.MatchString(text) {
		violations = append(violations, "ssn pattern detected in response")
	}
	return ScanResult{Safe: len(violations) == 0, Violations: violations}
}
