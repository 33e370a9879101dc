package policy

import "strings"

// PIIResult reports what the keyword detector found in one text.
type PIIResult struct {
	HasPIIRequest bool     `json:"has_pii_request"`
	TypesDetected []string `json:"pii_types_detected"`
	Confidence    float64  `json:"confidence_score"`
}

// piiVocabulary is the fixed keyword set, in stable reporting order.
var piiVocabulary = []struct {
	piiType  string
	keywords []string
}{
	{"phone", []string{"phone", "telephone", "contact number", "call"}},
	{"email", []string{"email", "@", "email address", "contact email"}},
	{"ssn", []string{"ssn", "social security"}},
	{"address", []string{"address", "home address", "mailing address"}},
}

// DetectPII runs pure substring matching over the fixed PII vocabulary.
// It needs no policy engine and can run anywhere a quick check is wanted.
func DetectPII(text string) PIIResult {
	lower := strings.ToLower(text)

	var detected []string
	for _, entry := range piiVocabulary {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				detected = append(detected, entry.piiType)
				break
			}
		}
	}

	confidence := 0.0
	if len(detected) > 0 {
		confidence = 1.0
	}
	return PIIResult{
		HasPIIRequest: len(detected) > 0,
		TypesDetected: detected,
		Confidence:    confidence,
	}
}
