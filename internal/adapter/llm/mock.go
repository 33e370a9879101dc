package llm

import (
	"context"
	"strings"
)

// MockClient is a deterministic offline stand-in used in tests and when
// no provider credentials are configured. It never emits tool calls, so
// routing always takes the rule path.
type MockClient struct{}

var _ Client = (*MockClient)(nil)

func NewMockClient() *MockClient { return &MockClient{} }

func (m *MockClient) ModelName() string { return "mock" }

func (m *MockClient) Complete(_ context.Context, req CompletionRequest) (*Completion, error) {
	text := strings.TrimSpace(req.User)
	if text == "" {
		return &Completion{Content: "I need a question to work with."}, nil
	}
	return &Completion{Content: "Mock completion for: " + text}, nil
}
