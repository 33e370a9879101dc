// Package llm abstracts the chat-model provider behind a narrow interface
// so the classifier and router selector can be backed by a real model or
// a deterministic mock.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ToolSpec describes one invocable capability to the model.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ToolCall is one structured tool invocation requested by the model.
type ToolCall struct {
	Name string
	Args map[string]any
}

// CompletionRequest is a single-turn chat request.
type CompletionRequest struct {
	System string
	User   string
	Tools  []ToolSpec
}

// Completion is the model's reply: free text and/or tool calls.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
}

// Client is the chat-model contract consumed by the core.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
	ModelName() string
}

// Config configures the OpenAI-compatible client.
type Config struct {
	BaseURL     string        `envconfig:"BASE_URL" split_words:"true"`
	APIKey      string        `envconfig:"API_KEY" split_words:"true"`
	Model       string        `envconfig:"MODEL" split_words:"true" default:"gpt-4o-mini"`
	Timeout     time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	Temperature float64       `envconfig:"TEMPERATURE" split_words:"true" default:"0"`
}

// OpenAIClient talks to an OpenAI-compatible chat completion endpoint.
type OpenAIClient struct {
	client openai.Client
	cfg    Config
}

var _ Client = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client from cfg. Returns an error when the API
// key is missing so callers can fall back to the mock.
func NewOpenAIClient(cfg Config) (*OpenAIClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("llm: api key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if trimmed := strings.TrimRight(cfg.BaseURL, "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}

	return &OpenAIClient{client: openai.NewClient(opts...), cfg: cfg}, nil
}

// ModelName reports the configured model identifier.
func (c *OpenAIClient) ModelName() string { return c.cfg.Model }

// Complete performs one chat completion round.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	messages := []openai.ChatCompletionMessageParamUnion{}
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.User))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.cfg.Model),
		Messages:    messages,
		Temperature: openai.Float(c.cfg.Temperature),
	}

	for _, tool := range req.Tools {
		params.Tools = append(params.Tools, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        tool.Name,
				Description: openai.String(tool.Description),
				Parameters:  openai.FunctionParameters(tool.Parameters),
			},
		})
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("llm: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("llm: empty completion response")
	}

	choice := resp.Choices[0].Message
	out := &Completion{Content: choice.Content}
	for _, call := range choice.ToolCalls {
		args := map[string]any{}
		if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				return nil, fmt.Errorf("llm: invalid tool args for %s: %w", call.Function.Name, err)
			}
		}
		out.ToolCalls = append(out.ToolCalls, ToolCall{Name: call.Function.Name, Args: args})
	}
	return out, nil
}
