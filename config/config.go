// Package config defines the application configuration, loaded from the
// environment with the CONCIERGE prefix.
package config

import (
	"time"

	"github.com/fieldlens/concierge/internal/adapter/llm"
	"github.com/fieldlens/concierge/internal/knowledge"
	"github.com/fieldlens/concierge/pkg/logger"
)

// Config is the full application configuration.
type Config struct {
	HTTPPort int `envconfig:"HTTP_PORT" split_words:"true" default:"8080"`

	// SessionDir holds the persistent session sqlite files.
	SessionDir string `envconfig:"SESSION_DIR" split_words:"true" default:"./sessions"`

	// QueryTimeout bounds one query end to end.
	QueryTimeout time.Duration `envconfig:"QUERY_TIMEOUT" split_words:"true" default:"30s"`

	// ModelRouting enables model-driven capability selection; keyword
	// rules are used when disabled or when the model yields nothing.
	ModelRouting bool `envconfig:"MODEL_ROUTING" split_words:"true" default:"true"`

	// ModelGuardrail replaces the rego classifier with the delegated
	// model classifier. Both fail closed.
	ModelGuardrail bool `envconfig:"MODEL_GUARDRAIL" split_words:"true" default:"false"`

	// SignExpiry bounds presigned reference link lifetime.
	SignExpiry time.Duration `envconfig:"SIGN_EXPIRY" split_words:"true" default:"1h"`
	// SignSecret keys offline reference links in mock mode.
	SignSecret string `envconfig:"SIGN_SECRET" split_words:"true" default:"dev-only-secret"`

	Log       logger.Config           `envconfig:"LOG"`
	LLM       llm.Config              `envconfig:"LLM"`
	Knowledge knowledge.BedrockConfig `envconfig:"KNOWLEDGE"`
}
