package llm

import (
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// NewFromEnv selects the provider by mode. CONCIERGE_MODE=MOCK forces the
// offline client; otherwise the OpenAI client is built from cfg, falling
// back to the mock when no API key is present.
func NewFromEnv(cfg Config) Client {
	mode := strings.ToUpper(strings.TrimSpace(os.Getenv("CONCIERGE_MODE")))
	if mode == "MOCK" {
		log.Info().Msg("llm: mock mode enabled")
		return NewMockClient()
	}

	client, err := NewOpenAIClient(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("llm: provider unavailable, using mock client")
		return NewMockClient()
	}
	log.Info().Str("model", cfg.Model).Msg("llm: openai client ready")
	return client
}
