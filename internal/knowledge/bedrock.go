package knowledge

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	"github.com/rs/zerolog/log"

	"github.com/fieldlens/concierge/domain"
)

// BedrockConfig configures the managed knowledge-base retriever.
type BedrockConfig struct {
	Region          string `envconfig:"REGION" split_words:"true" default:"us-east-1"`
	KnowledgeBaseID string `envconfig:"KNOWLEDGE_BASE_ID" split_words:"true"`
	ModelARN        string `envconfig:"MODEL_ARN" split_words:"true"`
}

// BedrockRetriever answers product questions via a Bedrock knowledge base
// using managed retrieve-and-generate.
type BedrockRetriever struct {
	client *bedrockagentruntime.Client
	cfg    BedrockConfig
}

var _ Retriever = (*BedrockRetriever)(nil)

// NewBedrockRetriever resolves AWS credentials from the default chain and
// builds the runtime client.
func NewBedrockRetriever(ctx context.Context, cfg BedrockConfig) (*BedrockRetriever, error) {
	if cfg.KnowledgeBaseID == "" || cfg.ModelARN == "" {
		return nil, fmt.Errorf("knowledge: knowledge base id and model arn are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("knowledge: load aws config: %w", err)
	}

	return &BedrockRetriever{
		client: bedrockagentruntime.NewFromConfig(awsCfg),
		cfg:    cfg,
	}, nil
}

// Retrieve runs one retrieve-and-generate round and flattens citations.
func (r *BedrockRetriever) Retrieve(ctx context.Context, query string) (*Result, error) {
	out, err := r.client.RetrieveAndGenerate(ctx, &bedrockagentruntime.RetrieveAndGenerateInput{
		Input: &types.RetrieveAndGenerateInput{Text: aws.String(query)},
		RetrieveAndGenerateConfiguration: &types.RetrieveAndGenerateConfiguration{
			Type: types.RetrieveAndGenerateTypeKnowledgeBase,
			KnowledgeBaseConfiguration: &types.KnowledgeBaseRetrieveAndGenerateConfiguration{
				KnowledgeBaseId: aws.String(r.cfg.KnowledgeBaseID),
				ModelArn:        aws.String(r.cfg.ModelARN),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("knowledge: retrieve and generate: %w", err)
	}

	result := &Result{}
	if out.Output != nil && out.Output.Text != nil {
		result.Text = *out.Output.Text
	}

	for _, citation := range out.Citations {
		for _, ref := range citation.RetrievedReferences {
			c := domain.Citation{}
			if ref.Content != nil && ref.Content.Text != nil {
				c.Snippet = *ref.Content.Text
			}
			if ref.Location != nil && ref.Location.S3Location != nil && ref.Location.S3Location.Uri != nil {
				c.URI = *ref.Location.S3Location.Uri
			}
			if c.URI == "" && c.Snippet == "" {
				continue
			}
			result.Citations = append(result.Citations, c)
		}
	}

	log.Debug().
		Int("citations", len(result.Citations)).
		Msg("knowledge: retrieval complete")
	return result, nil
}
