package llm

import (
	"context"
	"strings"

	"github.com/gelaboca/gelaboca-backend/pkg/config"
	pkgerrors "github.com/gelaboca/gelaboca-backend/pkg/errors"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// Client wraps the OpenAI completion and embedding endpoints used by the
// assistant pipeline.
type Client struct {
	model *openai.LLM
}

// NewClient builds the OpenAI-backed client from configuration.
func NewClient(cfg config.OpenAIConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "openai api key is required")
	}

	model, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.CompletionModel),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
	)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build openai client")
	}

	return &Client{model: model}, nil
}

// Complete runs a single-prompt completion and returns the trimmed text.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	if c == nil || c.model == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "llm client not configured")
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt,
		llms.WithMaxTokens(maxTokens),
		llms.WithTemperature(temperature),
	)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "completion request failed")
	}

	return strings.TrimSpace(out), nil
}

// CompleteChat runs a system+user chat completion and returns the trimmed text.
func (c *Client) CompleteChat(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	if c == nil || c.model == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "llm client not configured")
	}

	resp, err := c.model.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(schema.ChatMessageTypeSystem, system),
			llms.TextParts(schema.ChatMessageTypeHuman, user),
		},
		llms.WithMaxTokens(maxTokens),
		llms.WithTemperature(temperature),
	)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "chat completion request failed")
	}
	if len(resp.Choices) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "chat completion returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Content), nil
}

// Embed converts the given text into a fixed-dimension vector.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if c == nil || c.model == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "llm client not configured")
	}

	vectors, err := c.model.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "embedding request failed")
	}
	if len(vectors) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "embedding response is empty")
	}

	return vectors[0], nil
}
