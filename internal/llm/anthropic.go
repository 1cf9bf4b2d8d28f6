package llm

import (
	"context"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

// jsonSystemPrompt stands in for a JSON response mode, which the Messages API lacks.
const jsonSystemPrompt = "You respond with a single JSON object and nothing else. No markdown, no commentary."

// AnthropicClient implements Client for Claude models.
type AnthropicClient struct {
	client sdk.Client
	config *Config
}

// NewAnthropicClient creates a Claude client backed by the official SDK.
func NewAnthropicClient(config *Config, apiKey string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}

	opts := []anthropicopt.RequestOption{anthropicopt.WithAPIKey(apiKey)}
	if config.BaseURL != "" {
		opts = append(opts, anthropicopt.WithBaseURL(config.BaseURL))
	}

	return &AnthropicClient{
		client: sdk.NewClient(opts...),
		config: config,
	}, nil
}

// GenerateContent generates text content using the specified model tier
func (c *AnthropicClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.create(ctx, prompt, tier, "")
}

// GenerateJSON generates JSON content using the specified model tier
func (c *AnthropicClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.create(ctx, prompt, tier, jsonSystemPrompt)
}

func (c *AnthropicClient) create(ctx context.Context, prompt string, tier ModelTier, system string) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", eris.Errorf("no model configured for tier %s", tier)
	}

	params := sdk.MessageNewParams{
		Model:       sdk.Model(modelName),
		MaxTokens:   int64(c.config.MaxTokens),
		Messages:    []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(prompt))},
		Temperature: sdk.Float(float64(c.config.Temperature)),
	}
	if system != "" {
		params.System = []sdk.TextBlockParam{{Text: system}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", eris.Wrap(err, "anthropic: create message")
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", eris.Wrap(ErrEmptyResponse, "anthropic: no text blocks")
	}
	return sb.String(), nil
}

// GetModel returns the model name for a tier
func (c *AnthropicClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the SDK holds no long-lived resources.
func (c *AnthropicClient) Close() error {
	return nil
}
