package generator

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicMaxTokens = 4096

// AnthropicGenerator generates lesson plans through the Anthropic messages API
type AnthropicGenerator struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicGenerator creates a generator backed by the Anthropic API.
// An empty model defaults to claude-sonnet-4-20250514.
func NewAnthropicGenerator(apiKey string, chatModel string) (*AnthropicGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}
	if chatModel == "" {
		chatModel = "claude-sonnet-4-20250514"
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &AnthropicGenerator{
		client:    &client,
		model:     chatModel,
		maxTokens: defaultAnthropicMaxTokens,
	}, nil
}

// Generate runs one message exchange and returns the generated text
func (g *AnthropicGenerator) Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(userPrompt),
				},
			},
		},
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	msg, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic message: %w", err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", fmt.Errorf("no text content in anthropic response")
}

// Model returns the configured model id
func (g *AnthropicGenerator) Model() string {
	return g.model
}
