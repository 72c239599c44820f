package generator

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerator generates lesson plans through the OpenAI chat API.
// It also works with OpenAI-compatible endpoints via a custom base url.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator backed by the OpenAI API.
// An empty model defaults to gpt-4o-mini.
func NewOpenAIGenerator(apiKey string, baseURL string, chatModel string) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(config),
		model:  chatModel,
	}, nil
}

// Generate runs one chat completion and returns the generated text
func (g *OpenAIGenerator) Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in openai response")
	}

	return resp.Choices[0].Message.Content, nil
}

// Model returns the configured model id
func (g *OpenAIGenerator) Model() string {
	return g.model
}
