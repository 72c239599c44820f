package generator

import "context"

// TextGenerator produces lesson plan text from a prompt
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
	Model() string
}
