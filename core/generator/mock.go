package generator

import (
	"context"
	"fmt"
	"strings"
)

// MockGenerator returns a fixed-structure lesson plan without calling any
// API. Used in tests and offline demos.
type MockGenerator struct{}

// NewMockGenerator creates a generator with canned output
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate returns a deterministic plan skeleton echoing the prompt topic
func (g *MockGenerator) Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	topic := "the lesson topic"
	for _, line := range strings.Split(userPrompt, "\n") {
		if rest, found := strings.CutPrefix(strings.TrimSpace(line), "- Topic: "); found {
			topic = rest
			break
		}
	}

	return fmt.Sprintf(`# Lesson Plan: %s

## Learning Objectives
- Students understand the core ideas of %s.

## Lesson Flow
1. Opening: activate prior knowledge.
2. Instruction: introduce the new material step by step.
3. Practice: guided then independent exercises.
4. Summary: students restate the key idea.
5. Homework: one consolidation task.

## Reflection
- Did every student participate in the practice phase?
`, topic, topic), nil
}

// Model identifies the mock backend
func (g *MockGenerator) Model() string {
	return "mock"
}
