package pipeline

import (
	"context"
	"fmt"

	"github.com/knights-analytics/hugot"
	openai "github.com/sashabaranov/go-openai"

	"github.com/edukit/lessonforge/helper"
)

// DefaultEmbedder creates an embedder using a local sentence transformer model.
// Uses the all-MiniLM-L6-v2 model which produces 384-dimensional embeddings.
func DefaultEmbedder() (EmbedFunc, error) {
	modelName := "sentence-transformers/all-MiniLM-L6-v2"
	modelPath, err := helper.PrepareModel(modelName, "")
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "embedder-pipeline",
	}
	sentencePipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create sentence pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create sentence pipeline: %w", err)
	}

	return func(text string) ([]float32, error) {
		result, err := sentencePipeline.RunPipeline([]string{text})
		if err != nil {
			return nil, fmt.Errorf("failed to generate embedding: %w", err)
		}

		if len(result.Embeddings) == 0 {
			return nil, fmt.Errorf("no embedding generated")
		}

		return result.Embeddings[0], nil
	}, nil
}

// OpenAIEmbedder creates an embedder backed by the OpenAI embeddings API.
// An empty model defaults to text-embedding-3-small.
func OpenAIEmbedder(apiKey string, embeddingModel string) (EmbedFunc, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	model := openai.EmbeddingModel(embeddingModel)
	if embeddingModel == "" {
		model = openai.SmallEmbedding3
	}

	client := openai.NewClient(apiKey)

	return func(text string) ([]float32, error) {
		resp, err := client.CreateEmbeddings(context.Background(), openai.EmbeddingRequest{
			Input: []string{text},
			Model: model,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to generate embedding: %w", err)
		}

		if len(resp.Data) == 0 {
			return nil, fmt.Errorf("no embedding generated")
		}

		return resp.Data[0].Embedding, nil
	}, nil
}
