package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEmbedder(t *testing.T) {
	// Note: DefaultEmbedder uses hugot which requires downloading models
	// These tests may take longer on first run

	t.Run("Create embedder successfully", func(t *testing.T) {
		if testing.Short() {
			t.Skip("Skipping DefaultEmbedder test in short mode (requires model download)")
		}

		embedder, err := DefaultEmbedder()

		require.NoError(t, err)
		assert.NotNil(t, embedder)
	})

	t.Run("Generate embedding for text", func(t *testing.T) {
		if testing.Short() {
			t.Skip("Skipping DefaultEmbedder test in short mode (requires model download)")
		}

		embedder, err := DefaultEmbedder()
		require.NoError(t, err)

		embedding, err := embedder("Adding fractions with like denominators.")

		require.NoError(t, err)
		assert.NotNil(t, embedding)
		assert.Equal(t, 384, len(embedding), "all-MiniLM-L6-v2 produces 384-dimensional embeddings")

		hasNonZero := false
		for _, val := range embedding {
			if val != 0 {
				hasNonZero = true
				break
			}
		}
		assert.True(t, hasNonZero, "Embedding should contain non-zero values")
	})

	t.Run("Same text produces same embedding", func(t *testing.T) {
		if testing.Short() {
			t.Skip("Skipping DefaultEmbedder test in short mode (requires model download)")
		}

		embedder, err := DefaultEmbedder()
		require.NoError(t, err)

		text := "Deterministic embedding test"
		embedding1, err1 := embedder(text)
		embedding2, err2 := embedder(text)

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, embedding1, embedding2, "Expected identical embeddings for identical text")
	})
}

func TestOpenAIEmbedder(t *testing.T) {
	t.Run("Error with empty api key", func(t *testing.T) {
		_, err := OpenAIEmbedder("", "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "api key")
	})

	t.Run("Create embedder with api key", func(t *testing.T) {
		embedder, err := OpenAIEmbedder("test-key", "")

		require.NoError(t, err)
		assert.NotNil(t, embedder)
	})
}

func TestPipelineProcess(t *testing.T) {
	t.Run("Chunks are embedded and indexed", func(t *testing.T) {
		embedder := func(text string) ([]float32, error) {
			return []float32{float32(len(text)), 1, 0, 0}, nil
		}
		p := NewPipeline(SentenceChunker(1), embedder)

		chunks, err := p.Process("First sentence. Second sentence.")

		require.NoError(t, err)
		require.Equal(t, 2, len(chunks))
		for i, chunk := range chunks {
			assert.Equal(t, i, chunk.ChunkIndex)
			assert.Len(t, chunk.Embedding, 4)
		}
	})

	t.Run("Chunker error is propagated", func(t *testing.T) {
		embedder := func(text string) ([]float32, error) { return []float32{1}, nil }
		p := NewPipeline(SentenceChunker(0), embedder)

		_, err := p.Process("Some text.")

		assert.Error(t, err)
	})

	t.Run("Embedder error is propagated", func(t *testing.T) {
		embedder := func(text string) ([]float32, error) {
			return nil, assert.AnError
		}
		p := NewPipeline(SentenceChunker(1), embedder)

		_, err := p.Process("Some text.")

		assert.Error(t, err)
	})
}
