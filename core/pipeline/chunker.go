package pipeline

import (
	"fmt"
	"math"
	"strings"

	"github.com/knights-analytics/hugot"

	"github.com/edukit/lessonforge/helper"
)

// splitSentences splits text on sentence-ending punctuation
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "! ", "!|")
	text = strings.ReplaceAll(text, "? ", "?|")
	text = strings.ReplaceAll(text, ". ", ".|")

	var sentences []string
	for _, s := range strings.Split(text, "|") {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}

	return sentences
}

// SentenceChunker creates a chunker that groups a fixed number of sentences
// per chunk
func SentenceChunker(maxSentencesPerChunk int) ChunkFunc {
	return func(text string) ([]ChunkWithIndex, error) {
		if maxSentencesPerChunk <= 0 {
			return nil, fmt.Errorf("max sentences per chunk must be positive")
		}

		if strings.TrimSpace(text) == "" {
			return []ChunkWithIndex{}, nil
		}

		sentences := splitSentences(text)

		var chunks []ChunkWithIndex
		var currentChunk []string
		chunkIdx := 0

		for _, sentence := range sentences {
			currentChunk = append(currentChunk, sentence)

			if len(currentChunk) >= maxSentencesPerChunk {
				chunks = append(chunks, ChunkWithIndex{
					Content:    strings.Join(currentChunk, " "),
					ChunkIndex: chunkIdx,
					Metadata:   map[string]interface{}{"chunking_method": "sentence"},
				})

				currentChunk = nil
				chunkIdx++
			}
		}

		// Add remaining sentences
		if len(currentChunk) > 0 {
			chunks = append(chunks, ChunkWithIndex{
				Content:    strings.Join(currentChunk, " "),
				ChunkIndex: chunkIdx,
				Metadata:   map[string]interface{}{"chunking_method": "sentence"},
			})
		}

		return chunks, nil
	}
}

// SectionChunker creates a chunker that splits teaching materials on markdown
// headings and blank lines. Heading lines are kept with the section they open.
func SectionChunker() ChunkFunc {
	return func(text string) ([]ChunkWithIndex, error) {
		if strings.TrimSpace(text) == "" {
			return []ChunkWithIndex{}, nil
		}

		var sections []string
		var current []string

		flush := func() {
			section := strings.TrimSpace(strings.Join(current, "\n"))
			if section != "" {
				sections = append(sections, section)
			}
			current = nil
		}

		for _, line := range strings.Split(text, "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "#") {
				flush()
				current = append(current, line)
				continue
			}
			if trimmed == "" && len(current) > 0 {
				flush()
				continue
			}
			current = append(current, line)
		}
		flush()

		chunks := make([]ChunkWithIndex, 0, len(sections))
		for i, section := range sections {
			chunks = append(chunks, ChunkWithIndex{
				Content:    section,
				ChunkIndex: i,
				Metadata:   map[string]interface{}{"chunking_method": "section"},
			})
		}

		return chunks, nil
	}
}

// cosineSimilarity calculates the cosine similarity between two embedding vectors
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float32
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}

// SemanticChunker creates a chunker that uses sentence embeddings to find
// natural boundaries. A new chunk starts where the similarity between the
// running chunk and the next sentence drops below the threshold, or where
// the chunk would exceed maxChunkSize characters.
func SemanticChunker(maxChunkSize int, similarityThreshold float32) ChunkFunc {
	return func(text string) ([]ChunkWithIndex, error) {
		modelName := "sentence-transformers/all-MiniLM-L6-v2"
		modelPath, err := helper.PrepareModel(modelName, "")
		if err != nil {
			return nil, err
		}

		session, err := hugot.NewGoSession()
		if err != nil {
			return nil, fmt.Errorf("failed to create hugot session: %w", err)
		}
		defer session.Destroy()

		config := hugot.FeatureExtractionConfig{
			ModelPath: modelPath,
			Name:      "semantic-chunker-pipeline",
		}
		sentencePipeline, err := hugot.NewPipeline(session, config)
		if err != nil {
			return nil, fmt.Errorf("failed to create sentence pipeline: %w", err)
		}

		sentences := splitSentences(text)
		if len(sentences) == 0 {
			return nil, fmt.Errorf("no sentences found in text")
		}

		embeddingResult, err := sentencePipeline.RunPipeline(sentences)
		if err != nil {
			return nil, fmt.Errorf("failed to generate embeddings: %w", err)
		}

		embeddings := embeddingResult.Embeddings
		if len(embeddings) != len(sentences) {
			return nil, fmt.Errorf("embedding count mismatch: got %d embeddings for %d sentences", len(embeddings), len(sentences))
		}

		var chunks []ChunkWithIndex
		var currentChunk []string
		var currentEmbeddings [][]float32
		var currentLength int
		chunkIdx := 0

		appendChunk := func() {
			chunks = append(chunks, ChunkWithIndex{
				Content:    strings.Join(currentChunk, " "),
				ChunkIndex: chunkIdx,
				Metadata: map[string]interface{}{
					"embedding_model": modelName,
					"num_sentences":   len(currentChunk),
					"chunking_method": "semantic",
				},
			})
			currentChunk = nil
			currentEmbeddings = nil
			currentLength = 0
			chunkIdx++
		}

		for i, sentence := range sentences {
			if len(currentChunk) > 0 {
				// Average embedding of the running chunk
				avgEmbedding := make([]float32, len(currentEmbeddings[0]))
				for _, emb := range currentEmbeddings {
					for j := range emb {
						avgEmbedding[j] += emb[j]
					}
				}
				for j := range avgEmbedding {
					avgEmbedding[j] /= float32(len(currentEmbeddings))
				}

				similarity := cosineSimilarity(avgEmbedding, embeddings[i])
				if similarity < similarityThreshold || currentLength+len(sentence) > maxChunkSize {
					appendChunk()
				}
			}

			currentChunk = append(currentChunk, sentence)
			currentEmbeddings = append(currentEmbeddings, embeddings[i])
			currentLength += len(sentence)
		}

		if len(currentChunk) > 0 {
			appendChunk()
		}

		return chunks, nil
	}
}
