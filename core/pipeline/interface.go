package pipeline

import "github.com/edukit/lessonforge/model"

// ChunkFunc is a function that splits material text into indexed chunks
type ChunkFunc func(text string) ([]ChunkWithIndex, error)

// EmbedFunc is a function that generates embeddings for text
type EmbedFunc func(text string) ([]float32, error)

// ChunkWithIndex represents a chunk with its position in the source material
type ChunkWithIndex struct {
	Content    string
	ChunkIndex int
	Metadata   map[string]interface{}
}

// Pipeline combines chunking and embedding functions
type Pipeline struct {
	Chunker  ChunkFunc
	Embedder EmbedFunc
}

// NewPipeline creates a new processing pipeline
func NewPipeline(chunker ChunkFunc, embedder EmbedFunc) *Pipeline {
	return &Pipeline{
		Chunker:  chunker,
		Embedder: embedder,
	}
}

// Process splits material text into chunks and embeds each one.
// The returned chunks carry no material id yet, the caller assigns it
// before insertion.
func (p *Pipeline) Process(text string) ([]*model.MaterialChunk, error) {
	chunksWithIndex, err := p.Chunker(text)
	if err != nil {
		return nil, err
	}

	chunks := make([]*model.MaterialChunk, 0, len(chunksWithIndex))
	for _, cwi := range chunksWithIndex {
		embedding, err := p.Embedder(cwi.Content)
		if err != nil {
			return nil, err
		}

		chunks = append(chunks, &model.MaterialChunk{
			Content:    cwi.Content,
			ChunkIndex: cwi.ChunkIndex,
			Embedding:  embedding,
			Metadata:   cwi.Metadata,
		})
	}

	return chunks, nil
}
