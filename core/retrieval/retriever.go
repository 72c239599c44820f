package retrieval

import (
	"context"
	"fmt"

	"github.com/edukit/lessonforge/core/pipeline"
	"github.com/edukit/lessonforge/database"
	"github.com/edukit/lessonforge/model"
)

// Retriever searches indexed material chunks for a query
type Retriever interface {
	Search(ctx context.Context, query string, topK int) ([]*model.Fragment, error)
}

// VectorRetriever retrieves chunks by embedding similarity
type VectorRetriever struct {
	materials *database.MaterialsDBHandler
	embed     pipeline.EmbedFunc
	threshold float64
}

// NewVectorRetriever creates a retriever backed by pgvector similarity search.
// Results below the similarity threshold are filtered out.
func NewVectorRetriever(materials *database.MaterialsDBHandler, embed pipeline.EmbedFunc, threshold float64) (*VectorRetriever, error) {
	if materials == nil {
		return nil, fmt.Errorf("materials handler is required")
	}
	if embed == nil {
		return nil, fmt.Errorf("embed function is required")
	}

	return &VectorRetriever{
		materials: materials,
		embed:     embed,
		threshold: threshold,
	}, nil
}

// Search embeds the query and returns the most similar chunks as fragments
func (r *VectorRetriever) Search(ctx context.Context, query string, topK int) ([]*model.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	embedding, err := r.embed(query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	chunks, err := r.materials.SelectChunksBySimilarity(embedding, topK, r.threshold)
	if err != nil {
		return nil, err
	}

	fragments := make([]*model.Fragment, 0, len(chunks))
	for _, chunk := range chunks {
		fragments = append(fragments, fragmentFromChunk(chunk, chunk.Similarity, model.SourceVector))
	}

	return fragments, nil
}

// KeywordRetriever retrieves chunks by full-text search
type KeywordRetriever struct {
	materials *database.MaterialsDBHandler
}

// NewKeywordRetriever creates a retriever backed by postgres full-text search
func NewKeywordRetriever(materials *database.MaterialsDBHandler) (*KeywordRetriever, error) {
	if materials == nil {
		return nil, fmt.Errorf("materials handler is required")
	}

	return &KeywordRetriever{materials: materials}, nil
}

// Search returns chunks matching the query terms, ranked by ts_rank
func (r *KeywordRetriever) Search(ctx context.Context, query string, topK int) ([]*model.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chunks, err := r.materials.SelectChunksByKeywords(query, topK)
	if err != nil {
		return nil, err
	}

	fragments := make([]*model.Fragment, 0, len(chunks))
	for _, chunk := range chunks {
		fragments = append(fragments, fragmentFromChunk(chunk, chunk.Rank, model.SourceKeyword))
	}

	return fragments, nil
}

func fragmentFromChunk(chunk *model.MaterialChunk, score float64, source model.RetrievalSource) *model.Fragment {
	metadata := model.Metadata{}
	for k, v := range chunk.Metadata {
		metadata[k] = v
	}
	metadata["material_id"] = chunk.MaterialID
	metadata["chunk_index"] = chunk.ChunkIndex

	return &model.Fragment{
		Content:  chunk.Content,
		Metadata: metadata,
		Score:    score,
		Source:   source,
	}
}
