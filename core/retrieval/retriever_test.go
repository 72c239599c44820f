package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit/lessonforge/model"
)

func TestNewVectorRetriever(t *testing.T) {
	materials := initMaterials(t)

	t.Run("Valid call NewVectorRetriever", func(t *testing.T) {
		retriever, err := NewVectorRetriever(materials, testEmbedder, 0)
		assert.NoError(t, err)
		assert.NotNil(t, retriever)
	})

	t.Run("Invalid call NewVectorRetriever with nil handler", func(t *testing.T) {
		_, err := NewVectorRetriever(nil, testEmbedder, 0)
		assert.Error(t, err)
	})

	t.Run("Invalid call NewVectorRetriever with nil embedder", func(t *testing.T) {
		_, err := NewVectorRetriever(materials, nil, 0)
		assert.Error(t, err)
	})
}

func TestVectorRetrieverSearch(t *testing.T) {
	materials := initMaterials(t)
	material := insertTestChunks(t, materials)
	defer materials.DeleteMaterial(material.RID)

	retriever, err := NewVectorRetriever(materials, testEmbedder, 0)
	require.NoError(t, err)

	t.Run("Closest chunk ranks first", func(t *testing.T) {
		fragments, err := retriever.Search(context.Background(), "fractions", 10)
		assert.NoError(t, err)
		require.NotEmpty(t, fragments)
		assert.Contains(t, fragments[0].Content, "fractions")
		assert.Equal(t, model.SourceVector, fragments[0].Source)
		assert.InDelta(t, 1.0, fragments[0].Score, 0.001, "Expected identical embedding to score 1")
	})

	t.Run("Fragment metadata carries chunk provenance", func(t *testing.T) {
		fragments, err := retriever.Search(context.Background(), "fractions", 10)
		assert.NoError(t, err)
		require.NotEmpty(t, fragments)
		assert.Contains(t, fragments[0].Metadata, "material_id")
		assert.Contains(t, fragments[0].Metadata, "chunk_index")
	})

	t.Run("Cancelled context returns an error", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := retriever.Search(ctx, "fractions", 10)
		assert.Error(t, err)
	})
}

func TestVectorRetrieverThreshold(t *testing.T) {
	materials := initMaterials(t)
	material := insertTestChunks(t, materials)
	defer materials.DeleteMaterial(material.RID)

	retriever, err := NewVectorRetriever(materials, testEmbedder, 0.9)
	require.NoError(t, err)

	fragments, err := retriever.Search(context.Background(), "fractions", 10)
	assert.NoError(t, err)
	require.Len(t, fragments, 1, "Expected the threshold to filter the orthogonal chunk")
	assert.Contains(t, fragments[0].Content, "fractions")
}

func TestNewKeywordRetriever(t *testing.T) {
	materials := initMaterials(t)

	t.Run("Valid call NewKeywordRetriever", func(t *testing.T) {
		retriever, err := NewKeywordRetriever(materials)
		assert.NoError(t, err)
		assert.NotNil(t, retriever)
	})

	t.Run("Invalid call NewKeywordRetriever with nil handler", func(t *testing.T) {
		_, err := NewKeywordRetriever(nil)
		assert.Error(t, err)
	})
}

func TestKeywordRetrieverSearch(t *testing.T) {
	materials := initMaterials(t)
	material := insertTestChunks(t, materials)
	defer materials.DeleteMaterial(material.RID)

	retriever, err := NewKeywordRetriever(materials)
	require.NoError(t, err)

	t.Run("Matching chunk is returned with keyword source", func(t *testing.T) {
		fragments, err := retriever.Search(context.Background(), "evaporation rain", 10)
		assert.NoError(t, err)
		require.NotEmpty(t, fragments)
		assert.Contains(t, fragments[0].Content, "water cycle")
		assert.Equal(t, model.SourceKeyword, fragments[0].Source)
		assert.Greater(t, fragments[0].Score, 0.0)
	})

	t.Run("No match returns empty result", func(t *testing.T) {
		fragments, err := retriever.Search(context.Background(), "quantum chromodynamics", 10)
		assert.NoError(t, err)
		assert.Empty(t, fragments)
	})
}

func TestHybridRetrieverWithDatabase(t *testing.T) {
	materials := initMaterials(t)
	material := insertTestChunks(t, materials)
	defer materials.DeleteMaterial(material.RID)

	vector, err := NewVectorRetriever(materials, testEmbedder, 0)
	require.NoError(t, err)
	keyword, err := NewKeywordRetriever(materials)
	require.NoError(t, err)

	hybrid, err := NewHybridRetriever(vector, keyword, model.DefaultFusionConfig(), nil)
	require.NoError(t, err)

	fragments, err := hybrid.Search(context.Background(), "fractions", 10)
	assert.NoError(t, err)
	require.NotEmpty(t, fragments)
	assert.Contains(t, fragments[0].Content, "fractions", "Expected the vector match to rank first")
}
