package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit/lessonforge/model"
)

func TestMaterialsNewMaterialsDBHandler(t *testing.T) {
	database := initDB(t)

	t.Run("Valid call NewMaterialsDBHandler", func(t *testing.T) {
		materialsDbHandler, err := NewMaterialsDBHandler(database, testEmbeddingDim, true)
		assert.NoError(t, err, "Expected NewMaterialsDBHandler to not return an error")
		require.NotNil(t, materialsDbHandler, "Expected NewMaterialsDBHandler to return a non-nil instance")
		require.NotNil(t, materialsDbHandler.db, "Expected NewMaterialsDBHandler to have a non-nil database instance")
		require.NotNil(t, materialsDbHandler.db.Instance, "Expected NewMaterialsDBHandler to have a non-nil database connection instance")
	})

	t.Run("Invalid call NewMaterialsDBHandler with nil database", func(t *testing.T) {
		_, err := NewMaterialsDBHandler(nil, testEmbeddingDim, false)
		assert.Error(t, err, "Expected error when creating MaterialsDBHandler with nil database")
		assert.Contains(t, err.Error(), "database connection is nil", "Expected specific error message for nil database connection")
	})
}

func TestMaterialsInsert(t *testing.T) {
	database := initDB(t)

	materialsDbHandler, err := NewMaterialsDBHandler(database, testEmbeddingDim, true)
	require.NoError(t, err, "Expected NewMaterialsDBHandler to not return an error")

	t.Run("Insert material", func(t *testing.T) {
		material := &model.Material{
			Title:    "Fractions Unit",
			Subject:  "math",
			Grade:    "5",
			Source:   "fractions.md",
			Metadata: map[string]interface{}{"author": "Test Author", "year": 2024},
		}

		err := materialsDbHandler.InsertMaterial(material)
		assert.NoError(t, err, "Expected Insert to not return an error")
		assert.NotEmpty(t, material.RID, "Expected inserted material to have a RID")
		assert.WithinDuration(t, material.CreatedAt, time.Now(), 2*time.Second, "Expected CreatedAt to be set")
		assert.WithinDuration(t, material.UpdatedAt, time.Now(), 2*time.Second, "Expected UpdatedAt to be set")
		assert.Equal(t, "Fractions Unit", material.Title, "Expected title to match")

		// Cleanup
		materialsDbHandler.DeleteMaterial(material.RID)
	})
}

func TestMaterialsGet(t *testing.T) {
	database := initDB(t)

	materialsDbHandler, err := NewMaterialsDBHandler(database, testEmbeddingDim, true)
	require.NoError(t, err)

	material := &model.Material{
		Title:    "Photosynthesis Basics",
		Subject:  "science",
		Grade:    "7",
		Source:   "photosynthesis.md",
		Metadata: map[string]interface{}{"key": "value"},
	}
	err = materialsDbHandler.InsertMaterial(material)
	require.NoError(t, err)

	retrieved, err := materialsDbHandler.SelectMaterial(material.RID)
	assert.NoError(t, err, "Expected Get to not return an error")
	assert.NotNil(t, retrieved, "Expected Get to return a non-nil material")
	assert.Equal(t, material.RID, retrieved.RID, "Expected material RIDs to match")
	assert.Equal(t, material.Title, retrieved.Title, "Expected titles to match")
	assert.Equal(t, material.Subject, retrieved.Subject, "Expected subjects to match")

	// Cleanup
	materialsDbHandler.DeleteMaterial(material.RID)
}

func TestMaterialsGetAll(t *testing.T) {
	database := initDB(t)

	materialsDbHandler, err := NewMaterialsDBHandler(database, testEmbeddingDim, true)
	require.NoError(t, err)

	first := &model.Material{Title: "First Material", Subject: "math"}
	second := &model.Material{Title: "Second Material", Subject: "science"}
	require.NoError(t, materialsDbHandler.InsertMaterial(first))
	require.NoError(t, materialsDbHandler.InsertMaterial(second))

	materials, err := materialsDbHandler.SelectAllMaterials()
	assert.NoError(t, err, "Expected GetAll to not return an error")
	assert.GreaterOrEqual(t, len(materials), 2, "Expected at least two materials")

	// Cleanup
	materialsDbHandler.DeleteMaterial(first.RID)
	materialsDbHandler.DeleteMaterial(second.RID)
}

func TestMaterialsDelete(t *testing.T) {
	database := initDB(t)

	materialsDbHandler, err := NewMaterialsDBHandler(database, testEmbeddingDim, true)
	require.NoError(t, err)

	material := &model.Material{Title: "To Delete", Subject: "math"}
	require.NoError(t, materialsDbHandler.InsertMaterial(material))

	err = materialsDbHandler.DeleteMaterial(material.RID)
	assert.NoError(t, err, "Expected Delete to not return an error")

	_, err = materialsDbHandler.SelectMaterial(material.RID)
	assert.Error(t, err, "Expected Get after Delete to return an error")
}

func TestMaterialsInsertChunk(t *testing.T) {
	database := initDB(t)

	materialsDbHandler, err := NewMaterialsDBHandler(database, testEmbeddingDim, true)
	require.NoError(t, err)

	material := &model.Material{Title: "Chunked Material", Subject: "math"}
	require.NoError(t, materialsDbHandler.InsertMaterial(material))
	defer materialsDbHandler.DeleteMaterial(material.RID)

	t.Run("Insert chunk with embedding", func(t *testing.T) {
		chunk := &model.MaterialChunk{
			MaterialID: material.ID,
			Content:    "Fractions represent parts of a whole.",
			ChunkIndex: 0,
			Embedding:  []float32{0.1, 0.2, 0.3, 0.4},
			Metadata:   map[string]interface{}{"section": "intro"},
		}

		err := materialsDbHandler.InsertChunk(chunk)
		assert.NoError(t, err, "Expected InsertChunk to not return an error")
		assert.NotZero(t, chunk.ID, "Expected inserted chunk to have an ID")
		assert.Equal(t, material.ID, chunk.MaterialID, "Expected chunk material id to match")
		assert.WithinDuration(t, chunk.CreatedAt, time.Now(), 2*time.Second, "Expected CreatedAt to be set")
	})

	t.Run("Insert chunk with wrong embedding dimension", func(t *testing.T) {
		chunk := &model.MaterialChunk{
			MaterialID: material.ID,
			Content:    "Bad embedding.",
			Embedding:  []float32{0.1, 0.2},
		}

		err := materialsDbHandler.InsertChunk(chunk)
		assert.Error(t, err, "Expected InsertChunk with wrong dimension to return an error")
	})
}

func TestMaterialsSelectChunksBySimilarity(t *testing.T) {
	database := initDB(t)

	materialsDbHandler, err := NewMaterialsDBHandler(database, testEmbeddingDim, true)
	require.NoError(t, err)

	material := &model.Material{Title: "Similarity Material", Subject: "math"}
	require.NoError(t, materialsDbHandler.InsertMaterial(material))
	defer materialsDbHandler.DeleteMaterial(material.RID)

	near := &model.MaterialChunk{
		MaterialID: material.ID,
		Content:    "Adding fractions with like denominators.",
		ChunkIndex: 0,
		Embedding:  []float32{1, 0, 0, 0},
	}
	far := &model.MaterialChunk{
		MaterialID: material.ID,
		Content:    "The water cycle moves water through evaporation.",
		ChunkIndex: 1,
		Embedding:  []float32{0, 1, 0, 0},
	}
	require.NoError(t, materialsDbHandler.InsertChunk(near))
	require.NoError(t, materialsDbHandler.InsertChunk(far))

	t.Run("Nearest chunk ranks first", func(t *testing.T) {
		chunks, err := materialsDbHandler.SelectChunksBySimilarity([]float32{1, 0, 0, 0}, 10, 0)
		assert.NoError(t, err, "Expected SelectChunksBySimilarity to not return an error")
		require.NotEmpty(t, chunks, "Expected at least one chunk")
		assert.Equal(t, near.ID, chunks[0].ID, "Expected the closest chunk first")
		assert.InDelta(t, 1.0, chunks[0].Similarity, 0.001, "Expected identical embedding to have similarity 1")
	})

	t.Run("Threshold filters distant chunks", func(t *testing.T) {
		chunks, err := materialsDbHandler.SelectChunksBySimilarity([]float32{1, 0, 0, 0}, 10, 0.9)
		assert.NoError(t, err)
		for _, chunk := range chunks {
			assert.GreaterOrEqual(t, chunk.Similarity, 0.9, "Expected all similarities above the threshold")
		}
	})

	t.Run("Limit caps result count", func(t *testing.T) {
		chunks, err := materialsDbHandler.SelectChunksBySimilarity([]float32{1, 0, 0, 0}, 1, 0)
		assert.NoError(t, err)
		assert.Len(t, chunks, 1, "Expected exactly one chunk with limit 1")
	})
}

func TestMaterialsSelectChunksByKeywords(t *testing.T) {
	database := initDB(t)

	materialsDbHandler, err := NewMaterialsDBHandler(database, testEmbeddingDim, true)
	require.NoError(t, err)

	material := &model.Material{Title: "Keyword Material", Subject: "science"}
	require.NoError(t, materialsDbHandler.InsertMaterial(material))
	defer materialsDbHandler.DeleteMaterial(material.RID)

	matching := &model.MaterialChunk{
		MaterialID: material.ID,
		Content:    "Photosynthesis converts sunlight into chemical energy.",
		ChunkIndex: 0,
		Embedding:  []float32{0.5, 0.5, 0, 0},
	}
	other := &model.MaterialChunk{
		MaterialID: material.ID,
		Content:    "The French Revolution began in 1789.",
		ChunkIndex: 1,
		Embedding:  []float32{0, 0, 0.5, 0.5},
	}
	require.NoError(t, materialsDbHandler.InsertChunk(matching))
	require.NoError(t, materialsDbHandler.InsertChunk(other))

	t.Run("Matching chunk is returned with rank", func(t *testing.T) {
		chunks, err := materialsDbHandler.SelectChunksByKeywords("photosynthesis energy", 10)
		assert.NoError(t, err, "Expected SelectChunksByKeywords to not return an error")
		require.NotEmpty(t, chunks, "Expected at least one chunk")
		assert.Equal(t, matching.ID, chunks[0].ID, "Expected the matching chunk first")
		assert.Greater(t, chunks[0].Rank, 0.0, "Expected a positive rank")
	})

	t.Run("No match returns empty result", func(t *testing.T) {
		chunks, err := materialsDbHandler.SelectChunksByKeywords("quantum chromodynamics", 10)
		assert.NoError(t, err)
		assert.Empty(t, chunks, "Expected no chunks for unrelated query")
	})
}
