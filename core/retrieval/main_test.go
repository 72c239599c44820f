package retrieval

import (
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/edukit/lessonforge/database"
	"github.com/edukit/lessonforge/helper"
	"github.com/edukit/lessonforge/model"
	loadSql "github.com/edukit/lessonforge/sql"
)

const testEmbeddingDim = 4

var dbPort string

func TestMain(m *testing.M) {
	var teardown func(ctx context.Context, opts ...testcontainers.TerminateOption) error
	var err error
	teardown, dbPort, err = helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("error starting postgres container: %v", err)
	}

	m.Run()

	if teardown != nil && teardown(context.Background()) != nil {
		log.Fatalf("error tearing down postgres container: %v", err)
	}
}

func initDB(t *testing.T) *helper.Database {
	helper.SetTestDatabaseConfigEnvs(t, dbPort)
	dbConfig, err := helper.NewDatabaseConfiguration()
	require.NoError(t, err, "failed to create database configuration")
	db := helper.NewTestDatabase(dbConfig)

	err = loadSql.Init(db.Instance)
	require.NoError(t, err)

	return db
}

func initMaterials(t *testing.T) *database.MaterialsDBHandler {
	db := initDB(t)

	materials, err := database.NewMaterialsDBHandler(db, testEmbeddingDim, true)
	require.NoError(t, err)

	return materials
}

// testEmbedder maps a few known queries and contents to fixed unit vectors
// so similarity results are predictable
func testEmbedder(text string) ([]float32, error) {
	switch text {
	case "fractions":
		return []float32{1, 0, 0, 0}, nil
	case "water cycle":
		return []float32{0, 1, 0, 0}, nil
	default:
		return []float32{0, 0, 1, 0}, nil
	}
}

func insertTestChunks(t *testing.T, materials *database.MaterialsDBHandler) *model.Material {
	material := &model.Material{Title: "Retrieval Test Material", Subject: "math"}
	require.NoError(t, materials.InsertMaterial(material))

	fractions := &model.MaterialChunk{
		MaterialID: material.ID,
		Content:    "Adding fractions with like denominators is the first step.",
		ChunkIndex: 0,
		Embedding:  []float32{1, 0, 0, 0},
	}
	water := &model.MaterialChunk{
		MaterialID: material.ID,
		Content:    "The water cycle moves water through evaporation and rain.",
		ChunkIndex: 1,
		Embedding:  []float32{0, 1, 0, 0},
	}
	require.NoError(t, materials.InsertChunk(fractions))
	require.NoError(t, materials.InsertChunk(water))

	return material
}
