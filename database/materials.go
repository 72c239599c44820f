package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/edukit/lessonforge/helper"
	"github.com/edukit/lessonforge/model"
	loadSql "github.com/edukit/lessonforge/sql"
)

// MaterialsDBHandlerFunctions defines the interface for materials database operations.
type MaterialsDBHandlerFunctions interface {
	InsertMaterial(material *model.Material) error
	SelectMaterial(rid uuid.UUID) (*model.Material, error)
	SelectAllMaterials() ([]*model.Material, error)
	DeleteMaterial(rid uuid.UUID) error
	InsertChunk(chunk *model.MaterialChunk) error
	SelectChunksBySimilarity(embedding []float32, limit int, threshold float64) ([]*model.MaterialChunk, error)
	SelectChunksByKeywords(query string, limit int) ([]*model.MaterialChunk, error)
}

// MaterialsDBHandler handles teaching material and chunk database operations
type MaterialsDBHandler struct {
	db *helper.Database
}

// NewMaterialsDBHandler creates a new materials database handler.
// It loads the material SQL functions and initializes the tables.
// If force is true, the SQL functions are reloaded even if they exist.
func NewMaterialsDBHandler(db *helper.Database, embeddingDim int, force bool) (*MaterialsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	handler := &MaterialsDBHandler{db: db}

	err := loadSql.LoadMaterialsSql(handler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load materials sql", err)
	}

	err = handler.CreateTables(embeddingDim)
	if err != nil {
		return nil, helper.NewError("create materials tables", err)
	}

	db.Logger.Info("Initialized MaterialsDBHandler")

	return handler, nil
}

// CreateTables creates the materials and material_chunks tables with all
// indexes. Existing tables are left untouched.
func (h *MaterialsDBHandler) CreateTables(embeddingDim int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_materials($1);`, embeddingDim)
	if err != nil {
		return helper.NewError("initialize materials tables", err)
	}

	h.db.Logger.Info("Checked/created tables materials and material_chunks")

	return nil
}

// InsertMaterial inserts a new material and fills in generated fields
func (h *MaterialsDBHandler) InsertMaterial(material *model.Material) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_material($1, $2, $3, $4, $5)`,
		material.Title,
		material.Subject,
		material.Grade,
		material.Source,
		material.Metadata,
	)

	err := row.Scan(
		&material.ID,
		&material.RID,
		&material.Title,
		&material.Subject,
		&material.Grade,
		&material.Source,
		&material.Metadata,
		&material.CreatedAt,
		&material.UpdatedAt,
	)
	if err != nil {
		return helper.NewError("scan material", err)
	}

	return nil
}

// SelectMaterial retrieves a material by its RID
func (h *MaterialsDBHandler) SelectMaterial(rid uuid.UUID) (*model.Material, error) {
	row := h.db.Instance.QueryRow(`SELECT * FROM select_material($1)`, rid)

	material := &model.Material{}
	err := row.Scan(
		&material.ID,
		&material.RID,
		&material.Title,
		&material.Subject,
		&material.Grade,
		&material.Source,
		&material.Metadata,
		&material.CreatedAt,
		&material.UpdatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan material", err)
	}

	return material, nil
}

// SelectAllMaterials retrieves all materials, newest first
func (h *MaterialsDBHandler) SelectAllMaterials() ([]*model.Material, error) {
	rows, err := h.db.Instance.Query(`SELECT * FROM select_all_materials()`)
	if err != nil {
		return nil, helper.NewError("select all materials", err)
	}
	defer rows.Close()

	var materials []*model.Material
	for rows.Next() {
		material := &model.Material{}
		err := rows.Scan(
			&material.ID,
			&material.RID,
			&material.Title,
			&material.Subject,
			&material.Grade,
			&material.Source,
			&material.Metadata,
			&material.CreatedAt,
			&material.UpdatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan material", err)
		}
		materials = append(materials, material)
	}

	return materials, rows.Err()
}

// DeleteMaterial deletes a material and cascades to its chunks
func (h *MaterialsDBHandler) DeleteMaterial(rid uuid.UUID) error {
	_, err := h.db.Instance.Exec(`SELECT delete_material($1)`, rid)
	if err != nil {
		return helper.NewError("delete material", err)
	}

	return nil
}

// InsertChunk inserts an indexed chunk with its embedding
func (h *MaterialsDBHandler) InsertChunk(chunk *model.MaterialChunk) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_material_chunk($1, $2, $3, $4, $5)`,
		chunk.MaterialID,
		chunk.Content,
		chunk.ChunkIndex,
		pq.Array(chunk.Embedding),
		chunk.Metadata,
	)

	err := row.Scan(
		&chunk.ID,
		&chunk.MaterialID,
		&chunk.Content,
		&chunk.ChunkIndex,
		&chunk.Metadata,
		&chunk.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan chunk", err)
	}

	return nil
}

// SelectChunksBySimilarity performs cosine similarity search over chunk
// embeddings. Results below the threshold are filtered out.
func (h *MaterialsDBHandler) SelectChunksBySimilarity(embedding []float32, limit int, threshold float64) ([]*model.MaterialChunk, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_chunks_by_similarity($1, $2, $3)`,
		pgvector.NewVector(embedding),
		limit,
		threshold,
	)
	if err != nil {
		return nil, helper.NewError("select chunks by similarity", err)
	}
	defer rows.Close()

	var chunks []*model.MaterialChunk
	for rows.Next() {
		chunk := &model.MaterialChunk{}
		err := rows.Scan(
			&chunk.ID,
			&chunk.MaterialID,
			&chunk.Content,
			&chunk.ChunkIndex,
			&chunk.Metadata,
			&chunk.CreatedAt,
			&chunk.Similarity,
		)
		if err != nil {
			return nil, helper.NewError("scan chunk", err)
		}
		chunks = append(chunks, chunk)
	}

	return chunks, rows.Err()
}

// SelectChunksByKeywords performs full-text search over chunk contents,
// ranked by ts_rank
func (h *MaterialsDBHandler) SelectChunksByKeywords(query string, limit int) ([]*model.MaterialChunk, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_chunks_by_keywords($1, $2)`,
		query,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("select chunks by keywords", err)
	}
	defer rows.Close()

	var chunks []*model.MaterialChunk
	for rows.Next() {
		chunk := &model.MaterialChunk{}
		var rank float32
		err := rows.Scan(
			&chunk.ID,
			&chunk.MaterialID,
			&chunk.Content,
			&chunk.ChunkIndex,
			&chunk.Metadata,
			&chunk.CreatedAt,
			&rank,
		)
		if err != nil {
			return nil, helper.NewError("scan chunk", err)
		}
		chunk.Rank = float64(rank)
		chunks = append(chunks, chunk)
	}

	return chunks, rows.Err()
}
