package model

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Material represents a source teaching material (lesson plan, worksheet,
// curriculum excerpt) that gets chunked and indexed for retrieval
type Material struct {
	ID        int64     `json:"id"`
	RID       uuid.UUID `json:"rid"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject,omitempty"`
	Grade     string    `json:"grade,omitempty"`
	Source    string    `json:"source,omitempty"`
	Content   string    `json:"content,omitempty" db:"-"` // Temporary field for processing, not stored in DB
	Metadata  Metadata  `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MaterialChunk is an indexed fragment of a material with its embedding
type MaterialChunk struct {
	ID         int64     `json:"id"`
	MaterialID int64     `json:"material_id"`
	Content    string    `json:"content"`
	ChunkIndex int       `json:"chunk_index"`
	Embedding  []float32 `json:"embedding,omitempty"`
	Metadata   Metadata  `json:"metadata,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	// Result fields populated by retrieval queries
	Similarity float64 `json:"similarity,omitempty"`
	Rank       float64 `json:"rank,omitempty"`
}

// NewMaterialFromFile reads a file and creates a Material with the file content.
// The title defaults to the filename without extension, source to the file path.
func NewMaterialFromFile(filePath string, subject string, grade string, metadata Metadata) (*Material, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	filename := filepath.Base(filePath)
	title := filename[:len(filename)-len(filepath.Ext(filename))]
	if title == "" {
		title = filename
	}

	return &Material{
		Title:    title,
		Subject:  subject,
		Grade:    grade,
		Source:   filePath,
		Content:  string(content),
		Metadata: metadata,
	}, nil
}
