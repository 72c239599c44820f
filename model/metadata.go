package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/edukit/lessonforge/helper"
)

// Metadata represents JSONB metadata stored in PostgreSQL.
// The fusion engine treats it as opaque provenance information.
type Metadata map[string]interface{}

// Value implements the driver.Valuer interface for database storage
func (m Metadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface for database retrieval
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = Metadata{}
		return nil
	}

	b, ok := value.([]byte)
	if !ok {
		return helper.NewError("metadata scan", errors.New("type assertion to []byte failed"))
	}

	return json.Unmarshal(b, m)
}

// Copy returns a shallow copy of the metadata map
func (m Metadata) Copy() Metadata {
	if m == nil {
		return nil
	}
	copied := make(Metadata, len(m))
	for k, v := range m {
		copied[k] = v
	}
	return copied
}
