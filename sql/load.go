package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"

	"github.com/lib/pq"
)

//go:embed init.sql
var initSQL string

//go:embed materials.sql
var materialsSQL string

//go:embed history.sql
var historySQL string

// Function lists for verification
var MaterialsFunctions = []string{
	"init_materials",
	"insert_material",
	"select_material",
	"select_all_materials",
	"delete_material",
	"insert_material_chunk",
	"select_chunks_by_similarity",
	"select_chunks_by_keywords",
}

var HistoryFunctions = []string{
	"init_history",
	"insert_lesson_record",
	"select_recent_lesson_records",
	"select_similar_lesson_records",
	"upsert_preferences",
	"select_preferences",
}

// Init initializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadMaterialsSql loads material-related SQL functions.
// If force is false, functions that already exist are not reloaded.
func LoadMaterialsSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, MaterialsFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing materials functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(materialsSQL)
	if err != nil {
		return fmt.Errorf("error executing materials SQL: %w", err)
	}

	exist, err := checkFunctions(db, MaterialsFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL materials functions loaded successfully")
	return nil
}

// LoadHistorySql loads lesson-history SQL functions
func LoadHistorySql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, HistoryFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing history functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(historySQL)
	if err != nil {
		return fmt.Errorf("error executing history SQL: %w", err)
	}

	exist, err := checkFunctions(db, HistoryFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL history functions loaded successfully")
	return nil
}

// LoadAllSql loads all SQL functions
func LoadAllSql(db *sql.DB, force bool) error {
	if err := LoadMaterialsSql(db, force); err != nil {
		return err
	}

	if err := LoadHistorySql(db, force); err != nil {
		return err
	}

	return nil
}

// checkFunctions reports whether every named function exists in the database
func checkFunctions(db *sql.DB, names []string) (bool, error) {
	row := db.QueryRow(
		`SELECT COUNT(DISTINCT proname) FROM pg_proc WHERE proname = ANY($1)`,
		pq.Array(names),
	)

	var count int
	if err := row.Scan(&count); err != nil {
		return false, err
	}

	return count == len(names), nil
}
