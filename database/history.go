package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/edukit/lessonforge/helper"
	"github.com/edukit/lessonforge/model"
	loadSql "github.com/edukit/lessonforge/sql"
)

// HistoryDBHandlerFunctions defines the interface for lesson history operations.
type HistoryDBHandlerFunctions interface {
	InsertLessonRecord(record *model.LessonRecord) error
	SelectRecentLessonRecords(userID string, limit int) ([]*model.LessonRecord, error)
	SelectSimilarLessonRecords(userID string, subject string, grade string, limit int) ([]*model.LessonRecord, error)
	UpsertPreferences(preferences *model.Preferences) error
	SelectPreferences(userID string) (*model.Preferences, error)
}

// HistoryDBHandler handles lesson history and user preference database operations
type HistoryDBHandler struct {
	db *helper.Database
}

// NewHistoryDBHandler creates a new lesson history database handler.
// It loads the history SQL functions and initializes the tables.
// If force is true, the SQL functions are reloaded even if they exist.
func NewHistoryDBHandler(db *helper.Database, force bool) (*HistoryDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	handler := &HistoryDBHandler{db: db}

	err := loadSql.LoadHistorySql(handler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load history sql", err)
	}

	err = handler.CreateTables()
	if err != nil {
		return nil, helper.NewError("create history tables", err)
	}

	db.Logger.Info("Initialized HistoryDBHandler")

	return handler, nil
}

// CreateTables creates the lesson_records and user_preferences tables.
// Existing tables are left untouched.
func (h *HistoryDBHandler) CreateTables() error {
	_, err := h.db.Instance.Exec(`SELECT init_history();`)
	if err != nil {
		return helper.NewError("initialize history tables", err)
	}

	h.db.Logger.Info("Checked/created tables lesson_records and user_preferences")

	return nil
}

// InsertLessonRecord inserts a generated lesson into the history and fills
// in generated fields
func (h *HistoryDBHandler) InsertLessonRecord(record *model.LessonRecord) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_lesson_record($1, $2, $3, $4, $5, $6)`,
		record.UserID,
		record.Subject,
		record.Grade,
		record.Topic,
		record.Content,
		record.Metadata,
	)

	err := row.Scan(
		&record.ID,
		&record.RID,
		&record.UserID,
		&record.Subject,
		&record.Grade,
		&record.Topic,
		&record.Content,
		&record.Metadata,
		&record.GeneratedAt,
	)
	if err != nil {
		return helper.NewError("scan lesson record", err)
	}

	return nil
}

// SelectRecentLessonRecords retrieves the newest lesson records for a user
func (h *HistoryDBHandler) SelectRecentLessonRecords(userID string, limit int) ([]*model.LessonRecord, error) {
	rows, err := h.db.Instance.Query(`SELECT * FROM select_recent_lesson_records($1, $2)`, userID, limit)
	if err != nil {
		return nil, helper.NewError("select recent lesson records", err)
	}
	defer rows.Close()

	return scanLessonRecords(rows)
}

// SelectSimilarLessonRecords retrieves a user's lesson records filtered by
// subject and grade. Empty subject or grade matches everything.
func (h *HistoryDBHandler) SelectSimilarLessonRecords(userID string, subject string, grade string, limit int) ([]*model.LessonRecord, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_similar_lesson_records($1, $2, $3, $4)`,
		userID,
		subject,
		grade,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("select similar lesson records", err)
	}
	defer rows.Close()

	return scanLessonRecords(rows)
}

// UpsertPreferences inserts or updates a user's preferences
func (h *HistoryDBHandler) UpsertPreferences(preferences *model.Preferences) error {
	if preferences == nil || preferences.UserID == "" {
		return helper.NewError("preferences validation", fmt.Errorf("preferences with user id required"))
	}

	prefsJson, err := json.Marshal(preferences)
	if err != nil {
		return helper.NewError("marshal preferences", err)
	}

	row := h.db.Instance.QueryRow(
		`SELECT * FROM upsert_preferences($1, $2)`,
		preferences.UserID,
		prefsJson,
	)

	var stored []byte
	err = row.Scan(&preferences.UserID, &stored, &preferences.UpdatedAt)
	if err != nil {
		return helper.NewError("scan preferences", err)
	}

	return nil
}

// SelectPreferences retrieves a user's preferences.
// Returns sql.ErrNoRows wrapped if the user has none stored.
func (h *HistoryDBHandler) SelectPreferences(userID string) (*model.Preferences, error) {
	row := h.db.Instance.QueryRow(`SELECT * FROM select_preferences($1)`, userID)

	preferences := &model.Preferences{}
	var stored []byte
	err := row.Scan(&preferences.UserID, &stored, &preferences.UpdatedAt)
	if err != nil {
		return nil, helper.NewError("scan preferences", err)
	}

	err = json.Unmarshal(stored, preferences)
	if err != nil {
		return nil, helper.NewError("unmarshal preferences", err)
	}

	return preferences, nil
}

func scanLessonRecords(rows *sql.Rows) ([]*model.LessonRecord, error) {
	var records []*model.LessonRecord
	for rows.Next() {
		record := &model.LessonRecord{}
		err := rows.Scan(
			&record.ID,
			&record.RID,
			&record.UserID,
			&record.Subject,
			&record.Grade,
			&record.Topic,
			&record.Content,
			&record.Metadata,
			&record.GeneratedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan lesson record", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
