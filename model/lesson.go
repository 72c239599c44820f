package model

import (
	"time"

	"github.com/google/uuid"
)

// LessonRequest describes one lesson plan generation request
type LessonRequest struct {
	Subject         SubjectType `json:"subject"`
	Grade           string      `json:"grade"`
	Topic           string      `json:"topic"`
	DurationMinutes int         `json:"duration_minutes"`
	UserID          string      `json:"user_id,omitempty"`
	UseMemory       bool        `json:"use_memory"`
	// Fusion controls the retrieval result merging for this request.
	// Zero value means DefaultFusionConfig.
	Fusion FusionConfig `json:"fusion,omitempty"`
}

// LessonPlan is a generated lesson plan together with its provenance
type LessonPlan struct {
	RID             uuid.UUID   `json:"rid"`
	Subject         SubjectType `json:"subject"`
	Grade           string      `json:"grade"`
	Topic           string      `json:"topic"`
	DurationMinutes int         `json:"duration_minutes"`
	Content         string      `json:"content"`
	Sources         []*Fragment `json:"sources,omitempty"`
	Model           string      `json:"model,omitempty"`
	GeneratedAt     time.Time   `json:"generated_at"`
}

// LessonRecord is a persisted lesson plan entry in the history store
type LessonRecord struct {
	ID          int64     `json:"id"`
	RID         uuid.UUID `json:"rid"`
	UserID      string    `json:"user_id"`
	Subject     string    `json:"subject"`
	Grade       string    `json:"grade"`
	Topic       string    `json:"topic"`
	Content     string    `json:"content"`
	Metadata    Metadata  `json:"metadata,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Preferences captures per-user lesson generation preferences
type Preferences struct {
	UserID           string    `json:"user_id"`
	PreferredMethods []string  `json:"preferred_methods,omitempty"`
	AvoidedMethods   []string  `json:"avoided_methods,omitempty"`
	DefaultDuration  int       `json:"default_duration,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// StudentSummary holds the numeric class performance summary the analytics
// provider returns for a class or user cohort
type StudentSummary struct {
	ClassID        string             `json:"class_id"`
	ClassSize      int                `json:"class_size"`
	AverageScore   float64            `json:"average_score"`
	MasteryByTopic map[string]float64 `json:"mastery_by_topic,omitempty"`
	WeakTopics     []string           `json:"weak_topics,omitempty"`
	LearningStyles map[string]int     `json:"learning_styles,omitempty"`
}
