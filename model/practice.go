package model

import "time"

// SubjectType enumerates supported school subjects
type SubjectType string

const (
	SubjectLanguageArts SubjectType = "language_arts"
	SubjectMath         SubjectType = "math"
	SubjectEnglish      SubjectType = "english"
	SubjectPhysics      SubjectType = "physics"
	SubjectChemistry    SubjectType = "chemistry"
	SubjectBiology      SubjectType = "biology"
	SubjectHistory      SubjectType = "history"
	SubjectGeography    SubjectType = "geography"
	SubjectMusic        SubjectType = "music"
	SubjectArt          SubjectType = "art"
	SubjectPE           SubjectType = "physical_education"
	SubjectTechnology   SubjectType = "technology"
	SubjectGeneral      SubjectType = "general"
)

// TeachingObjective enumerates the pedagogical goals a lesson can target
type TeachingObjective string

const (
	ObjectiveKnowledgeTransfer TeachingObjective = "knowledge_transfer"
	ObjectiveSkillDevelopment  TeachingObjective = "skill_development"
	ObjectiveCriticalThinking  TeachingObjective = "critical_thinking"
	ObjectiveCreativity        TeachingObjective = "creativity"
	ObjectiveCollaboration     TeachingObjective = "collaboration"
	ObjectiveCommunication     TeachingObjective = "communication"
	ObjectiveProblemSolving    TeachingObjective = "problem_solving"
)

// TeachingMethodType enumerates teaching method families
type TeachingMethodType string

const (
	MethodInteractive    TeachingMethodType = "interactive"
	MethodInquiryBased   TeachingMethodType = "inquiry_based"
	MethodProjectBased   TeachingMethodType = "project_based"
	MethodCollaborative  TeachingMethodType = "collaborative"
	MethodDifferentiated TeachingMethodType = "differentiated"
	MethodFlipped        TeachingMethodType = "flipped_classroom"
	MethodGamification   TeachingMethodType = "gamification"
	MethodScaffolding    TeachingMethodType = "scaffolding"
)

// PracticeQuery represents a structured query against the teaching-practice
// content service. Structurally identical queries share a cache key
// regardless of how the caller populated the fields.
type PracticeQuery struct {
	Subject    SubjectType        `json:"subject,omitempty"`
	Grade      string             `json:"grade,omitempty"`
	Objective  TeachingObjective  `json:"objective,omitempty"`
	MethodType TeachingMethodType `json:"method_type,omitempty"`
	Keywords   []string           `json:"keywords,omitempty"`
	Language   string             `json:"language"`
	Limit      int                `json:"limit"`
}

// DefaultPracticeQuery returns a query with the service defaults applied
func DefaultPracticeQuery() PracticeQuery {
	return PracticeQuery{
		Language: "en-US",
		Limit:    10,
	}
}

// TeachingStrategy describes a named teaching strategy
type TeachingStrategy struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	SubjectAreas        []string `json:"subject_areas,omitempty"`
	GradeLevels         []string `json:"grade_levels,omitempty"`
	Objectives          []string `json:"objectives,omitempty"`
	ImplementationSteps []string `json:"implementation_steps,omitempty"`
	Benefits            []string `json:"benefits,omitempty"`
	Considerations      []string `json:"considerations,omitempty"`
}

// ClassroomActivity describes a concrete in-class activity
type ClassroomActivity struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	DurationMinutes int      `json:"duration_minutes,omitempty"`
	GroupSize       string   `json:"group_size,omitempty"`
	MaterialsNeeded []string `json:"materials_needed,omitempty"`
	Instructions    []string `json:"instructions,omitempty"`
}

// AssessmentMethod describes how learning outcomes are assessed
type AssessmentMethod struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        string   `json:"type,omitempty"` // formative or summative
	Criteria    []string `json:"criteria,omitempty"`
}

// ManagementGuideline describes a classroom management technique
type ManagementGuideline struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Situations  []string `json:"situations,omitempty"`
	Tips        []string `json:"tips,omitempty"`
}

// PracticeResponse aggregates everything the practice service returns for
// one query. This is the value memoized by the expiring cache.
type PracticeResponse struct {
	Query                PracticeQuery         `json:"query"`
	TeachingStrategies   []TeachingStrategy    `json:"teaching_strategies"`
	ClassroomActivities  []ClassroomActivity   `json:"classroom_activities"`
	AssessmentMethods    []AssessmentMethod    `json:"assessment_methods"`
	ManagementGuidelines []ManagementGuideline `json:"management_guidelines"`
	AdditionalResources  []string              `json:"additional_resources,omitempty"`
	GeneratedAt          time.Time             `json:"generated_at"`
	FromDefaults         bool                  `json:"from_defaults,omitempty"`
}
