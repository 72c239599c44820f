package analytics

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/edukit/lessonforge/model"
)

// Provider supplies class performance data used to tailor lesson plans
type Provider interface {
	GetStudentSummary(ctx context.Context, classID string, subject model.SubjectType) (*model.StudentSummary, error)
}

// MockProvider generates deterministic synthetic class data. It stands in
// for a school information system integration during development and tests.
type MockProvider struct{}

// NewMockProvider creates a provider serving synthetic class summaries
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// GetStudentSummary returns a synthetic summary derived from the class id,
// so the same class always gets the same data
func (p *MockProvider) GetStudentSummary(ctx context.Context, classID string, subject model.SubjectType) (*model.StudentSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if classID == "" {
		return nil, fmt.Errorf("class id is required")
	}

	h := fnv.New32a()
	h.Write([]byte(classID))
	seed := h.Sum32()

	classSize := 20 + int(seed%15)
	averageScore := 60.0 + float64(seed%30)

	weakTopics := weakTopicsFor(subject)
	mastery := make(map[string]float64, len(weakTopics))
	for i, topic := range weakTopics {
		mastery[topic] = 0.35 + 0.05*float64((int(seed)+i)%5)
	}

	return &model.StudentSummary{
		ClassID:        classID,
		ClassSize:      classSize,
		AverageScore:   averageScore,
		MasteryByTopic: mastery,
		WeakTopics:     weakTopics,
		LearningStyles: map[string]int{
			"visual":      classSize / 2,
			"auditory":    classSize / 4,
			"kinesthetic": classSize - classSize/2 - classSize/4,
		},
	}, nil
}

func weakTopicsFor(subject model.SubjectType) []string {
	switch subject {
	case model.SubjectMath:
		return []string{"geometry proofs", "word problems"}
	case model.SubjectLanguageArts, model.SubjectEnglish:
		return []string{"reading comprehension", "essay writing"}
	case model.SubjectPhysics:
		return []string{"force diagrams", "unit conversions"}
	default:
		return []string{"core concepts"}
	}
}
