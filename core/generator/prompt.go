package generator

import (
	"fmt"
	"strings"

	"github.com/edukit/lessonforge/model"
)

// SystemPrompt frames the generator as an experienced educator
const SystemPrompt = "You are an experienced educator and curriculum designer. " +
	"You write detailed, practical lesson plans that match the students' level " +
	"and make use of the reference material and teaching practices you are given."

const maxReferenceFragments = 3
const maxReferenceChars = 200
const maxPromptStrategies = 2

// PromptInput collects everything that informs one lesson plan prompt.
// Only Request is required, the other sections are included when present.
type PromptInput struct {
	Request     *model.LessonRequest
	Fragments   []*model.Fragment
	Practices   *model.PracticeResponse
	Summary     *model.StudentSummary
	History     []*model.LessonRecord
	Preferences *model.Preferences
}

// BuildLessonPrompt renders the generation prompt for a lesson request
func BuildLessonPrompt(input PromptInput) (string, error) {
	if input.Request == nil {
		return "", fmt.Errorf("lesson request is required")
	}
	req := input.Request

	var b strings.Builder

	b.WriteString("Generate a detailed lesson plan using the following information.\n\n")
	b.WriteString("Basic information:\n")
	fmt.Fprintf(&b, "- Subject: %s\n", req.Subject)
	fmt.Fprintf(&b, "- Grade: %s\n", req.Grade)
	fmt.Fprintf(&b, "- Topic: %s\n", req.Topic)
	if req.DurationMinutes > 0 {
		fmt.Fprintf(&b, "- Duration: %d minutes\n", req.DurationMinutes)
	}

	if len(input.Fragments) > 0 {
		b.WriteString("\nKey points from reference materials:\n")
		for i, fragment := range input.Fragments {
			if i >= maxReferenceFragments {
				break
			}
			content := fragment.Content
			if len(content) > maxReferenceChars {
				content = content[:maxReferenceChars] + "..."
			}
			fmt.Fprintf(&b, "%d. %s\n", i+1, content)
		}
	}

	if input.Summary != nil {
		b.WriteString("\nClass analysis:\n")
		fmt.Fprintf(&b, "- Class size: %d\n", input.Summary.ClassSize)
		fmt.Fprintf(&b, "- Average score: %.1f\n", input.Summary.AverageScore)
		if len(input.Summary.WeakTopics) > 0 {
			fmt.Fprintf(&b, "- Topics needing attention: %s\n", strings.Join(input.Summary.WeakTopics, ", "))
		}
	}

	if input.Practices != nil && len(input.Practices.TeachingStrategies) > 0 {
		b.WriteString("\nRecommended teaching methods:\n")
		for i, strategy := range input.Practices.TeachingStrategies {
			if i >= maxPromptStrategies {
				break
			}
			fmt.Fprintf(&b, "- %s: %s\n", strategy.Name, strategy.Description)
		}
	}

	if len(input.History) > 0 {
		b.WriteString("\nRecent lessons for this class (avoid repeating them):\n")
		for _, record := range input.History {
			fmt.Fprintf(&b, "- %s (%s, grade %s)\n", record.Topic, record.Subject, record.Grade)
		}
	}

	if input.Preferences != nil {
		if len(input.Preferences.PreferredMethods) > 0 {
			fmt.Fprintf(&b, "\nThe teacher prefers these methods: %s\n", strings.Join(input.Preferences.PreferredMethods, ", "))
		}
		if len(input.Preferences.AvoidedMethods) > 0 {
			fmt.Fprintf(&b, "Avoid these methods: %s\n", strings.Join(input.Preferences.AvoidedMethods, ", "))
		}
		if input.Preferences.Notes != "" {
			fmt.Fprintf(&b, "Additional notes from the teacher: %s\n", input.Preferences.Notes)
		}
	}

	b.WriteString(`
Structure the lesson plan as follows, keeping every section concrete and actionable:

1. Learning objectives (knowledge, skills, attitudes)
2. Key points and anticipated difficulties
3. Teaching methods and strategies
4. Preparation (teacher and students)
5. Lesson flow (opening, instruction, practice, summary, homework)
6. Board plan
7. Differentiation arrangements
8. Points for reflection

Make sure the plan matches the students' cognitive level, varies the teaching
methods and keeps students actively involved.
`)

	return b.String(), nil
}
