package practices

import (
	"encoding/json"

	"github.com/edukit/lessonforge/model"
)

// The content service wraps each category payload in an items array.
// Entries without a name are dropped, malformed payloads parse to nil.

func parseStrategies(payload []byte) []model.TeachingStrategy {
	var wrapper struct {
		Items []model.TeachingStrategy `json:"items"`
	}
	if err := json.Unmarshal(payload, &wrapper); err != nil {
		return nil
	}

	var strategies []model.TeachingStrategy
	for _, item := range wrapper.Items {
		if item.Name == "" {
			continue
		}
		strategies = append(strategies, item)
	}

	return strategies
}

func parseActivities(payload []byte) []model.ClassroomActivity {
	var wrapper struct {
		Items []model.ClassroomActivity `json:"items"`
	}
	if err := json.Unmarshal(payload, &wrapper); err != nil {
		return nil
	}

	var activities []model.ClassroomActivity
	for _, item := range wrapper.Items {
		if item.Name == "" {
			continue
		}
		activities = append(activities, item)
	}

	return activities
}

func parseAssessments(payload []byte) []model.AssessmentMethod {
	var wrapper struct {
		Items []model.AssessmentMethod `json:"items"`
	}
	if err := json.Unmarshal(payload, &wrapper); err != nil {
		return nil
	}

	var methods []model.AssessmentMethod
	for _, item := range wrapper.Items {
		if item.Name == "" {
			continue
		}
		methods = append(methods, item)
	}

	return methods
}

func parseGuidelines(payload []byte) []model.ManagementGuideline {
	var wrapper struct {
		Items []model.ManagementGuideline `json:"items"`
	}
	if err := json.Unmarshal(payload, &wrapper); err != nil {
		return nil
	}

	var guidelines []model.ManagementGuideline
	for _, item := range wrapper.Items {
		if item.Name == "" {
			continue
		}
		guidelines = append(guidelines, item)
	}

	return guidelines
}
