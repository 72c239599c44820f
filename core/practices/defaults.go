package practices

import "github.com/edukit/lessonforge/model"

// Built-in fallback content used when the content service is unreachable
// or returns nothing for a query.

func defaultStrategies(query *model.PracticeQuery) []model.TeachingStrategy {
	strategies := []model.TeachingStrategy{
		{
			Name:        "Interactive Teaching",
			Description: "Promote learning through teacher-student and student-student interaction.",
			SubjectAreas: []string{
				string(model.SubjectGeneral),
			},
			GradeLevels: []string{"all"},
			Objectives:  []string{"increase engagement", "deepen understanding"},
			ImplementationSteps: []string{
				"Design interactive segments",
				"Encourage student participation",
				"Give timely feedback",
				"Summarize discussion outcomes",
			},
			Benefits:       []string{"Higher interest", "Deeper understanding", "Better expression skills"},
			Considerations: []string{"Keep discussions on time", "Make sure everyone participates"},
		},
		{
			Name:        "Inquiry-Based Learning",
			Description: "Students build understanding by investigating questions and problems.",
			SubjectAreas: []string{
				string(model.SubjectMath),
				string(model.SubjectBiology),
				string(model.SubjectPhysics),
			},
			GradeLevels: []string{"all"},
			Objectives:  []string{"critical thinking", "problem solving"},
			ImplementationSteps: []string{
				"Pose an open question",
				"Let students form hypotheses",
				"Investigate in small groups",
				"Share and compare findings",
			},
			Benefits:       []string{"Ownership of learning", "Transferable reasoning skills"},
			Considerations: []string{"Needs more class time", "Scaffold for younger students"},
		},
		{
			Name:        "Differentiated Instruction",
			Description: "Adapt content, process and product to different readiness levels.",
			SubjectAreas: []string{
				string(model.SubjectGeneral),
			},
			GradeLevels: []string{"all"},
			Objectives:  []string{"reach every learner"},
			ImplementationSteps: []string{
				"Assess readiness levels",
				"Prepare tiered tasks",
				"Group flexibly",
				"Review and adjust groupings",
			},
			Benefits:       []string{"Every student is challenged appropriately"},
			Considerations: []string{"Preparation effort", "Avoid fixed ability labels"},
		},
	}

	// A method filter narrows the defaults to the matching family when possible
	if query != nil && query.MethodType == model.MethodInquiryBased {
		return strategies[1:2]
	}

	return strategies
}

func defaultActivities(query *model.PracticeQuery) []model.ClassroomActivity {
	return []model.ClassroomActivity{
		{
			Name:            "Think-Pair-Share",
			Description:     "Students think individually, discuss with a partner, then share with the class.",
			DurationMinutes: 10,
			GroupSize:       "pairs",
			MaterialsNeeded: []string{"prompt on board"},
			Instructions: []string{
				"Pose a question and give one minute of silent thinking",
				"Pairs compare answers for two minutes",
				"Collect a few pair answers in plenary",
			},
		},
		{
			Name:            "Gallery Walk",
			Description:     "Groups rotate through stations, reviewing and annotating each other's work.",
			DurationMinutes: 20,
			GroupSize:       "3-4 students",
			MaterialsNeeded: []string{"poster paper", "markers", "sticky notes"},
			Instructions: []string{
				"Post group work around the room",
				"Groups rotate on a timer",
				"Each group leaves one comment per station",
				"Debrief the most common feedback",
			},
		},
		{
			Name:            "Exit Ticket",
			Description:     "Students answer one short question before leaving to surface misconceptions.",
			DurationMinutes: 5,
			GroupSize:       "individual",
			MaterialsNeeded: []string{"index cards"},
			Instructions: []string{
				"Ask one question targeting the lesson objective",
				"Collect answers at the door",
				"Sort answers to plan the next lesson",
			},
		},
	}
}

func defaultAssessments(query *model.PracticeQuery) []model.AssessmentMethod {
	return []model.AssessmentMethod{
		{
			Name:        "Formative Questioning",
			Description: "Targeted questions during the lesson to check understanding in real time.",
			Type:        "formative",
			Criteria:    []string{"accuracy of responses", "depth of reasoning"},
		},
		{
			Name:        "Rubric-Based Project Review",
			Description: "Evaluate student projects against a shared rubric known in advance.",
			Type:        "summative",
			Criteria:    []string{"content mastery", "process quality", "presentation"},
		},
		{
			Name:        "Peer Assessment",
			Description: "Students assess each other's work using guided criteria.",
			Type:        "formative",
			Criteria:    []string{"use of criteria", "quality of feedback given"},
		},
	}
}

func defaultGuidelines(query *model.PracticeQuery) []model.ManagementGuideline {
	return []model.ManagementGuideline{
		{
			Name:        "Clear Routines",
			Description: "Establish and rehearse predictable routines for transitions and materials.",
			Situations:  []string{"lesson start", "group work transitions"},
			Tips: []string{
				"Teach the routine explicitly in the first week",
				"Use the same signal every time",
			},
		},
		{
			Name:        "Positive Reinforcement",
			Description: "Recognize desired behavior specifically and immediately.",
			Situations:  []string{"on-task behavior", "helpful peer interactions"},
			Tips: []string{
				"Name the behavior, not just the student",
				"Keep praise proportionate and genuine",
			},
		},
		{
			Name:        "Proximity Control",
			Description: "Move through the room to prevent off-task behavior without interrupting the lesson.",
			Situations:  []string{"independent work", "tests"},
			Tips: []string{
				"Plan a walking route covering all areas",
				"Pause near students drifting off task",
			},
		},
	}
}

// defaultResponse assembles a full fallback response for a query
func defaultResponse(query *model.PracticeQuery) *model.PracticeResponse {
	return &model.PracticeResponse{
		Query:                *query,
		TeachingStrategies:   limitStrategies(defaultStrategies(query), query.Limit),
		ClassroomActivities:  limitActivities(defaultActivities(query), query.Limit),
		AssessmentMethods:    limitAssessments(defaultAssessments(query), query.Limit),
		ManagementGuidelines: limitGuidelines(defaultGuidelines(query), query.Limit),
		FromDefaults:         true,
	}
}

func limitStrategies(items []model.TeachingStrategy, limit int) []model.TeachingStrategy {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func limitActivities(items []model.ClassroomActivity, limit int) []model.ClassroomActivity {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func limitAssessments(items []model.AssessmentMethod, limit int) []model.AssessmentMethod {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func limitGuidelines(items []model.ManagementGuideline, limit int) []model.ManagementGuideline {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
