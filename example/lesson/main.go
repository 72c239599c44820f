package main

import (
	"context"
	"fmt"
	"log"

	lessonforge "github.com/edukit/lessonforge"
	"github.com/edukit/lessonforge/helper"
	"github.com/edukit/lessonforge/model"
)

const referenceMaterial = `# Fractions on the Number Line

Placing fractions on a number line builds the idea that fractions are
numbers, not just pieces of shapes. Start with unit fractions, then have
students place non-unit fractions by counting unit jumps.

# Common Misconceptions

Students often believe a larger denominator means a larger fraction.
Comparing unit fractions with the same numerator surfaces and corrects
this misconception quickly.`

func main() {
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "lessonforge_test",
		Username: "postgres",
		Password: "postgres",
		Schema:   "public",
	}

	// With no generator api key in the environment the planner falls back
	// to the mock generator, so the demo runs fully offline.
	config := helper.DefaultPlannerConfiguration()
	planner, err := lessonforge.NewPlanner(dbConfig, config)
	if err != nil {
		log.Fatalf("Failed to create planner: %v", err)
	}
	defer planner.Close()

	if err := planner.UseDefaultPipeline(); err != nil {
		log.Fatalf("Failed to set up pipeline: %v", err)
	}

	material := &model.Material{
		Title:   "Fractions Teaching Notes",
		Subject: "math",
		Grade:   "5",
		Content: referenceMaterial,
	}
	if _, err := planner.ProcessAndInsertMaterial(material); err != nil {
		log.Fatalf("Failed to index material: %v", err)
	}

	// Teaching practices come from the built-in defaults when no content
	// service is configured. The response is cached for repeat queries.
	practices, err := planner.GetTeachingPractices(context.Background(), &model.PracticeQuery{
		Subject: model.SubjectMath,
		Grade:   "5",
	})
	if err != nil {
		log.Fatalf("Failed to get practices: %v", err)
	}
	fmt.Printf("Loaded %d teaching strategies (from defaults: %v)\n",
		len(practices.TeachingStrategies), practices.FromDefaults)

	if err := planner.SavePreferences(&model.Preferences{
		UserID:           "demo-teacher",
		PreferredMethods: []string{"group work", "visual models"},
		DefaultDuration:  45,
	}); err != nil {
		log.Fatalf("Failed to save preferences: %v", err)
	}

	plan, err := planner.GenerateLessonPlan(context.Background(), &model.LessonRequest{
		Subject:         model.SubjectMath,
		Grade:           "5",
		Topic:           "Comparing fractions",
		DurationMinutes: 45,
		UserID:          "demo-teacher",
		UseMemory:       true,
	})
	if err != nil {
		log.Fatalf("Failed to generate lesson plan: %v", err)
	}

	fmt.Printf("\nGenerated with model %q using %d reference fragments:\n\n%s\n",
		plan.Model, len(plan.Sources), plan.Content)

	records, err := planner.RecentLessons("demo-teacher", 5)
	if err != nil {
		log.Fatalf("Failed to read history: %v", err)
	}
	fmt.Printf("History now holds %d lesson(s) for demo-teacher\n", len(records))

	stats := planner.PracticeCacheStats()
	fmt.Printf("Practice cache: %d entries, %d valid\n", stats.TotalEntries, stats.ValidEntries)
}
