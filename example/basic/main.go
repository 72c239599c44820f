package main

import (
	"context"
	"fmt"
	"log"

	lessonforge "github.com/edukit/lessonforge"
	"github.com/edukit/lessonforge/helper"
	"github.com/edukit/lessonforge/model"
)

const fractionsMaterial = `# Introduction to Fractions

Fractions represent parts of a whole. Students should first work with
concrete models like fraction circles and number lines before moving to
abstract notation.

# Adding Fractions

Adding fractions with like denominators only requires adding the numerators.
For unlike denominators, students find a common denominator first. Visual
models help students see why the denominators must match.`

const waterCycleMaterial = `# The Water Cycle

The water cycle describes how water moves through the environment.
Evaporation lifts water into the atmosphere, condensation forms clouds,
and precipitation returns water to the surface.

# Classroom Demonstration

A sealed plastic bag with water taped to a sunny window makes the cycle
observable within a single school day.`

func main() {
	// Start a test PostgreSQL container
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

	planner, err := lessonforge.NewPlanner(dbConfig, nil)
	if err != nil {
		log.Fatalf("Failed to create planner: %v", err)
	}
	defer planner.Close()

	// Section chunking + local hugot embeddings (downloads the model on first run)
	if err := planner.UseDefaultPipeline(); err != nil {
		log.Fatalf("Failed to set up pipeline: %v", err)
	}

	materials := []*model.Material{
		{Title: "Fractions Unit", Subject: "math", Grade: "5", Content: fractionsMaterial},
		{Title: "Water Cycle Unit", Subject: "science", Grade: "5", Content: waterCycleMaterial},
	}

	for _, material := range materials {
		numChunks, err := planner.ProcessAndInsertMaterial(material)
		if err != nil {
			log.Fatalf("Failed to process material %q: %v", material.Title, err)
		}
		fmt.Printf("Indexed %q as %d chunks\n", material.Title, numChunks)
	}

	fragments, err := planner.HybridSearch(context.Background(), "how to add fractions", planner.FusionConfig())
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}

	fmt.Printf("\nTop results for \"how to add fractions\":\n")
	for i, fragment := range fragments {
		fmt.Printf("%d. [%s, score %.3f] %.80s...\n", i+1, fragment.Source, fragment.Score, fragment.Content)
	}
}
