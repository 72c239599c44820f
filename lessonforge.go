package lessonforge

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/edukit/lessonforge/core/analytics"
	"github.com/edukit/lessonforge/core/cache"
	"github.com/edukit/lessonforge/core/generator"
	"github.com/edukit/lessonforge/core/pipeline"
	"github.com/edukit/lessonforge/core/practices"
	"github.com/edukit/lessonforge/core/retrieval"
	"github.com/edukit/lessonforge/database"
	"github.com/edukit/lessonforge/helper"
	"github.com/edukit/lessonforge/model"
	loadSql "github.com/edukit/lessonforge/sql"
)

// Planner provides a unified interface to material ingestion, hybrid
// retrieval, teaching practice lookup and lesson plan generation
type Planner struct {
	DB        *helper.Database
	Materials *database.MaterialsDBHandler
	History   *database.HistoryDBHandler
	Pipeline  *pipeline.Pipeline
	Practices *practices.Service
	Analytics analytics.Provider
	Generator generator.TextGenerator

	config *helper.PlannerConfiguration
	log    *slog.Logger
}

// NewPlanner creates a Planner with all handlers initialized. A nil planner
// configuration falls back to the built-in defaults.
func NewPlanner(dbConfig *helper.DatabaseConfiguration, config *helper.PlannerConfiguration) (*Planner, error) {
	if config == nil {
		config = helper.DefaultPlannerConfiguration()
	}

	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	db := helper.NewDatabase("lessonforge", dbConfig, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	// force=false to not reload functions that already exist
	materials, err := database.NewMaterialsDBHandler(db, config.Embedder.Dimension, false)
	if err != nil {
		return nil, helper.NewError("create materials handler", err)
	}

	history, err := database.NewHistoryDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create history handler", err)
	}

	practiceService, err := newPracticeService(config, logger)
	if err != nil {
		return nil, err
	}

	textGenerator, err := newTextGenerator(config, logger)
	if err != nil {
		return nil, err
	}

	return &Planner{
		DB:        db,
		Materials: materials,
		History:   history,
		Practices: practiceService,
		Analytics: analytics.NewMockProvider(),
		Generator: textGenerator,
		config:    config,
		log:       logger,
	}, nil
}

func newPracticeService(config *helper.PlannerConfiguration, logger *slog.Logger) (*practices.Service, error) {
	ttl := time.Duration(config.Practices.CacheTTLSecs) * time.Second

	if config.Practices.BaseURL == "" {
		return practices.NewService(nil, ttl, logger), nil
	}

	client, err := practices.NewContentClient(
		config.Practices.BaseURL,
		os.Getenv(config.Practices.APIKeyEnv),
		time.Duration(config.Practices.TimeoutSecs)*time.Second,
	)
	if err != nil {
		return nil, helper.NewError("create practices client", err)
	}

	return practices.NewService(client, ttl, logger), nil
}

func newTextGenerator(config *helper.PlannerConfiguration, logger *slog.Logger) (generator.TextGenerator, error) {
	apiKey := os.Getenv(config.Generator.APIKeyEnv)
	if apiKey == "" {
		logger.Warn("No generator api key configured, using mock generator",
			slog.String("provider", config.Generator.Provider),
			slog.String("env", config.Generator.APIKeyEnv),
		)
		return generator.NewMockGenerator(), nil
	}

	switch config.Generator.Provider {
	case "anthropic":
		return generator.NewAnthropicGenerator(apiKey, config.Generator.Model)
	case "openai", "":
		return generator.NewOpenAIGenerator(apiKey, config.Generator.BaseURL, config.Generator.Model)
	case "mock":
		return generator.NewMockGenerator(), nil
	default:
		return nil, helper.NewError("create generator", fmt.Errorf("unknown provider %q", config.Generator.Provider))
	}
}

// Close closes the database connection
func (p *Planner) Close() error {
	if p.DB != nil && p.DB.Instance != nil {
		return p.DB.Instance.Close()
	}
	return nil
}

// SetPipeline sets the chunking and embedding pipeline for material processing
func (p *Planner) SetPipeline(pl *pipeline.Pipeline) {
	p.Pipeline = pl
}

// UseDefaultPipeline sets up section chunking with the local hugot embedder
// (all-MiniLM-L6-v2, 384 dimensions)
func (p *Planner) UseDefaultPipeline() error {
	embedder, err := pipeline.DefaultEmbedder()
	if err != nil {
		return helper.NewError("create default embedder", err)
	}

	p.Pipeline = pipeline.NewPipeline(pipeline.SectionChunker(), embedder)
	return nil
}

// ProcessAndInsertMaterial processes a material by:
// 1. Inserting the material metadata (without content)
// 2. Processing the content into embedded chunks using the pipeline
// 3. Inserting all chunks with the material ID
// Returns the number of chunks inserted and any error encountered.
func (p *Planner) ProcessAndInsertMaterial(material *model.Material) (int, error) {
	if p.Pipeline == nil {
		return 0, helper.NewError("process material", fmt.Errorf("pipeline not set, use SetPipeline() first"))
	}
	if material.Content == "" {
		return 0, helper.NewError("process material", fmt.Errorf("material content is empty"))
	}

	// Store content temporarily and clear it before DB insert
	content := material.Content
	material.Content = ""

	if err := p.Materials.InsertMaterial(material); err != nil {
		return 0, helper.NewError("insert material", err)
	}

	p.log.Info("Inserted material", slog.String("material_id", material.RID.String()), slog.String("title", material.Title))

	chunks, err := p.Pipeline.Process(content)
	if err != nil {
		return 0, helper.NewError("process chunks", err)
	}

	p.log.Info("Processed material into chunks", slog.Int("num_chunks", len(chunks)), slog.String("material_id", material.RID.String()))

	for i, chunk := range chunks {
		chunk.MaterialID = material.ID
		if err := p.Materials.InsertChunk(chunk); err != nil {
			return i, helper.NewError(fmt.Sprintf("insert chunk %d", i), err)
		}
	}

	return len(chunks), nil
}

// HybridSearch retrieves material fragments for a query using the vector and
// keyword backends fused with the configured strategy
func (p *Planner) HybridSearch(ctx context.Context, query string, fusionConfig model.FusionConfig) ([]*model.Fragment, error) {
	retriever, err := p.hybridRetriever(fusionConfig)
	if err != nil {
		return nil, err
	}

	topK := fusionConfig.TopK
	if topK <= 0 {
		topK = model.DefaultFusionConfig().TopK
	}

	return retriever.Search(ctx, query, topK)
}

// hybridRetriever assembles a hybrid retriever for one fusion config.
// An empty strategy falls back to the planner configuration.
func (p *Planner) hybridRetriever(fusionConfig model.FusionConfig) (*retrieval.HybridRetriever, error) {
	if p.Pipeline == nil || p.Pipeline.Embedder == nil {
		return nil, helper.NewError("hybrid search", fmt.Errorf("pipeline with embedder not set, use SetPipeline() first"))
	}

	vector, err := retrieval.NewVectorRetriever(p.Materials, p.Pipeline.Embedder, 0)
	if err != nil {
		return nil, helper.NewError("create vector retriever", err)
	}

	keyword, err := retrieval.NewKeywordRetriever(p.Materials)
	if err != nil {
		return nil, helper.NewError("create keyword retriever", err)
	}

	return retrieval.NewHybridRetriever(vector, keyword, fusionConfig, p.log)
}

// FusionConfig returns the fusion defaults from the planner configuration
func (p *Planner) FusionConfig() model.FusionConfig {
	return model.FusionConfig{
		Strategy:        model.FusionStrategy(p.config.Fusion.Strategy),
		PrimaryWeight:   p.config.Fusion.PrimaryWeight,
		SecondaryWeight: p.config.Fusion.SecondaryWeight,
		TopK:            p.config.Fusion.TopK,
		DedupThreshold:  p.config.Fusion.DedupThreshold,
	}
}

// GetTeachingPractices returns practice content for a query, cached per
// structurally identical query
func (p *Planner) GetTeachingPractices(ctx context.Context, query *model.PracticeQuery) (*model.PracticeResponse, error) {
	return p.Practices.GetPractices(ctx, query)
}

// PracticeCacheStats reports the practice cache contents
func (p *Planner) PracticeCacheStats() cache.Stats {
	return p.Practices.CacheStats()
}

// ClearPracticeCache drops all cached practice responses
func (p *Planner) ClearPracticeCache() {
	p.Practices.ClearCache()
}

// GenerateLessonPlan produces a lesson plan for a request. It retrieves
// reference material, teaching practices and class analytics, renders the
// generation prompt and stores the result in the lesson history when a
// user id is set.
func (p *Planner) GenerateLessonPlan(ctx context.Context, request *model.LessonRequest) (*model.LessonPlan, error) {
	if request == nil {
		return nil, helper.NewError("generate lesson plan", fmt.Errorf("request is nil"))
	}
	if request.Topic == "" {
		return nil, helper.NewError("generate lesson plan", fmt.Errorf("request topic is empty"))
	}

	fusionConfig := request.Fusion
	if fusionConfig.Strategy == "" {
		fusionConfig = p.FusionConfig()
	}

	searchQuery := fmt.Sprintf("%s %s", request.Subject, request.Topic)
	fragments, err := p.HybridSearch(ctx, searchQuery, fusionConfig)
	if err != nil {
		p.log.Warn("Reference retrieval failed, generating without references", slog.Any("error", err))
		fragments = nil
	}

	practiceResponse, err := p.Practices.GetPractices(ctx, &model.PracticeQuery{
		Subject: request.Subject,
		Grade:   request.Grade,
	})
	if err != nil {
		p.log.Warn("Practice lookup failed, generating without practices", slog.Any("error", err))
		practiceResponse = nil
	}

	input := generator.PromptInput{
		Request:   request,
		Fragments: fragments,
		Practices: practiceResponse,
	}

	if request.UserID != "" {
		summary, err := p.Analytics.GetStudentSummary(ctx, request.UserID, request.Subject)
		if err != nil {
			p.log.Warn("Analytics lookup failed", slog.Any("error", err))
		} else {
			input.Summary = summary
		}
	}

	if request.UseMemory && request.UserID != "" {
		history, err := p.History.SelectSimilarLessonRecords(request.UserID, string(request.Subject), request.Grade, 5)
		if err != nil {
			p.log.Warn("History lookup failed", slog.Any("error", err))
		} else {
			input.History = history
		}

		preferences, err := p.History.SelectPreferences(request.UserID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			p.log.Warn("Preferences lookup failed", slog.Any("error", err))
		} else if err == nil {
			input.Preferences = preferences
		}
	}

	prompt, err := generator.BuildLessonPrompt(input)
	if err != nil {
		return nil, helper.NewError("build lesson prompt", err)
	}

	content, err := p.Generator.Generate(ctx, generator.SystemPrompt, prompt)
	if err != nil {
		return nil, helper.NewError("generate lesson plan", err)
	}

	plan := &model.LessonPlan{
		RID:             uuid.New(),
		Subject:         request.Subject,
		Grade:           request.Grade,
		Topic:           request.Topic,
		DurationMinutes: request.DurationMinutes,
		Content:         content,
		Sources:         fragments,
		Model:           p.Generator.Model(),
		GeneratedAt:     time.Now(),
	}

	if request.UserID != "" {
		record := &model.LessonRecord{
			UserID:  request.UserID,
			Subject: string(request.Subject),
			Grade:   request.Grade,
			Topic:   request.Topic,
			Content: content,
			Metadata: model.Metadata{
				"model":            plan.Model,
				"duration_minutes": request.DurationMinutes,
			},
		}
		if err := p.History.InsertLessonRecord(record); err != nil {
			p.log.Warn("Failed to store lesson record", slog.Any("error", err))
		} else {
			plan.RID = record.RID
		}
	}

	p.log.Info("Generated lesson plan",
		slog.String("topic", request.Topic),
		slog.String("model", plan.Model),
		slog.Int("num_sources", len(fragments)),
	)

	return plan, nil
}

// SavePreferences stores per-user lesson generation preferences
func (p *Planner) SavePreferences(preferences *model.Preferences) error {
	return p.History.UpsertPreferences(preferences)
}

// RecentLessons returns a user's newest generated lessons
func (p *Planner) RecentLessons(userID string, limit int) ([]*model.LessonRecord, error) {
	return p.History.SelectRecentLessonRecords(userID, limit)
}
