package practices

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/edukit/lessonforge/core/cache"
	"github.com/edukit/lessonforge/model"
)

// Service retrieves teaching practice content for structured queries.
// Responses are memoized in an expiring cache, and built-in defaults cover
// categories the content service cannot serve.
type Service struct {
	client *ContentClient
	cache  *cache.ExpiringCache[*model.PracticeResponse]
	log    *slog.Logger
}

// NewService creates a practice service. A nil client is allowed, the
// service then always answers from the built-in defaults.
func NewService(client *ContentClient, ttl time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		client: client,
		cache:  cache.New[*model.PracticeResponse](ttl, logger),
		log:    logger,
	}
}

// GetPractices returns the practice content for a query, from cache when a
// structurally identical query was answered within the TTL
func (s *Service) GetPractices(ctx context.Context, query *model.PracticeQuery) (*model.PracticeResponse, error) {
	if query == nil {
		defaultQuery := model.DefaultPracticeQuery()
		query = &defaultQuery
	}
	if query.Language == "" {
		query.Language = "en-US"
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	return s.cache.GetOrCompute(ctx, query, func(ctx context.Context) (*model.PracticeResponse, error) {
		return s.fetch(ctx, query)
	})
}

// ClearCache drops all cached responses
func (s *Service) ClearCache() {
	s.cache.InvalidateAll()
}

// CacheStats reports the current cache contents
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// fetch retrieves all four practice categories concurrently. A category
// whose fetch or parse fails falls back to the built-in defaults for that
// category, so fetch never returns an error.
func (s *Service) fetch(ctx context.Context, query *model.PracticeQuery) (*model.PracticeResponse, error) {
	if s.client == nil {
		s.log.Info("No content client configured, serving default practices")
		response := defaultResponse(query)
		response.GeneratedAt = time.Now()
		return response, nil
	}

	var wg sync.WaitGroup
	var strategies []model.TeachingStrategy
	var activities []model.ClassroomActivity
	var assessments []model.AssessmentMethod
	var guidelines []model.ManagementGuideline

	wg.Add(4)
	go func() {
		defer wg.Done()
		strategies = fetchCategory(ctx, s, CategoryStrategies, query, parseStrategies)
	}()
	go func() {
		defer wg.Done()
		activities = fetchCategory(ctx, s, CategoryActivities, query, parseActivities)
	}()
	go func() {
		defer wg.Done()
		assessments = fetchCategory(ctx, s, CategoryAssessments, query, parseAssessments)
	}()
	go func() {
		defer wg.Done()
		guidelines = fetchCategory(ctx, s, CategoryManagement, query, parseGuidelines)
	}()
	wg.Wait()

	fromDefaults := false
	if len(strategies) == 0 {
		strategies = defaultStrategies(query)
		fromDefaults = true
	}
	if len(activities) == 0 {
		activities = defaultActivities(query)
		fromDefaults = true
	}
	if len(assessments) == 0 {
		assessments = defaultAssessments(query)
		fromDefaults = true
	}
	if len(guidelines) == 0 {
		guidelines = defaultGuidelines(query)
		fromDefaults = true
	}

	return &model.PracticeResponse{
		Query:                *query,
		TeachingStrategies:   limitStrategies(strategies, query.Limit),
		ClassroomActivities:  limitActivities(activities, query.Limit),
		AssessmentMethods:    limitAssessments(assessments, query.Limit),
		ManagementGuidelines: limitGuidelines(guidelines, query.Limit),
		GeneratedAt:          time.Now(),
		FromDefaults:         fromDefaults,
	}, nil
}

func fetchCategory[T any](ctx context.Context, s *Service, category string, query *model.PracticeQuery, parse func([]byte) []T) []T {
	payload, err := s.client.FetchCategory(ctx, category, query)
	if err != nil {
		s.log.Warn("Practice category fetch failed, using defaults",
			slog.String("category", category),
			slog.Any("error", err),
		)
		return nil
	}

	return parse(payload)
}
