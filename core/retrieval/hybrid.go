package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/edukit/lessonforge/core/fusion"
	"github.com/edukit/lessonforge/model"
)

// HybridRetriever runs a vector and a keyword backend concurrently and fuses
// their results. A failed backend contributes an empty list instead of
// failing the whole search.
type HybridRetriever struct {
	primary   Retriever
	secondary Retriever
	fusion    *fusion.Engine
	config    model.FusionConfig
	log       *slog.Logger
}

// NewHybridRetriever creates a retriever that fuses the results of the
// primary (vector) and secondary (keyword) backends
func NewHybridRetriever(primary Retriever, secondary Retriever, config model.FusionConfig, logger *slog.Logger) (*HybridRetriever, error) {
	if primary == nil || secondary == nil {
		return nil, fmt.Errorf("primary and secondary retrievers are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &HybridRetriever{
		primary:   primary,
		secondary: secondary,
		fusion:    fusion.NewEngine(logger),
		config:    config,
		log:       logger,
	}, nil
}

// Search queries both backends concurrently and returns the fused result list.
// topK is the per-backend fetch limit, the fusion config controls the final
// result shaping.
func (r *HybridRetriever) Search(ctx context.Context, query string, topK int) ([]*model.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	var primaryResults, secondaryResults []*model.Fragment
	var primaryErr, secondaryErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		primaryResults, primaryErr = r.primary.Search(ctx, query, topK)
	}()
	go func() {
		defer wg.Done()
		secondaryResults, secondaryErr = r.secondary.Search(ctx, query, topK)
	}()
	wg.Wait()

	if primaryErr != nil {
		r.log.Warn("Primary retrieval backend failed", slog.Any("error", primaryErr))
		primaryResults = []*model.Fragment{}
	}
	if secondaryErr != nil {
		r.log.Warn("Secondary retrieval backend failed", slog.Any("error", secondaryErr))
		secondaryResults = []*model.Fragment{}
	}

	return r.fusion.Fuse(primaryResults, secondaryResults, r.config), nil
}
