package fusion

import (
	"fmt"
	"log/slog"

	"github.com/edukit/lessonforge/model"
)

// Engine combines two ranked lists of scored fragments from independent
// retrieval backends into one ordered, deduplicated list. It holds no
// mutable state, a single Engine may be used from multiple goroutines.
type Engine struct {
	log *slog.Logger
}

// NewEngine creates a new fusion engine
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{log: logger}
}

// Fuse merges the primary and secondary result lists using the strategy
// selected in the config. Any failure inside a named strategy is recovered
// and the engine falls back to a simple merge of the original inputs, so
// Fuse never fails and never panics.
func (e *Engine) Fuse(primary []*model.Fragment, secondary []*model.Fragment, config model.FusionConfig) []*model.Fragment {
	results, err := e.tryFuse(primary, secondary, &config)
	if err != nil {
		e.log.Warn("Fusion strategy failed, falling back to simple merge",
			slog.String("strategy", string(config.Strategy)),
			slog.Any("error", err),
		)
		results, _ = NewSimpleStrategy().Fuse(primary, secondary, &config)
	}
	return results
}

func (e *Engine) tryFuse(primary []*model.Fragment, secondary []*model.Fragment, config *model.FusionConfig) (results []*model.Fragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fusion strategy panic: %v", r)
		}
	}()

	return e.strategyFor(config.Strategy).Fuse(primary, secondary, config)
}

// strategyFor selects the strategy implementation. Unrecognized names fall
// through to the simple merge.
func (e *Engine) strategyFor(strategy model.FusionStrategy) Strategy {
	switch strategy {
	case model.FusionWeighted:
		return NewWeightedStrategy()
	case model.FusionRank:
		return NewRankStrategy()
	case model.FusionSimilarity:
		return NewSimilarityStrategy()
	default:
		return NewSimpleStrategy()
	}
}
