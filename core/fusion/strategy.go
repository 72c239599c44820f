package fusion

import (
	"sort"

	"github.com/edukit/lessonforge/model"
)

// rrfK is the reciprocal rank fusion smoothing constant, the established
// default from the RRF literature
const rrfK = 60

// Strategy fuses two ranked fragment lists into one
type Strategy interface {
	Fuse(primary []*model.Fragment, secondary []*model.Fragment, config *model.FusionConfig) ([]*model.Fragment, error)
}

// WeightedStrategy scales each fragment's score by its source weight,
// sorts by the weighted score and removes near-duplicates
type WeightedStrategy struct{}

// NewWeightedStrategy creates a new weighted fusion strategy
func NewWeightedStrategy() *WeightedStrategy {
	return &WeightedStrategy{}
}

// Fuse performs weighted fusion. Primary fragments are processed first, so
// on equal weighted scores they keep their position ahead of secondary ones.
func (s *WeightedStrategy) Fuse(primary []*model.Fragment, secondary []*model.Fragment, config *model.FusionConfig) ([]*model.Fragment, error) {
	combined := make([]*model.Fragment, 0, len(primary)+len(secondary))

	for _, fragment := range primary {
		weighted := fragment.Copy()
		weighted.WeightedScore = fragment.Score * config.PrimaryWeight
		combined = append(combined, weighted)
	}
	for _, fragment := range secondary {
		weighted := fragment.Copy()
		weighted.WeightedScore = fragment.Score * config.SecondaryWeight
		combined = append(combined, weighted)
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].WeightedScore > combined[j].WeightedScore
	})

	return Deduplicate(combined, config.DedupThreshold), nil
}

// RankStrategy performs reciprocal rank fusion. Each fragment contributes
// 1/(k+rank) from its 1-based position in its own source list. Fragments
// whose content prefix hashes collide are merged into the first
// representative, accumulating its score. The collision key is deliberately
// coarser than the word-overlap dedup used by the other strategies.
type RankStrategy struct{}

// NewRankStrategy creates a new reciprocal rank fusion strategy
func NewRankStrategy() *RankStrategy {
	return &RankStrategy{}
}

// Fuse performs reciprocal rank fusion over both lists
func (s *RankStrategy) Fuse(primary []*model.Fragment, secondary []*model.Fragment, config *model.FusionConfig) ([]*model.Fragment, error) {
	representatives := make(map[uint64]*model.Fragment)
	var order []uint64

	accumulate := func(list []*model.Fragment) {
		for rank, fragment := range list {
			key := contentPrefixHash(fragment.Content)
			rep, exists := representatives[key]
			if !exists {
				rep = fragment.Copy()
				rep.RRFScore = 0
				representatives[key] = rep
				order = append(order, key)
			}
			rep.RRFScore += 1.0 / float64(rrfK+rank+1)
		}
	}

	accumulate(primary)
	accumulate(secondary)

	results := make([]*model.Fragment, 0, len(order))
	for _, key := range order {
		results = append(results, representatives[key])
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RRFScore > results[j].RRFScore
	})

	return results, nil
}

// SimilarityStrategy sorts the concatenated lists by the fragments' own
// unmodified scores. Cross-source scores are assumed comparable, a known
// limitation of this strategy.
type SimilarityStrategy struct{}

// NewSimilarityStrategy creates a new similarity fusion strategy
func NewSimilarityStrategy() *SimilarityStrategy {
	return &SimilarityStrategy{}
}

// Fuse sorts by raw score and removes near-duplicates
func (s *SimilarityStrategy) Fuse(primary []*model.Fragment, secondary []*model.Fragment, config *model.FusionConfig) ([]*model.Fragment, error) {
	combined := make([]*model.Fragment, 0, len(primary)+len(secondary))
	combined = append(combined, primary...)
	combined = append(combined, secondary...)

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Score > combined[j].Score
	})

	return Deduplicate(combined, config.DedupThreshold), nil
}

// SimpleStrategy concatenates primary then secondary and truncates to TopK.
// No sorting, no deduplication. This is the safe fallback when another
// strategy fails, so it must never fail itself.
type SimpleStrategy struct{}

// NewSimpleStrategy creates a new simple merge strategy
func NewSimpleStrategy() *SimpleStrategy {
	return &SimpleStrategy{}
}

// Fuse concatenates and truncates
func (s *SimpleStrategy) Fuse(primary []*model.Fragment, secondary []*model.Fragment, config *model.FusionConfig) ([]*model.Fragment, error) {
	combined := make([]*model.Fragment, 0, len(primary)+len(secondary))
	combined = append(combined, primary...)
	combined = append(combined, secondary...)

	if config.TopK > 0 && len(combined) > config.TopK {
		combined = combined[:config.TopK]
	}

	return combined, nil
}
