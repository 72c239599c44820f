package model

// FusionStrategy selects how results from the two retrieval backends are combined
type FusionStrategy string

const (
	FusionWeighted   FusionStrategy = "weighted"
	FusionRank       FusionStrategy = "rank"
	FusionSimilarity FusionStrategy = "similarity"
	FusionSimple     FusionStrategy = "simple"
)

// FusionConfig represents configuration for one fusion call
type FusionConfig struct {
	Strategy FusionStrategy `json:"strategy"`

	// Weights applied by the weighted strategy. No normalization is
	// enforced, the caller is responsible for the sum.
	PrimaryWeight   float64 `json:"primary_weight"`
	SecondaryWeight float64 `json:"secondary_weight"`

	// TopK truncation is applied only by the simple strategy. The other
	// strategies return all distinct fragments, callers slice afterwards.
	TopK int `json:"top_k"`

	// DedupThreshold is the Jaccard word-set similarity above which a
	// candidate is dropped as a near-duplicate. Range [0,1].
	DedupThreshold float64 `json:"dedup_threshold"`
}

// DefaultFusionConfig returns a sensible default configuration
func DefaultFusionConfig() FusionConfig {
	return FusionConfig{
		Strategy:        FusionWeighted,
		PrimaryWeight:   0.6,
		SecondaryWeight: 0.4,
		TopK:            5,
		DedupThreshold:  0.8,
	}
}
