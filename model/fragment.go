package model

// RetrievalSource identifies which backend produced a fragment
type RetrievalSource string

const (
	SourceVector  RetrievalSource = "vector"
	SourceKeyword RetrievalSource = "keyword"
)

// Fragment is a scored unit of retrieved teaching material content.
// Fragments are created fresh per retrieval call and treated as immutable
// by the fusion engine, which only mutates its own copies.
type Fragment struct {
	Content  string          `json:"content"`
	Metadata Metadata        `json:"metadata,omitempty"`
	Score    float64         `json:"score"`
	Source   RetrievalSource `json:"source"`
	// Derived scores attached by the fusion engine on copies
	WeightedScore float64 `json:"weighted_score,omitempty"`
	RRFScore      float64 `json:"rrf_score,omitempty"`
}

// Copy returns a copy of the fragment with its own metadata map,
// so derived scores can be attached without mutating the original.
func (f *Fragment) Copy() *Fragment {
	copied := *f
	copied.Metadata = f.Metadata.Copy()
	return &copied
}
