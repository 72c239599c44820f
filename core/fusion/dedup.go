package fusion

import (
	"hash/fnv"
	"strings"

	"github.com/edukit/lessonforge/model"
)

// contentPrefixLen is the number of leading characters used for the rank
// fusion collision key
const contentPrefixLen = 100

// Deduplicate walks the sorted candidate list in order, keeping the first
// candidate unconditionally and dropping every later candidate whose word-set
// Jaccard similarity against any already-accepted fragment exceeds the
// threshold. Fragments with an empty word set are never considered
// duplicates. O(n²) in the candidate count, acceptable for the tens of
// fragments retrieval returns.
func Deduplicate(candidates []*model.Fragment, threshold float64) []*model.Fragment {
	if len(candidates) == 0 {
		return []*model.Fragment{}
	}

	accepted := []*model.Fragment{candidates[0]}

	for _, candidate := range candidates[1:] {
		candidateWords := wordSet(candidate.Content)

		isDuplicate := false
		for _, existing := range accepted {
			if jaccard(candidateWords, wordSet(existing.Content)) > threshold {
				isDuplicate = true
				break
			}
		}

		if !isDuplicate {
			accepted = append(accepted, candidate)
		}
	}

	return accepted
}

// wordSet tokenizes content into a case-insensitive, whitespace-split word set
func wordSet(content string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(content))
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}

// jaccard computes |intersection| / |union| of two word sets. An empty set
// on either side is treated as non-matching.
func jaccard(a map[string]struct{}, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for word := range a {
		if _, ok := b[word]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection

	return float64(intersection) / float64(union)
}

// contentPrefixHash returns a deterministic FNV-1a hash over the first
// contentPrefixLen characters of the content. A fixed hash keeps rank fusion
// grouping stable across process runs, unlike a runtime's default map hash.
func contentPrefixHash(content string) uint64 {
	runes := []rune(content)
	if len(runes) > contentPrefixLen {
		runes = runes[:contentPrefixLen]
	}

	h := fnv.New64a()
	h.Write([]byte(string(runes)))
	return h.Sum64()
}
