// Package match ranks orbs against free-text task descriptions.
//
// Matching is purely lexical: a weighted sum of title substring overlap,
// keyword token overlap, and category substring overlap. Rankings are
// deterministic for a given query and catalog snapshot, with catalog
// insertion order as the tie-break.
package match

import (
	"sort"
	"strings"

	"github.com/ShayCichocki/orbit/internal/catalog"
	"github.com/ShayCichocki/orbit/pkg/models"
)

// Weights holds the per-signal weights for match scoring.
type Weights struct {
	// Title is the weight of a title substring match.
	Title float64
	// Keyword is the weight of each overlapping keyword token.
	Keyword float64
	// Category is the weight of a category-name substring match.
	Category float64
}

// DefaultWeights are keyword-heuristic defaults; tune against a real
// task corpus before trusting them in anger.
var DefaultWeights = Weights{Title: 3.0, Keyword: 2.0, Category: 1.0}

// Matcher scores orbs from a library against queries.
type Matcher struct {
	library *catalog.Library
	weights Weights
}

// NewMatcher creates a matcher over the given library.
func NewMatcher(library *catalog.Library, weights Weights) *Matcher {
	return &Matcher{library: library, weights: weights}
}

// Search scores every orb in the current snapshot against the query and
// returns results with score > 0, descending by score. Ties keep catalog
// insertion order.
func (m *Matcher) Search(query string) []models.MatchResult {
	snap := m.library.Snapshot()
	if snap == nil {
		return nil
	}
	return m.searchSnapshot(snap, query)
}

// ScoreAgainst returns the single best match for a description, or nil
// when nothing in the catalog scores above zero.
func (m *Matcher) ScoreAgainst(description string) *models.MatchResult {
	snap := m.library.Snapshot()
	if snap == nil {
		return nil
	}

	results := m.searchSnapshot(snap, description)
	if len(results) == 0 {
		return nil
	}
	best := results[0]
	return &best
}

// searchSnapshot does the scoring work against one immutable snapshot so
// a search never straddles a catalog reload.
func (m *Matcher) searchSnapshot(snap *catalog.Snapshot, query string) []models.MatchResult {
	normQuery := catalog.Normalize(query)
	if normQuery == "" {
		return nil
	}

	// Keyword overlap via the inverted index: count distinct query
	// tokens that appear among each orb's keyword tokens.
	overlap := make(map[int]int)
	seen := make(map[string]bool)
	for _, token := range strings.Fields(normQuery) {
		if seen[token] {
			continue
		}
		seen[token] = true
		for _, pos := range snap.OrbsWithKeyword(token) {
			overlap[pos]++
		}
	}

	var results []models.MatchResult
	for pos, orb := range snap.Orbs {
		score := float64(overlap[pos]) * m.weights.Keyword

		if substringMatch(normQuery, catalog.Normalize(orb.Title)) {
			score += m.weights.Title
		}
		if substringMatch(normQuery, catalog.Normalize(orb.Category)) {
			score += m.weights.Category
		}

		if score > 0 {
			results = append(results, models.MatchResult{
				Orb:      orb,
				Score:    score,
				Category: orb.Category,
			})
		}
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// substringMatch reports whether either normalized string contains the
// other. Covers both short queries against long titles ("kubernetes" in
// "kubernetes pod deployment") and long descriptions naming a short
// title.
func substringMatch(query, target string) bool {
	if query == "" || target == "" {
		return false
	}
	return strings.Contains(target, query) || strings.Contains(query, target)
}
