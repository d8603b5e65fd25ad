// Package score computes the automatability verdict for a single task.
package score

import (
	"fmt"
	"strings"

	"github.com/ShayCichocki/orbit/internal/catalog"
	"github.com/ShayCichocki/orbit/internal/match"
	"github.com/ShayCichocki/orbit/pkg/models"
)

// actionVerbs are words that indicate directly executable work.
var actionVerbs = []string{
	"deploy",
	"provision",
	"scan",
	"rotate",
	"backup",
	"restart",
	"upgrade",
	"patch",
	"install",
}

// vagueWords are filler words that mark an under-specified description.
var vagueWords = []string{
	"something",
	"stuff",
	"things",
	"whatever",
	"anything",
	"somehow",
}

// Signal mix: verbs and orb match dominate, specificity breaks close calls.
const (
	verbWeight        = 0.4
	matchWeight       = 0.4
	specificityWeight = 0.2
)

// Token counts bounding the specificity ramp.
const (
	minSpecificTokens  = 3
	fullSpecificTokens = 8
)

// Config holds the scorer thresholds.
type Config struct {
	// AutomatableThreshold is the combined score at or above which a
	// task is flagged automatable.
	AutomatableThreshold float64
	// MatchCap is the orb-match score that saturates the match signal.
	MatchCap float64
	// MatchThreshold is the orb-match score above which the match is
	// considered a confident automation reference.
	MatchThreshold float64
}

// DefaultConfig returns the keyword-heuristic default thresholds.
func DefaultConfig() Config {
	return Config{
		AutomatableThreshold: 0.5,
		MatchCap:             6.0,
		MatchThreshold:       2.0,
	}
}

// Scorer combines verb presence, orb matching, and description
// specificity into one normalized automatability score.
//
// Scoring is deterministic and side-effect free: identical description
// and catalog snapshot always produce the identical score and flag,
// independent of batch order or concurrent calls.
type Scorer struct {
	matcher *match.Matcher
	cfg     Config
}

// NewScorer creates a scorer over the given matcher.
func NewScorer(matcher *match.Matcher, cfg Config) *Scorer {
	return &Scorer{matcher: matcher, cfg: cfg}
}

// Score evaluates one task and returns its verdict plus the best orb
// match, if any scored above zero.
func (s *Scorer) Score(task models.Task) (models.ScoreResult, *models.MatchResult) {
	normDesc := catalog.Normalize(task.Description)
	best := s.matcher.ScoreAgainst(task.Description)

	verbSignal, verb := verbSignal(normDesc)
	matchSignal := s.matchSignal(best)
	specSignal := specificitySignal(normDesc)

	combined := verbWeight*verbSignal + matchWeight*matchSignal + specificityWeight*specSignal
	combined = clamp01(combined)

	result := models.ScoreResult{
		TaskID:      task.ID,
		Score:       combined,
		Automatable: combined >= s.cfg.AutomatableThreshold,
		Rationale:   s.rationale(verb, best, specSignal, combined),
	}
	return result, best
}

// matchSignal maps the best orb score onto [0,1] linearly up to the cap.
// Linear mapping keeps the signal monotone in the orb-match score.
func (s *Scorer) matchSignal(best *models.MatchResult) float64 {
	if best == nil || s.cfg.MatchCap <= 0 {
		return 0
	}
	return clamp01(best.Score / s.cfg.MatchCap)
}

// verbSignal returns 1 and the matched verb when the description
// contains an actionable verb.
func verbSignal(normDesc string) (float64, string) {
	for _, verb := range actionVerbs {
		if strings.Contains(normDesc, verb) {
			return 1, verb
		}
	}
	return 0, ""
}

// specificitySignal penalizes very short or vague descriptions: 0 below
// three tokens, ramping linearly to 1 at eight, halved when a vague
// filler word appears.
func specificitySignal(normDesc string) float64 {
	tokens := strings.Fields(normDesc)
	n := len(tokens)

	var signal float64
	switch {
	case n < minSpecificTokens:
		signal = 0
	case n >= fullSpecificTokens:
		signal = 1
	default:
		signal = float64(n-minSpecificTokens+1) / float64(fullSpecificTokens-minSpecificTokens+1)
	}

	for _, token := range tokens {
		for _, vague := range vagueWords {
			if token == vague {
				return signal / 2
			}
		}
	}
	return signal
}

// rationale builds the human-readable explanation for a verdict.
func (s *Scorer) rationale(verb string, best *models.MatchResult, specSignal, combined float64) string {
	var parts []string

	if verb != "" {
		parts = append(parts, fmt.Sprintf("actionable verb %q", verb))
	} else {
		parts = append(parts, "no actionable verb")
	}

	switch {
	case best == nil:
		parts = append(parts, "no orb match")
	case best.Score > s.cfg.MatchThreshold:
		parts = append(parts, fmt.Sprintf("confident orb match %q (%.1f)", best.Orb.Title, best.Score))
	default:
		parts = append(parts, fmt.Sprintf("weak orb match %q (%.1f)", best.Orb.Title, best.Score))
	}

	if specSignal < 0.5 {
		parts = append(parts, "under-specified description")
	}

	verdict := "below"
	if combined >= s.cfg.AutomatableThreshold {
		verdict = "at or above"
	}
	parts = append(parts, fmt.Sprintf("score %.2f %s threshold %.2f", combined, verdict, s.cfg.AutomatableThreshold))
	return strings.Join(parts, "; ")
}

// clamp01 clamps v to the [0,1] interval.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
