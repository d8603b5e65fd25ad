package models

// ScoreResult holds the automatability verdict for a single task.
type ScoreResult struct {
	// TaskID is the id of the task this result belongs to.
	TaskID string `json:"task_id"`
	// Score is the normalized automatability confidence in [0,1].
	Score float64 `json:"score"`
	// Automatable is true when the score crosses the configured threshold.
	Automatable bool `json:"automatable"`
	// Rationale explains which signals produced the verdict.
	Rationale string `json:"rationale,omitempty"`
}

// MatchResult pairs an orb with its relevance score for one query.
type MatchResult struct {
	// Orb is the matched catalog entry.
	Orb Orb `json:"orb"`
	// Score is the weighted lexical match score (not normalized).
	Score float64 `json:"score"`
	// Category is the orb's category, surfaced for routing convenience.
	Category string `json:"category"`
}

// TaskError records one malformed task excluded from a batch.
type TaskError struct {
	// TaskID is the id of the offending task, if it had one.
	TaskID string `json:"task_id,omitempty"`
	// Reason describes why the task was rejected.
	Reason string `json:"reason"`
}

// EvaluationResponse is the aggregate result of one batch evaluation.
// Every syntactically valid input task id appears in exactly one of
// Automatable/NonAutomatable and has entries in both ScoreMap and
// Suggestions.
type EvaluationResponse struct {
	// Automatable lists ids of tasks a specialist agent can execute.
	Automatable []string `json:"automatable"`
	// NonAutomatable lists ids of tasks that need a human.
	NonAutomatable []string `json:"non_automatable"`
	// ScoreMap maps task id to its automatability score.
	ScoreMap map[string]float64 `json:"score_map"`
	// Suggestions maps task id to the suggested agent category.
	Suggestions map[string]Category `json:"suggestions"`
	// Errors lists malformed tasks excluded from the batch.
	Errors []TaskError `json:"errors"`
}

// SingleEvaluation is the single-task variant of an evaluation result.
type SingleEvaluation struct {
	// Category is the suggested agent category for the task.
	Category Category `json:"category"`
	// Score is the normalized automatability score.
	Score float64 `json:"score"`
	// Automatable is true when the task can be auto-executed.
	Automatable bool `json:"automatable"`
	// Rationale explains the verdict.
	Rationale string `json:"rationale,omitempty"`
	// BestOrbMatch is the top catalog match, if any scored above zero.
	BestOrbMatch *MatchResult `json:"best_orb_match,omitempty"`
}

// LibraryStats summarizes the loaded orb catalog.
type LibraryStats struct {
	// TotalOrbs is the count of successfully loaded orb records.
	TotalOrbs int `json:"total_orbs"`
	// CategoryCount is the number of distinct categories in the catalog.
	CategoryCount int `json:"category_count"`
	// Categories maps category name to the number of orbs in it.
	Categories map[string]int `json:"categories"`
}
