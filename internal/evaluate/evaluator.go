// Package evaluate orchestrates automatability scoring and category
// routing across task batches.
package evaluate

import (
	"fmt"
	"sync"

	"github.com/ShayCichocki/orbit/internal/score"
	"github.com/ShayCichocki/orbit/internal/selector"
	"github.com/ShayCichocki/orbit/pkg/models"
)

// defaultWorkers bounds per-batch scoring goroutines. Tasks share no
// state, so the pool exists only to cap goroutine count on huge batches.
const defaultWorkers = 8

// Evaluator applies the scorer and category selector to tasks and
// assembles batch responses.
type Evaluator struct {
	scorer   *score.Scorer
	selector *selector.CategorySelector
	workers  int
}

// NewEvaluator creates an evaluator. workers <= 0 uses the default pool size.
func NewEvaluator(scorer *score.Scorer, sel *selector.CategorySelector, workers int) *Evaluator {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Evaluator{scorer: scorer, selector: sel, workers: workers}
}

// taskVerdict is the per-task outcome gathered before assembly.
type taskVerdict struct {
	result   models.ScoreResult
	category models.Category
	best     *models.MatchResult
}

// EvaluateBatch evaluates each task independently and partitions ids by
// the automatable flag. Malformed tasks are excluded and recorded in
// Errors; one bad task never aborts the batch. Output ordering follows
// input ordering regardless of scoring concurrency.
func (e *Evaluator) EvaluateBatch(tasks []models.Task) models.EvaluationResponse {
	resp := models.EvaluationResponse{
		Automatable:    []string{},
		NonAutomatable: []string{},
		ScoreMap:       make(map[string]float64),
		Suggestions:    make(map[string]models.Category),
		Errors:         []models.TaskError{},
	}

	// Validate up front so worker slots go only to scorable tasks.
	valid := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if err := task.Validate(); err != nil {
			resp.Errors = append(resp.Errors, models.TaskError{
				TaskID: task.ID,
				Reason: (&ValidationError{TaskID: task.ID, Err: err}).Error(),
			})
			continue
		}
		valid = append(valid, task)
	}

	verdicts := make([]taskVerdict, len(valid))
	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup
	for i, task := range valid {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, task models.Task) {
			defer wg.Done()
			defer func() { <-sem }()
			verdicts[i] = e.evaluateTask(task)
		}(i, task)
	}
	wg.Wait()

	for _, v := range verdicts {
		if v.result.Automatable {
			resp.Automatable = append(resp.Automatable, v.result.TaskID)
		} else {
			resp.NonAutomatable = append(resp.NonAutomatable, v.result.TaskID)
		}
		resp.ScoreMap[v.result.TaskID] = v.result.Score
		resp.Suggestions[v.result.TaskID] = v.category
	}

	return resp
}

// EvaluateSingle is the single-task variant exposed to the simpler
// transport surface.
func (e *Evaluator) EvaluateSingle(task models.Task) (models.SingleEvaluation, error) {
	if err := task.Validate(); err != nil {
		return models.SingleEvaluation{}, &ValidationError{TaskID: task.ID, Err: err}
	}

	v := e.evaluateTask(task)
	return models.SingleEvaluation{
		Category:     v.category,
		Score:        v.result.Score,
		Automatable:  v.result.Automatable,
		Rationale:    v.result.Rationale,
		BestOrbMatch: v.best,
	}, nil
}

// evaluateTask scores and routes one task, converting any panic in
// scoring into a non-automatable verdict with a diagnostic rationale so
// a single failure never takes down a batch.
func (e *Evaluator) evaluateTask(task models.Task) (v taskVerdict) {
	defer func() {
		if r := recover(); r != nil {
			v = taskVerdict{
				result: models.ScoreResult{
					TaskID:      task.ID,
					Score:       0,
					Automatable: false,
					Rationale:   fmt.Sprintf("internal scoring failure: %v", r),
				},
				category: models.CategoryGeneral,
			}
		}
	}()

	result, best := e.scorer.Score(task)
	return taskVerdict{
		result:   result,
		category: e.selector.Select(task.Description),
		best:     best,
	}
}
