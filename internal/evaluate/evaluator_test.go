package evaluate

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ShayCichocki/orbit/internal/catalog"
	"github.com/ShayCichocki/orbit/internal/match"
	"github.com/ShayCichocki/orbit/internal/score"
	"github.com/ShayCichocki/orbit/internal/selector"
	"github.com/ShayCichocki/orbit/pkg/models"
)

type memStore struct {
	orbs []models.Orb
}

func (s *memStore) Load(ctx context.Context) ([]models.Orb, error) { return s.orbs, nil }
func (s *memStore) Path() string                                   { return "mem" }

func testEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	orbs := []models.Orb{
		{
			ID:       "orb-container-scan",
			Title:    "Container Vulnerability Scanning",
			Category: "security-audit",
			Keywords: []string{"scan", "container", "vulnerability"},
		},
		{
			ID:       "orb-k8s-pod-deploy",
			Title:    "Kubernetes Pod Deployment",
			Category: "kubernetes-operations",
			Keywords: []string{"deploy", "pod", "kubernetes"},
		},
	}
	lib := catalog.NewLibrary(&memStore{orbs: orbs}, nil)
	if err := lib.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	matcher := match.NewMatcher(lib, match.DefaultWeights)
	scorer := score.NewScorer(matcher, score.DefaultConfig())
	return NewEvaluator(scorer, selector.NewCategorySelector(), 0)
}

func TestEvaluateBatch_PartitionInvariant(t *testing.T) {
	e := testEvaluator(t)
	tasks := []models.Task{
		{ID: "t1", Description: "scan container images for vulnerabilities"},
		{ID: "t2", Description: "random task that shouldn't match anything"},
		{ID: "t3", Description: "deploy a kubernetes pod"},
	}

	resp := e.EvaluateBatch(tasks)

	inAuto := make(map[string]bool)
	for _, id := range resp.Automatable {
		inAuto[id] = true
	}
	inNon := make(map[string]bool)
	for _, id := range resp.NonAutomatable {
		inNon[id] = true
	}

	for _, task := range tasks {
		if inAuto[task.ID] == inNon[task.ID] {
			t.Errorf("task %s must appear in exactly one partition (auto=%v non=%v)",
				task.ID, inAuto[task.ID], inNon[task.ID])
		}
		if _, ok := resp.ScoreMap[task.ID]; !ok {
			t.Errorf("task %s missing from score_map", task.ID)
		}
		if _, ok := resp.Suggestions[task.ID]; !ok {
			t.Errorf("task %s missing from suggestions", task.ID)
		}
	}
	if len(resp.Errors) != 0 {
		t.Errorf("errors = %v, want none", resp.Errors)
	}
}

func TestEvaluateBatch_Scenario(t *testing.T) {
	e := testEvaluator(t)

	resp := e.EvaluateBatch([]models.Task{
		{ID: "t1", Description: "scan container images for vulnerabilities"},
	})

	if len(resp.Automatable) != 1 || resp.Automatable[0] != "t1" {
		t.Errorf("Automatable = %v, want [t1]", resp.Automatable)
	}
	if resp.Suggestions["t1"] != models.CategorySecurity {
		t.Errorf("suggestion = %q, want security-audit", resp.Suggestions["t1"])
	}
}

func TestEvaluateBatch_MalformedTaskIsIsolated(t *testing.T) {
	e := testEvaluator(t)
	tasks := []models.Task{
		{ID: "t1", Description: "scan container images for vulnerabilities"},
		{ID: "t2", Description: ""},
		{ID: "t3", Description: "deploy a kubernetes pod"},
	}

	resp := e.EvaluateBatch(tasks)

	if len(resp.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly 1 entry", resp.Errors)
	}
	if resp.Errors[0].TaskID != "t2" {
		t.Errorf("error task id = %q, want t2", resp.Errors[0].TaskID)
	}

	evaluated := len(resp.Automatable) + len(resp.NonAutomatable)
	if evaluated != 2 {
		t.Errorf("automatable+non_automatable = %d ids, want 2", evaluated)
	}
	if _, ok := resp.ScoreMap["t2"]; ok {
		t.Error("malformed task must not appear in score_map")
	}
	if _, ok := resp.Suggestions["t2"]; ok {
		t.Error("malformed task must not appear in suggestions")
	}
}

func TestEvaluateBatch_Idempotent(t *testing.T) {
	e := testEvaluator(t)
	tasks := []models.Task{
		{ID: "t1", Description: "scan container images for vulnerabilities"},
		{ID: "t2", Description: "rotate TLS certs"},
		{ID: "t3", Description: "water the office plants"},
	}

	first := e.EvaluateBatch(tasks)
	second := e.EvaluateBatch(tasks)

	if !reflect.DeepEqual(first.ScoreMap, second.ScoreMap) {
		t.Errorf("score_map changed between runs: %v vs %v", first.ScoreMap, second.ScoreMap)
	}
	if !reflect.DeepEqual(first.Suggestions, second.Suggestions) {
		t.Errorf("suggestions changed between runs: %v vs %v", first.Suggestions, second.Suggestions)
	}
}

func TestEvaluateBatch_OrderIndependent(t *testing.T) {
	e := testEvaluator(t)
	forward := []models.Task{
		{ID: "t1", Description: "scan container images for vulnerabilities"},
		{ID: "t2", Description: "deploy a kubernetes pod"},
	}
	reversed := []models.Task{forward[1], forward[0]}

	a := e.EvaluateBatch(forward)
	b := e.EvaluateBatch(reversed)

	if !reflect.DeepEqual(a.ScoreMap, b.ScoreMap) {
		t.Errorf("batch order changed scores: %v vs %v", a.ScoreMap, b.ScoreMap)
	}
	if !reflect.DeepEqual(a.Suggestions, b.Suggestions) {
		t.Errorf("batch order changed suggestions: %v vs %v", a.Suggestions, b.Suggestions)
	}
}

func TestEvaluateBatch_EmptyBatch(t *testing.T) {
	e := testEvaluator(t)
	resp := e.EvaluateBatch(nil)

	if len(resp.Automatable) != 0 || len(resp.NonAutomatable) != 0 || len(resp.Errors) != 0 {
		t.Errorf("empty batch produced non-empty response: %+v", resp)
	}
	if resp.ScoreMap == nil || resp.Suggestions == nil {
		t.Error("maps must be allocated even for an empty batch")
	}
}

func TestEvaluateBatch_ScoringPanicIsContained(t *testing.T) {
	// A scorer over a nil matcher panics on use; the evaluator must
	// contain it and report the task non-automatable.
	scorer := score.NewScorer(nil, score.DefaultConfig())
	e := NewEvaluator(scorer, selector.NewCategorySelector(), 1)

	resp := e.EvaluateBatch([]models.Task{
		{ID: "t1", Description: "deploy a kubernetes pod"},
	})

	if len(resp.NonAutomatable) != 1 || resp.NonAutomatable[0] != "t1" {
		t.Fatalf("NonAutomatable = %v, want [t1]", resp.NonAutomatable)
	}
	if resp.ScoreMap["t1"] != 0 {
		t.Errorf("score = %v, want 0 for a failed evaluation", resp.ScoreMap["t1"])
	}
	if resp.Suggestions["t1"] != models.CategoryGeneral {
		t.Errorf("suggestion = %q, want general fallback", resp.Suggestions["t1"])
	}
}

func TestEvaluateSingle(t *testing.T) {
	e := testEvaluator(t)

	result, err := e.EvaluateSingle(models.Task{ID: "t1", Description: "scan container images for vulnerabilities"})
	if err != nil {
		t.Fatalf("EvaluateSingle() error = %v", err)
	}
	if !result.Automatable {
		t.Errorf("Automatable = false, want true (score %v)", result.Score)
	}
	if result.Category != models.CategorySecurity {
		t.Errorf("Category = %q, want security-audit", result.Category)
	}
	if result.BestOrbMatch == nil || result.BestOrbMatch.Orb.Title != "Container Vulnerability Scanning" {
		t.Errorf("BestOrbMatch = %+v, want Container Vulnerability Scanning", result.BestOrbMatch)
	}
}

func TestEvaluateSingle_Validation(t *testing.T) {
	e := testEvaluator(t)

	tests := []struct {
		name string
		task models.Task
		want error
	}{
		{"missing id", models.Task{Description: "deploy"}, models.ErrMissingTaskID},
		{"missing description", models.Task{ID: "t1"}, models.ErrMissingDescription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.EvaluateSingle(tt.task)
			if err == nil {
				t.Fatal("EvaluateSingle() error = nil, want validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want wrapped %v", err, tt.want)
			}
		})
	}
}

func TestEvaluateBatch_LargeBatchParallel(t *testing.T) {
	e := testEvaluator(t)

	var tasks []models.Task
	for i := 0; i < 100; i++ {
		desc := "deploy a kubernetes pod"
		if i%2 == 1 {
			desc = "random task that shouldn't match anything"
		}
		tasks = append(tasks, models.Task{ID: string(rune('a'+i%26)) + "-" + string(rune('0'+i%10)), Description: desc})
	}

	resp := e.EvaluateBatch(tasks)

	// Duplicate ids collapse in the maps but every evaluated id lands
	// in a partition slot.
	if len(resp.Automatable)+len(resp.NonAutomatable) != len(tasks) {
		t.Errorf("partitions hold %d ids, want %d", len(resp.Automatable)+len(resp.NonAutomatable), len(tasks))
	}
	for _, id := range resp.Automatable {
		if resp.ScoreMap[id] < 0.5 {
			t.Errorf("automatable id %s has score %v below threshold", id, resp.ScoreMap[id])
		}
	}
}
