package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ShayCichocki/orbit/internal/catalog"
	"github.com/ShayCichocki/orbit/internal/evaluate"
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

func testServer(t *testing.T) *Server {
	t.Helper()
	orbs := []models.Orb{
		{
			ID:       "orb-container-scan",
			Title:    "Container Vulnerability Scanning",
			Category: "security-audit",
			Keywords: []string{"scan", "container", "vulnerability"},
		},
	}
	lib := catalog.NewLibrary(&memStore{orbs: orbs}, nil)
	if err := lib.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	matcher := match.NewMatcher(lib, match.DefaultWeights)
	scorer := score.NewScorer(matcher, score.DefaultConfig())
	evaluator := evaluate.NewEvaluator(scorer, selector.NewCategorySelector(), 0)
	return New(evaluator, matcher, lib, 0)
}

func TestHandleEvaluate(t *testing.T) {
	srv := testServer(t)

	body := `{"tasks":[
		{"task_id":"t1","task_description":"scan container images for vulnerabilities"},
		{"task_id":"t2","task_description":""},
		{"task_id":"t3","task_description":"random task that shouldn't match anything"}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/evaluate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}

	var resp models.EvaluationResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp.Errors) != 1 {
		t.Errorf("errors = %v, want 1 entry for the empty description", resp.Errors)
	}
	if len(resp.Automatable)+len(resp.NonAutomatable) != 2 {
		t.Errorf("partitions hold %d ids, want 2", len(resp.Automatable)+len(resp.NonAutomatable))
	}
	if _, ok := resp.ScoreMap["t1"]; !ok {
		t.Error("t1 missing from score_map")
	}
}

func TestHandleEvaluate_BadJSON(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/evaluate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleEvaluate_MethodNotAllowed(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/evaluate", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleEvaluateSingle(t *testing.T) {
	srv := testServer(t)

	body := `{"task_id":"t1","task_description":"scan container images for vulnerabilities"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/evaluate/single", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp models.SingleEvaluation
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Automatable {
		t.Errorf("automatable = false, want true (score %v)", resp.Score)
	}
	if resp.Category != models.CategorySecurity {
		t.Errorf("category = %q, want security-audit", resp.Category)
	}
	if resp.BestOrbMatch == nil || resp.BestOrbMatch.Orb.Title != "Container Vulnerability Scanning" {
		t.Errorf("best_orb_match = %+v, want the scanning orb", resp.BestOrbMatch)
	}
}

func TestHandleEvaluateSingle_ValidationError(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/evaluate/single", strings.NewReader(`{"task_id":"t1"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleSearch(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/orbs/search?q=scan+container", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp searchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Orb.ID != "orb-container-scan" {
		t.Errorf("results = %+v, want the scanning orb", resp.Results)
	}
}

func TestHandleSearch_MissingQuery(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/orbs/search", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleStats(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/library/stats", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var stats models.LibraryStats
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stats.TotalOrbs != 1 {
		t.Errorf("total_orbs = %d, want 1", stats.TotalOrbs)
	}
	if stats.Categories["security-audit"] != 1 {
		t.Errorf("categories = %v, want security-audit: 1", stats.Categories)
	}
}

func TestHandleReload(t *testing.T) {
	srv := testServer(t)

	before := srv.library.Snapshot()
	req := httptest.NewRequest(http.MethodPost, "/v1/library/reload", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	after := srv.library.Snapshot()
	if after == before {
		t.Error("reload did not publish a fresh snapshot")
	}
	if after.Version != before.Version+1 {
		t.Errorf("version = %d, want %d", after.Version, before.Version+1)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s, want ok status", rec.Body.String())
	}
}
