// Package server exposes the evaluation engine over a thin JSON shim.
// The engine itself owns no network protocol; every handler decodes a
// request, calls into the in-memory core, and encodes the result.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ShayCichocki/orbit/internal/catalog"
	"github.com/ShayCichocki/orbit/internal/evaluate"
	"github.com/ShayCichocki/orbit/internal/match"
	"github.com/ShayCichocki/orbit/pkg/models"
)

// Server wraps the HTTP shim over the evaluation core.
type Server struct {
	mux            *http.ServeMux
	evaluator      *evaluate.Evaluator
	matcher        *match.Matcher
	library        *catalog.Library
	requestTimeout time.Duration
}

// New creates the shim over an already loaded library.
func New(evaluator *evaluate.Evaluator, matcher *match.Matcher, library *catalog.Library, requestTimeout time.Duration) *Server {
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	s := &Server{
		mux:            http.NewServeMux(),
		evaluator:      evaluator,
		matcher:        matcher,
		library:        library,
		requestTimeout: requestTimeout,
	}

	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/v1/evaluate", s.handleEvaluate)
	s.mux.HandleFunc("/v1/evaluate/single", s.handleEvaluateSingle)
	s.mux.HandleFunc("/v1/orbs/search", s.handleSearch)
	s.mux.HandleFunc("/v1/library/stats", s.handleStats)
	s.mux.HandleFunc("/v1/library/reload", s.handleReload)

	return s
}

// Handler returns the root handler with request-id tagging.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)
		start := time.Now()
		s.mux.ServeHTTP(w, r)
		log.Printf("%s %s request_id=%s duration=%s", r.Method, r.URL.Path, requestID, time.Since(start))
	})
}

// Start runs the HTTP server on addr. Request-level timeouts live here;
// the core has no blocking steps of its own.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.requestTimeout,
		WriteTimeout: s.requestTimeout,
	}
	log.Printf("orbit evaluation shim listening on %s", addr)
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := map[string]interface{}{
		"status":     "ok",
		"total_orbs": s.library.Stats().TotalOrbs,
	}
	writeJSON(w, http.StatusOK, status)
}

type evaluateRequest struct {
	Tasks []models.Task `json:"tasks"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	resp := s.evaluator.EvaluateBatch(req.Tasks)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEvaluateSingle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	result, err := s.evaluator.EvaluateSingle(task)
	if err != nil {
		var verr *evaluate.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "evaluation failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type searchResponse struct {
	Query   string               `json:"query"`
	Results []models.MatchResult `json:"results"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "missing query parameter q", http.StatusBadRequest)
		return
	}

	results := s.matcher.Search(query)
	if results == nil {
		results = []models.MatchResult{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: query, Results: results})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, s.library.Stats())
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	if err := s.library.Reload(ctx); err != nil {
		// The previous snapshot stays in service.
		log.Printf("catalog reload failed: %v", err)
		http.Error(w, "catalog reload failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, s.library.Stats())
}

// writeJSON encodes v as the JSON response body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}
