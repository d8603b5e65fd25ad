package main

import (
	"context"
	"fmt"

	"github.com/ShayCichocki/orbit/internal/catalog"
	"github.com/ShayCichocki/orbit/internal/config"
	"github.com/ShayCichocki/orbit/internal/evaluate"
	"github.com/ShayCichocki/orbit/internal/match"
	"github.com/ShayCichocki/orbit/internal/score"
	"github.com/ShayCichocki/orbit/internal/selector"
)

// engine bundles the wired evaluation core for CLI commands.
type engine struct {
	library   *catalog.Library
	matcher   *match.Matcher
	evaluator *evaluate.Evaluator

	closers []func() error
}

// buildEngine opens the configured catalog store, loads the library, and
// wires the matcher, scorer, selector, and evaluator.
func buildEngine(ctx context.Context, cfg *config.Config) (*engine, error) {
	e := &engine{}

	logger, err := catalog.NewDebugLogger(cfg.Catalog.LogPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog log: %w", err)
	}
	e.closers = append(e.closers, logger.Close)

	var store catalog.Store
	switch cfg.Catalog.Backend {
	case "", "yaml":
		store = catalog.NewYAMLStore(cfg.Catalog.Path)
	case "sqlite":
		sqlStore, err := catalog.NewSQLStore(cfg.Catalog.Path)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("open catalog database: %w", err)
		}
		if err := sqlStore.Migrate(); err != nil {
			sqlStore.Close()
			e.Close()
			return nil, fmt.Errorf("migrate catalog database: %w", err)
		}
		e.closers = append(e.closers, sqlStore.Close)
		store = sqlStore
	default:
		e.Close()
		return nil, fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
	}

	e.library = catalog.NewLibrary(store, logger)
	if err := e.library.Load(ctx); err != nil {
		e.Close()
		return nil, err
	}

	e.matcher = match.NewMatcher(e.library, match.Weights{
		Title:    cfg.Matcher.TitleWeight,
		Keyword:  cfg.Matcher.KeywordWeight,
		Category: cfg.Matcher.CategoryWeight,
	})

	scorer := score.NewScorer(e.matcher, score.Config{
		AutomatableThreshold: cfg.Scorer.AutomatableThreshold,
		MatchCap:             cfg.Scorer.MatchCap,
		MatchThreshold:       cfg.Scorer.MatchThreshold,
	})
	e.evaluator = evaluate.NewEvaluator(scorer, selector.NewCategorySelector(), cfg.Evaluator.Workers)

	return e, nil
}

// Close releases the engine's store and logger.
func (e *engine) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}
