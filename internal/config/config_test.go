package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromPath(t *testing.T) {
	configYAML := `catalog:
  backend: sqlite
  path: /var/lib/orbit/orbs.db
  watch: true
scorer:
  automatable_threshold: 0.7
server:
  addr: 0.0.0.0:9000
  request_timeout: 5s
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.Catalog.Backend != "sqlite" {
		t.Errorf("Catalog.Backend = %q, want sqlite", cfg.Catalog.Backend)
	}
	if cfg.Catalog.Path != "/var/lib/orbit/orbs.db" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if !cfg.Catalog.Watch {
		t.Error("Catalog.Watch = false, want true")
	}
	if cfg.Scorer.AutomatableThreshold != 0.7 {
		t.Errorf("Scorer.AutomatableThreshold = %v, want 0.7", cfg.Scorer.AutomatableThreshold)
	}
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.RequestTimeout != 5*time.Second {
		t.Errorf("Server.RequestTimeout = %v, want 5s", cfg.Server.RequestTimeout)
	}
}

func TestLoadFromPath_DefaultsFillGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("catalog:\n  path: ./orbs.yaml\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.Catalog.Backend != "yaml" {
		t.Errorf("default Catalog.Backend = %q, want yaml", cfg.Catalog.Backend)
	}
	if cfg.Matcher.TitleWeight != 3.0 || cfg.Matcher.KeywordWeight != 2.0 || cfg.Matcher.CategoryWeight != 1.0 {
		t.Errorf("default weights = %v/%v/%v, want 3/2/1",
			cfg.Matcher.TitleWeight, cfg.Matcher.KeywordWeight, cfg.Matcher.CategoryWeight)
	}
	if cfg.Scorer.AutomatableThreshold != 0.5 {
		t.Errorf("default threshold = %v, want 0.5", cfg.Scorer.AutomatableThreshold)
	}
	if cfg.Scorer.MatchThreshold != 2.0 {
		t.Errorf("default match threshold = %v, want 2.0", cfg.Scorer.MatchThreshold)
	}
	if cfg.Evaluator.Workers != 8 {
		t.Errorf("default workers = %d, want 8", cfg.Evaluator.Workers)
	}
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("LoadFromPath() on a missing file should fail")
	}
}
