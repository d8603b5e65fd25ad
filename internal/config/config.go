// Package config handles configuration loading and management for Orbit.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for Orbit.
type Config struct {
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Matcher   MatcherConfig   `mapstructure:"matcher"`
	Scorer    ScorerConfig    `mapstructure:"scorer"`
	Evaluator EvaluatorConfig `mapstructure:"evaluator"`
	Server    ServerConfig    `mapstructure:"server"`
}

// CatalogConfig holds orb catalog settings.
type CatalogConfig struct {
	// Backend selects the catalog store: "yaml" or "sqlite".
	Backend string `mapstructure:"backend"`
	// Path is the catalog file or database path.
	Path string `mapstructure:"path"`
	// Watch enables automatic reload when the catalog file changes.
	Watch bool `mapstructure:"watch"`
	// LogPath is the catalog debug log file; empty disables logging.
	LogPath string `mapstructure:"log_path"`
}

// MatcherConfig holds orb-match scoring weights.
type MatcherConfig struct {
	TitleWeight    float64 `mapstructure:"title_weight"`
	KeywordWeight  float64 `mapstructure:"keyword_weight"`
	CategoryWeight float64 `mapstructure:"category_weight"`
}

// ScorerConfig holds automatability thresholds.
type ScorerConfig struct {
	// AutomatableThreshold is the combined score that flags a task automatable.
	AutomatableThreshold float64 `mapstructure:"automatable_threshold"`
	// MatchCap is the orb-match score that saturates the match signal.
	MatchCap float64 `mapstructure:"match_cap"`
	// MatchThreshold is the orb-match score marking a confident match.
	MatchThreshold float64 `mapstructure:"match_threshold"`
}

// EvaluatorConfig holds batch evaluation settings.
type EvaluatorConfig struct {
	// Workers bounds concurrent per-task scoring in one batch.
	Workers int `mapstructure:"workers"`
}

// ServerConfig holds the HTTP shim settings.
type ServerConfig struct {
	// Addr is the listen address for the HTTP shim.
	Addr string `mapstructure:"addr"`
	// RequestTimeout bounds one evaluation request end to end.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ORBIT_*)
// 2. Project config (.orbit.yaml in current directory or parent)
// 3. User config (~/.config/orbit/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			// Merge project config (takes precedence)
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("ORBIT")
	v.BindEnv("catalog.path", "ORBIT_CATALOG_PATH")
	v.BindEnv("server.addr", "ORBIT_SERVER_ADDR")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	// Catalog defaults
	v.SetDefault("catalog.backend", "yaml")
	v.SetDefault("catalog.path", filepath.Join(".orbit", "orbs.yaml"))
	v.SetDefault("catalog.watch", false)
	v.SetDefault("catalog.log_path", "")

	// Match weight defaults: title > keyword > category
	v.SetDefault("matcher.title_weight", 3.0)
	v.SetDefault("matcher.keyword_weight", 2.0)
	v.SetDefault("matcher.category_weight", 1.0)

	// Scorer defaults
	v.SetDefault("scorer.automatable_threshold", 0.5)
	v.SetDefault("scorer.match_cap", 6.0)
	v.SetDefault("scorer.match_threshold", 2.0)

	// Evaluator defaults
	v.SetDefault("evaluator.workers", 8)

	// Server defaults
	v.SetDefault("server.addr", "127.0.0.1:8470")
	v.SetDefault("server.request_timeout", "30s")
}

// getUserConfigDir returns the XDG config directory for Orbit.
func getUserConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "orbit")
	}

	// Fall back to ~/.config/orbit
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "orbit")
	}
	return filepath.Join(home, ".config", "orbit")
}

// findProjectConfig searches for .orbit.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".orbit.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}
