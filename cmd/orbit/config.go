package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/orbit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fmt.Printf("user config:    %s\n", config.GetUserConfigPath())
	if project := config.GetProjectConfigPath(); project != "" {
		fmt.Printf("project config: %s\n", project)
	}
	fmt.Println()
	fmt.Printf("catalog.backend:              %s\n", cfg.Catalog.Backend)
	fmt.Printf("catalog.path:                 %s\n", cfg.Catalog.Path)
	fmt.Printf("catalog.watch:                %v\n", cfg.Catalog.Watch)
	fmt.Printf("matcher.title_weight:         %.1f\n", cfg.Matcher.TitleWeight)
	fmt.Printf("matcher.keyword_weight:       %.1f\n", cfg.Matcher.KeywordWeight)
	fmt.Printf("matcher.category_weight:      %.1f\n", cfg.Matcher.CategoryWeight)
	fmt.Printf("scorer.automatable_threshold: %.2f\n", cfg.Scorer.AutomatableThreshold)
	fmt.Printf("scorer.match_cap:             %.1f\n", cfg.Scorer.MatchCap)
	fmt.Printf("scorer.match_threshold:       %.1f\n", cfg.Scorer.MatchThreshold)
	fmt.Printf("evaluator.workers:            %d\n", cfg.Evaluator.Workers)
	fmt.Printf("server.addr:                  %s\n", cfg.Server.Addr)
	fmt.Printf("server.request_timeout:       %s\n", cfg.Server.RequestTimeout)
	return nil
}
