package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/orbit/internal/config"
	"github.com/ShayCichocki/orbit/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the orb catalog interactively",
	Long: `Open an interactive browser over the orb catalog. Typing a task
description live-ranks orbs with the same matcher the scorer uses.`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	eng, err := buildEngine(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	return tui.RunBrowser(eng.library, eng.matcher)
}
