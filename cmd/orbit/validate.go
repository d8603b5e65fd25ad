package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/orbit/internal/catalog"
	"github.com/ShayCichocki/orbit/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the orb catalog",
	Long: `Read every record from the configured catalog store and report all
schema problems. A catalog with any invalid record refuses to load, so
this lists everything an operator must fix before serving.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var store catalog.Store
	switch cfg.Catalog.Backend {
	case "", "yaml":
		store = catalog.NewYAMLStore(cfg.Catalog.Path)
	case "sqlite":
		sqlStore, err := catalog.NewSQLStore(cfg.Catalog.Path)
		if err != nil {
			return fmt.Errorf("open catalog database: %w", err)
		}
		defer sqlStore.Close()
		if err := sqlStore.Migrate(); err != nil {
			return fmt.Errorf("migrate catalog database: %w", err)
		}
		store = sqlStore
	default:
		return fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
	}

	orbs, err := store.Load(context.Background())
	if err != nil {
		return fmt.Errorf("read orb catalog %s: %w", store.Path(), err)
	}

	red := color.New(color.FgRed)
	problems := 0
	for i, orb := range orbs {
		if err := orb.Validate(); err != nil {
			red.Printf("record %d: %v\n", i, err)
			problems++
		}
	}

	if problems > 0 {
		return fmt.Errorf("catalog %s has %d invalid record(s)", store.Path(), problems)
	}

	color.New(color.FgGreen).Printf("catalog %s is valid: %d orbs\n", store.Path(), len(orbs))
	return nil
}
