package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/orbit/internal/catalog"
	"github.com/ShayCichocki/orbit/internal/config"
	"github.com/ShayCichocki/orbit/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the evaluation engine over HTTP",
	Long: `Load the orb catalog and serve the evaluation engine on a thin
JSON shim.

Endpoints:
  POST /v1/evaluate         Evaluate a task batch
  POST /v1/evaluate/single  Evaluate one task
  GET  /v1/orbs/search?q=   Rank orbs against a query
  GET  /v1/library/stats    Catalog statistics
  POST /v1/library/reload   Rebuild and swap the catalog snapshot
  GET  /healthz             Liveness check

With catalog.watch enabled, changes to the catalog file trigger the same
copy-and-swap reload as the reload endpoint.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	eng, err := buildEngine(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	if cfg.Catalog.Watch && cfg.Catalog.Backend != "sqlite" {
		watcher, err := catalog.NewWatcher(eng.library, cfg.Catalog.Path, 0, nil)
		if err != nil {
			return fmt.Errorf("watch catalog: %w", err)
		}
		defer watcher.Close()
	}

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv := server.New(eng.evaluator, eng.matcher, eng.library, cfg.Server.RequestTimeout)
	return srv.Start(addr)
}
