package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/orbit/internal/config"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Rank orbs against a query",
	Long: `Search the orb catalog with the same lexical matcher the scorer
uses: title substring, keyword token overlap, and category substring,
weighted and ranked descending.

Examples:
  orbit search kubernetes
  orbit search "rotate tls certificates" --limit 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "Maximum results to print")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print raw JSON results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	eng, err := buildEngine(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	results := eng.matcher.Search(query)
	if searchLimit > 0 && len(results) > searchLimit {
		results = results[:searchLimit]
	}

	if searchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Printf("no orbs match %q\n", query)
		return nil
	}

	cyan := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)
	for _, res := range results {
		fmt.Printf("%5.1f  %s %s\n", res.Score, cyan.Sprint(res.Orb.Title), dim.Sprintf("[%s]", res.Category))
		if res.Orb.AutomationReference != "" {
			dim.Printf("       runbook: %s\n", res.Orb.AutomationReference)
		}
	}
	return nil
}
