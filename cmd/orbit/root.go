package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "orbit",
	Short: "Task Automatability Evaluation & Routing Engine",
	Long: `Orbit decides whether an operational task can be automated by a
specialist agent, which agent category should own it, and which orb
(a catalogued best-practice template) best matches it.

Downstream consumers use these verdicts to auto-execute a runbook or
escalate to a human.

Core capabilities:
- Scores task automatability from lexical signals
- Routes tasks to specialist agent categories
- Ranks orbs against free-text task descriptions
- Serves evaluations over a thin JSON shim`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	Execute()
}
