package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/orbit/internal/config"
	"github.com/ShayCichocki/orbit/pkg/models"
)

var (
	evaluateFile string
	evaluateJSON bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [description...]",
	Short: "Evaluate task automatability",
	Long: `Evaluate one or more task descriptions against the orb catalog.

Each argument is treated as one task description; ad-hoc tasks get
generated ids. Alternatively, --file reads a JSON batch of
{task_id, task_description} objects.

Examples:
  orbit evaluate "deploy a kubernetes pod"
  orbit evaluate "rotate TLS certs" "water the office plants"
  orbit evaluate --file tasks.json --json`,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateFile, "file", "f", "", "JSON file with a task batch")
	evaluateCmd.Flags().BoolVar(&evaluateJSON, "json", false, "Print the raw JSON response")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	tasks, err := gatherTasks(args)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return fmt.Errorf("no tasks given: pass descriptions as arguments or use --file")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	eng, err := buildEngine(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	resp := eng.evaluator.EvaluateBatch(tasks)

	if evaluateJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	printResponse(resp)
	return nil
}

// gatherTasks builds the batch from arguments or the --file flag.
// Ad-hoc argument tasks get generated ids.
func gatherTasks(args []string) ([]models.Task, error) {
	if evaluateFile != "" {
		data, err := os.ReadFile(evaluateFile)
		if err != nil {
			return nil, fmt.Errorf("read task file: %w", err)
		}
		var tasks []models.Task
		if err := json.Unmarshal(data, &tasks); err != nil {
			return nil, fmt.Errorf("parse task file: %w", err)
		}
		return tasks, nil
	}

	tasks := make([]models.Task, 0, len(args))
	for _, desc := range args {
		tasks = append(tasks, models.Task{
			ID:          "task-" + uuid.New().String()[:8],
			Description: desc,
		})
	}
	return tasks, nil
}

// printResponse renders a batch response for humans.
func printResponse(resp models.EvaluationResponse) {
	green := color.New(color.FgGreen, color.Bold)
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)

	ids := make([]string, 0, len(resp.ScoreMap))
	for id := range resp.ScoreMap {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	automatable := make(map[string]bool, len(resp.Automatable))
	for _, id := range resp.Automatable {
		automatable[id] = true
	}

	for _, id := range ids {
		verdict := red.Sprint("escalate")
		if automatable[id] {
			verdict = green.Sprint("automate")
		}
		fmt.Printf("%-20s %s  score %.2f  -> %s\n", id, verdict, resp.ScoreMap[id], resp.Suggestions[id])
	}

	for _, taskErr := range resp.Errors {
		yellow.Printf("skipped %s: %s\n", taskErr.TaskID, taskErr.Reason)
	}
}
