package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/orbit/internal/catalog"
	"github.com/ShayCichocki/orbit/pkg/models"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize an Orbit project",
	Long: `Initialize a directory for use with Orbit.

Creates the .orbit directory with a starter orb catalog and a project
config file pointing at it. The directory argument defaults to the
current directory.

Examples:
  orbit init              # Initialize current directory
  orbit init ./platform   # Initialize specific directory
  orbit init --force      # Overwrite an existing catalog`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing catalog and config")
}

// seedOrbs is the starter catalog written by init. One orb per specialist
// category so evaluation works out of the box.
func seedOrbs() []models.Orb {
	return []models.Orb{
		{
			ID:                  "orb-k8s-pod-deploy",
			Title:               "Kubernetes Pod Deployment",
			Category:            string(models.CategoryKubernetes),
			Keywords:            []string{"deploy", "pod", "kubernetes", "rollout"},
			Description:         "Deploy or restart a workload on a Kubernetes cluster.",
			AutomationReference: "runbooks/k8s/pod-deploy.yaml",
		},
		{
			ID:                  "orb-terraform-provision",
			Title:               "Terraform Environment Provisioning",
			Category:            string(models.CategoryInfrastructure),
			Keywords:            []string{"provision", "terraform", "environment", "vpc"},
			Description:         "Provision cloud infrastructure from Terraform plans.",
			AutomationReference: "runbooks/infra/terraform-apply.yaml",
		},
		{
			ID:                  "orb-ml-retrain",
			Title:               "Model Retraining Pipeline",
			Category:            string(models.CategoryMLOps),
			Keywords:            []string{"model", "training", "retrain", "dataset"},
			Description:         "Kick off a model retraining run against a fresh dataset.",
			AutomationReference: "runbooks/ml/retrain.yaml",
		},
		{
			ID:                  "orb-container-scan",
			Title:               "Container Vulnerability Scanning",
			Category:            string(models.CategorySecurity),
			Keywords:            []string{"scan", "container", "vulnerability"},
			Description:         "Scan container images for known vulnerabilities.",
			AutomationReference: "runbooks/security/image-scan.yaml",
		},
		{
			ID:                  "orb-cert-rotate",
			Title:               "TLS Certificate Rotation",
			Category:            string(models.CategorySecurity),
			Keywords:            []string{"rotate", "tls", "cert", "certificate"},
			Description:         "Rotate TLS certificates and roll dependent services.",
			AutomationReference: "runbooks/security/cert-rotate.yaml",
		},
	}
}

const projectConfigTemplate = `catalog:
  backend: yaml
  path: .orbit/orbs.yaml
  watch: true
`

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}

	absPath, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolve directory: %w", err)
	}

	orbitDir := filepath.Join(absPath, ".orbit")
	if err := os.MkdirAll(orbitDir, 0755); err != nil {
		return fmt.Errorf("create .orbit directory: %w", err)
	}

	green := color.New(color.FgGreen)

	catalogPath := filepath.Join(orbitDir, "orbs.yaml")
	if _, err := os.Stat(catalogPath); err == nil && !initForce {
		return fmt.Errorf("catalog already exists at %s (use --force to overwrite)", catalogPath)
	}
	if err := catalog.WriteYAMLStore(catalogPath, seedOrbs()); err != nil {
		return err
	}
	green.Printf("✓ wrote starter catalog: %s\n", catalogPath)

	configPath := filepath.Join(absPath, ".orbit.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) || initForce {
		if err := os.WriteFile(configPath, []byte(projectConfigTemplate), 0644); err != nil {
			return fmt.Errorf("write project config: %w", err)
		}
		green.Printf("✓ wrote project config: %s\n", configPath)
	}

	fmt.Println("\nTry: orbit evaluate \"deploy a kubernetes pod\"")
	return nil
}
