package models

// Category represents the specialist agent domain responsible for a task.
type Category string

const (
	// CategoryKubernetes is for cluster and workload operations.
	CategoryKubernetes Category = "kubernetes-operations"
	// CategoryInfrastructure is for provisioning and IaC tasks.
	CategoryInfrastructure Category = "infrastructure-provisioning"
	// CategoryMLOps is for model training and serving operations.
	CategoryMLOps Category = "ml-operations"
	// CategorySecurity is for scanning, auditing, and credential tasks.
	CategorySecurity Category = "security-audit"
	// CategoryGeneral is the fallback when no specialist domain matches.
	CategoryGeneral Category = "general"
)

// Valid returns true if the category is a known value.
func (c Category) Valid() bool {
	switch c {
	case CategoryKubernetes, CategoryInfrastructure, CategoryMLOps, CategorySecurity, CategoryGeneral:
		return true
	default:
		return false
	}
}

// Categories lists all known categories in routing priority order.
// The fallback CategoryGeneral is last.
func Categories() []Category {
	return []Category{
		CategoryKubernetes,
		CategoryInfrastructure,
		CategoryMLOps,
		CategorySecurity,
		CategoryGeneral,
	}
}
