package selector

import "github.com/ShayCichocki/orbit/pkg/models"

// kubernetesKeywords are tokens that indicate cluster and workload tasks.
var kubernetesKeywords = []string{
	"kubernetes",
	"k8s",
	"kubectl",
	"pod",
	"pods",
	"helm",
	"namespace",
	"ingress",
	"kustomize",
}

// infrastructureKeywords are tokens that indicate provisioning and IaC tasks.
var infrastructureKeywords = []string{
	"terraform",
	"provision",
	"provisioning",
	"cloudformation",
	"pulumi",
	"ansible",
	"vpc",
	"infrastructure",
	"infra",
}

// mlKeywords are tokens that indicate model training and serving tasks.
var mlKeywords = []string{
	"model",
	"training",
	"ml",
	"mlflow",
	"dataset",
	"inference",
	"gpu",
	"finetune",
}

// securityKeywords are tokens that indicate scanning, auditing, and
// credential tasks.
var securityKeywords = []string{
	"scan",
	"vulnerability",
	"vulnerabilities",
	"security",
	"audit",
	"cve",
	"compliance",
	"rotate",
	"tls",
	"cert",
	"certs",
	"certificate",
	"certificates",
	"secrets",
}

// DefaultRules returns the ordered routing rules. Order is deliberate:
// earlier rules win when a description matches several domains.
func DefaultRules() []Rule {
	return []Rule{
		{Category: models.CategoryKubernetes, Keywords: kubernetesKeywords},
		{Category: models.CategoryInfrastructure, Keywords: infrastructureKeywords},
		{Category: models.CategoryMLOps, Keywords: mlKeywords},
		{Category: models.CategorySecurity, Keywords: securityKeywords},
	}
}
