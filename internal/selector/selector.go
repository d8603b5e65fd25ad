// Package selector maps task descriptions to specialist agent categories.
package selector

import (
	"github.com/ShayCichocki/orbit/internal/catalog"
	"github.com/ShayCichocki/orbit/pkg/models"
)

// Rule pairs a category with the keyword set that routes to it.
type Rule struct {
	// Category is the agent category this rule selects.
	Category models.Category
	// Keywords are normalized tokens; any intersection with the
	// tokenized description fires the rule.
	Keywords []string
}

// CategorySelector evaluates an ordered rule list, first match wins.
// Rule order is the tie-break policy: a description mentioning both
// "kubernetes" and "terraform" resolves to kubernetes-operations because
// that rule is checked first.
type CategorySelector struct {
	rules    []Rule
	fallback models.Category
}

// NewCategorySelector creates a selector with the default rule order.
func NewCategorySelector() *CategorySelector {
	return NewCategorySelectorWithRules(DefaultRules())
}

// NewCategorySelectorWithRules creates a selector with a custom ordered
// rule list. Rules are evaluated in the order given.
func NewCategorySelectorWithRules(rules []Rule) *CategorySelector {
	return &CategorySelector{
		rules:    rules,
		fallback: models.CategoryGeneral,
	}
}

// Select tokenizes the description and returns the category of the first
// rule whose keyword set intersects it, or the general fallback.
// Pure function of its input; no failure modes.
func (s *CategorySelector) Select(description string) models.Category {
	tokens := make(map[string]bool)
	for _, token := range catalog.Tokenize(description) {
		tokens[token] = true
	}

	for _, rule := range s.rules {
		for _, keyword := range rule.Keywords {
			if tokens[keyword] {
				return rule.Category
			}
		}
	}
	return s.fallback
}
