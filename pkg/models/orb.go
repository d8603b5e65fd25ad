package models

import "fmt"

// Orb is a catalogued best-practice template used as a matching target
// for incoming tasks. Orbs are loaded once at startup and are read-only
// during evaluation.
type Orb struct {
	// ID is the unique identifier for this orb.
	ID string `json:"id" yaml:"id"`
	// Title is the human-readable name of the template.
	Title string `json:"title" yaml:"title"`
	// Category is the specialist domain this orb belongs to.
	Category string `json:"category" yaml:"category"`
	// Keywords are the lexical match targets for this orb.
	Keywords []string `json:"keywords" yaml:"keywords"`
	// Description provides detail about what the template does.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// AutomationReference points at the runbook or workflow that executes this orb.
	AutomationReference string `json:"automation_reference,omitempty" yaml:"automation_reference,omitempty"`
}

// Validate checks that the orb carries the fields the matcher depends on.
func (o Orb) Validate() error {
	if o.Title == "" {
		return fmt.Errorf("orb %q: missing title", o.ID)
	}
	if o.Category == "" {
		return fmt.Errorf("orb %q: missing category", o.ID)
	}
	if len(o.Keywords) == 0 {
		return fmt.Errorf("orb %q: missing keywords", o.ID)
	}
	return nil
}
