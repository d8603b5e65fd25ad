package models

import "errors"

// Validation errors for task input.
var (
	// ErrMissingTaskID indicates the task has no identifier.
	ErrMissingTaskID = errors.New("missing task_id")
	// ErrMissingDescription indicates the task has no description.
	ErrMissingDescription = errors.New("missing task_description")
)

// Task represents one operational task submitted for evaluation.
// Tasks are immutable inputs and live only for one evaluation call.
type Task struct {
	// ID is the caller-supplied identifier for this task.
	ID string `json:"task_id"`
	// Description is the free-text description of the work.
	Description string `json:"task_description"`
}

// Validate returns an error describing the first missing field, or nil.
func (t Task) Validate() error {
	if t.ID == "" {
		return ErrMissingTaskID
	}
	if t.Description == "" {
		return ErrMissingDescription
	}
	return nil
}
