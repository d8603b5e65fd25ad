package evaluate

import "fmt"

// ValidationError reports a malformed task entry. In a batch the task is
// excluded and recorded; for a single evaluation it is returned directly.
type ValidationError struct {
	// TaskID is the offending task's id, if present.
	TaskID string
	// Err is the underlying field error.
	Err error
}

func (e *ValidationError) Error() string {
	if e.TaskID != "" {
		return fmt.Sprintf("invalid task %q: %v", e.TaskID, e.Err)
	}
	return fmt.Sprintf("invalid task: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
