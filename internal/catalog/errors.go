package catalog

import "fmt"

// InvalidRecordError reports an orb record that failed schema validation
// at load time. A single invalid record aborts the whole load.
type InvalidRecordError struct {
	// Position is the record's index in the backing store.
	Position int
	// OrbID is the record's id, if it had one.
	OrbID string
	// Err is the underlying validation failure.
	Err error
}

func (e *InvalidRecordError) Error() string {
	if e.OrbID != "" {
		return fmt.Sprintf("invalid orb record %q at position %d: %v", e.OrbID, e.Position, e.Err)
	}
	return fmt.Sprintf("invalid orb record at position %d: %v", e.Position, e.Err)
}

func (e *InvalidRecordError) Unwrap() error {
	return e.Err
}
