package store

// Store defines the interface for run record persistence.
// Records are reports of finished runs; nothing reads them back into an optimizer.
//
// Error handling conventions:
//   - Return ErrNotFound if the run doesn't exist (for Load/Delete)
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// SaveRun atomically writes the record for runID, overwriting any previous one.
	SaveRun(runID string, record *RunRecord) error

	// LoadRun retrieves the record for runID.
	// Returns ErrNotFound if no record exists.
	LoadRun(runID string) (*RunRecord, error)

	// ListRuns returns metadata for all readable records, oldest first.
	ListRuns() ([]RunInfo, error)

	// DeleteRun removes the run directory with its record, trace and plots.
	// Returns ErrNotFound if no record exists.
	DeleteRun(runID string) error

	// RunDir returns the directory holding the artifacts of runID.
	RunDir(runID string) string
}

// ErrNotFound is returned when a requested run does not exist.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing run.
type NotFoundError struct {
	RunID string
}

func (e *NotFoundError) Error() string {
	if e.RunID != "" {
		return "run not found: " + e.RunID
	}
	return "run not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
