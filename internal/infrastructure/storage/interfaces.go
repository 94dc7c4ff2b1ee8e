package storage

// Repository defines the complete storage interface.
// This interface allows swapping implementations (SQLite, PostgreSQL, etc.)
// and makes testing with mocks straightforward.
type Repository interface {
	RunRepository
	Close() error
}

// RunRepository persists completed reconciliation runs
type RunRepository interface {
	// SaveRun stores a completed run and returns its database ID
	SaveRun(run *ReconciliationRun) (int64, error)

	// GetRun retrieves a run by database ID, nil if not found
	GetRun(id int64) (*ReconciliationRun, error)

	// GetRunByUID retrieves a run by its public UID, nil if not found
	GetRunByUID(uid string) (*ReconciliationRun, error)

	// ListRuns returns the most recent runs, newest first
	ListRuns(limit int) ([]ReconciliationRun, error)

	// GetStats returns aggregate statistics across all runs
	GetStats() (*Stats, error)
}

// Stats holds aggregate statistics across all stored runs
type Stats struct {
	TotalRuns        int     `json:"total_runs"`
	TotalRecords     int     `json:"total_records"`
	TotalMatches     int     `json:"total_matches"`
	AverageMatchRate float64 `json:"average_match_rate"`
	LastRunAt        string  `json:"last_run_at,omitempty"`
}
