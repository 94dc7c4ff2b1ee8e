package storage

// ReconciliationRun is one persisted engine invocation: the summary
// columns are queryable, the full result is stored as JSON alongside.
// Monetary totals are kept as exact decimal strings, never floats.
type ReconciliationRun struct {
	ID        int64  `json:"id"`
	RunUID    string `json:"run_uid"`
	CreatedAt string `json:"created_at"`
	Status    string `json:"status"`

	SideACount      int `json:"side_a_count"`
	SideBCount      int `json:"side_b_count"`
	MatchCount      int `json:"match_count"`
	UnmatchedACount int `json:"unmatched_a_count"`
	UnmatchedBCount int `json:"unmatched_b_count"`

	MatchRate    float64 `json:"match_rate"`
	AverageScore float64 `json:"average_score"`

	SideATotal    string `json:"side_a_total"`
	SideBTotal    string `json:"side_b_total"`
	TotalVariance string `json:"total_variance"`

	// ResultJSON is the serialized engine result, for full drill-down.
	ResultJSON string `json:"-"`
}

// Run statuses
const (
	RunStatusCompleted = "completed"
)
