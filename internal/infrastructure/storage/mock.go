package storage

import "sort"

// MockRepository is an in-memory implementation of Repository for testing.
// It stores runs in a map, making handler and service tests fast and
// isolated.
type MockRepository struct {
	runs      map[int64]*ReconciliationRun
	nextRunID int64

	// Hooks for test assertions
	SaveRunCalled bool
	LastSavedRun  *ReconciliationRun

	// Error injection for testing error paths
	SaveRunErr  error
	GetRunErr   error
	ListRunsErr error
	GetStatsErr error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		runs:      make(map[int64]*ReconciliationRun),
		nextRunID: 1,
	}
}

// SaveRun stores the run in memory
func (m *MockRepository) SaveRun(run *ReconciliationRun) (int64, error) {
	m.SaveRunCalled = true
	if m.SaveRunErr != nil {
		return 0, m.SaveRunErr
	}

	stored := *run
	stored.ID = m.nextRunID
	m.nextRunID++
	m.runs[stored.ID] = &stored

	run.ID = stored.ID
	m.LastSavedRun = &stored
	return stored.ID, nil
}

// GetRun retrieves a run by ID
func (m *MockRepository) GetRun(id int64) (*ReconciliationRun, error) {
	if m.GetRunErr != nil {
		return nil, m.GetRunErr
	}
	run, ok := m.runs[id]
	if !ok {
		return nil, nil
	}
	copied := *run
	return &copied, nil
}

// GetRunByUID retrieves a run by its public UID
func (m *MockRepository) GetRunByUID(uid string) (*ReconciliationRun, error) {
	if m.GetRunErr != nil {
		return nil, m.GetRunErr
	}
	for _, run := range m.runs {
		if run.RunUID == uid {
			copied := *run
			return &copied, nil
		}
	}
	return nil, nil
}

// ListRuns returns stored runs, newest first
func (m *MockRepository) ListRuns(limit int) ([]ReconciliationRun, error) {
	if m.ListRunsErr != nil {
		return nil, m.ListRunsErr
	}
	if limit <= 0 {
		limit = 20
	}

	runs := make([]ReconciliationRun, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, *run)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].ID > runs[j].ID })

	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// GetStats computes aggregate statistics over the stored runs
func (m *MockRepository) GetStats() (*Stats, error) {
	if m.GetStatsErr != nil {
		return nil, m.GetStatsErr
	}

	stats := &Stats{TotalRuns: len(m.runs)}
	rateSum := 0.0
	for _, run := range m.runs {
		stats.TotalRecords += run.SideACount + run.SideBCount
		stats.TotalMatches += run.MatchCount
		rateSum += run.MatchRate
		if run.CreatedAt > stats.LastRunAt {
			stats.LastRunAt = run.CreatedAt
		}
	}
	if stats.TotalRuns > 0 {
		stats.AverageMatchRate = rateSum / float64(stats.TotalRuns)
	}
	return stats, nil
}

// Close is a no-op for the mock
func (m *MockRepository) Close() error {
	return nil
}
