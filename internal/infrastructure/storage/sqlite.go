package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Storage provides SQLite database access for reconciliation runs.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveRun stores a completed reconciliation run
func (s *Storage) SaveRun(run *ReconciliationRun) (int64, error) {
	query := `
	INSERT INTO reconciliation_runs
	(run_uid, created_at, status, side_a_count, side_b_count, match_count,
	 unmatched_a_count, unmatched_b_count, match_rate, average_score,
	 side_a_total, side_b_total, total_variance, result_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.Exec(query,
		run.RunUID,
		run.CreatedAt,
		run.Status,
		run.SideACount,
		run.SideBCount,
		run.MatchCount,
		run.UnmatchedACount,
		run.UnmatchedBCount,
		run.MatchRate,
		run.AverageScore,
		run.SideATotal,
		run.SideBTotal,
		run.TotalVariance,
		run.ResultJSON,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	run.ID = id
	return id, nil
}

const runColumns = `
	id, run_uid, created_at, status, side_a_count, side_b_count, match_count,
	unmatched_a_count, unmatched_b_count, match_rate, average_score,
	side_a_total, side_b_total, total_variance, result_json
`

// GetRun retrieves a run by database ID
func (s *Storage) GetRun(id int64) (*ReconciliationRun, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM reconciliation_runs WHERE id = ?`, id)
	return scanRun(row)
}

// GetRunByUID retrieves a run by its public UID
func (s *Storage) GetRunByUID(uid string) (*ReconciliationRun, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM reconciliation_runs WHERE run_uid = ?`, uid)
	return scanRun(row)
}

func scanRun(row *sql.Row) (*ReconciliationRun, error) {
	run := &ReconciliationRun{}
	err := row.Scan(
		&run.ID,
		&run.RunUID,
		&run.CreatedAt,
		&run.Status,
		&run.SideACount,
		&run.SideBCount,
		&run.MatchCount,
		&run.UnmatchedACount,
		&run.UnmatchedBCount,
		&run.MatchRate,
		&run.AverageScore,
		&run.SideATotal,
		&run.SideBTotal,
		&run.TotalVariance,
		&run.ResultJSON,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first
func (s *Storage) ListRuns(limit int) ([]ReconciliationRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT `+runColumns+`
		FROM reconciliation_runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []ReconciliationRun
	for rows.Next() {
		var run ReconciliationRun
		if err := rows.Scan(
			&run.ID,
			&run.RunUID,
			&run.CreatedAt,
			&run.Status,
			&run.SideACount,
			&run.SideBCount,
			&run.MatchCount,
			&run.UnmatchedACount,
			&run.UnmatchedBCount,
			&run.MatchRate,
			&run.AverageScore,
			&run.SideATotal,
			&run.SideBTotal,
			&run.TotalVariance,
			&run.ResultJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetStats returns aggregate statistics across all runs
func (s *Storage) GetStats() (*Stats, error) {
	stats := &Stats{}

	var lastRunAt sql.NullString
	var avgMatchRate sql.NullFloat64
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(side_a_count + side_b_count), 0),
		       COALESCE(SUM(match_count), 0),
		       AVG(match_rate),
		       MAX(created_at)
		FROM reconciliation_runs
	`).Scan(&stats.TotalRuns, &stats.TotalRecords, &stats.TotalMatches, &avgMatchRate, &lastRunAt)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	if avgMatchRate.Valid {
		stats.AverageMatchRate = avgMatchRate.Float64
	}
	if lastRunAt.Valid {
		stats.LastRunAt = lastRunAt.String
	}
	return stats, nil
}
