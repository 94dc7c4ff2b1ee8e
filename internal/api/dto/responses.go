package dto

import (
	"github.com/amajor13/sme-recon-mvp/internal/domain/recon"
	"github.com/amajor13/sme-recon-mvp/internal/infrastructure/storage"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// UnmatchedRecord pairs a record with its position in the submitted
// slice so callers can correlate against their own input.
type UnmatchedRecord struct {
	Index  int          `json:"index"`
	Record recon.Record `json:"record"`
}

// ReconcileResponse is the full outcome of a reconciliation run.
type ReconcileResponse struct {
	RunID       int64             `json:"run_id"`
	RunUID      string            `json:"run_uid"`
	CreatedAt   string            `json:"created_at"`
	Matches     []recon.Match     `json:"matches"`
	UnmatchedA  []UnmatchedRecord `json:"unmatched_a"`
	UnmatchedB  []UnmatchedRecord `json:"unmatched_b"`
	DuplicatesA map[int][]int     `json:"duplicates_a,omitempty"`
	DuplicatesB map[int][]int     `json:"duplicates_b,omitempty"`
	Metrics     recon.Metrics     `json:"metrics"`
}

// RunListResponse wraps a page of persisted runs.
type RunListResponse struct {
	Runs  []storage.ReconciliationRun `json:"runs"`
	Count int                         `json:"count"`
}

// RunDetailResponse is a persisted run together with its stored result
// document, if the caller asked for it.
type RunDetailResponse struct {
	Run    *storage.ReconciliationRun `json:"run"`
	Result *recon.Result              `json:"result,omitempty"`
}
