package dto

import (
	"github.com/amajor13/sme-recon-mvp/internal/domain/recon"
)

// ReconcileRequest is the payload for POST /api/reconcile. Both sides
// carry already-normalized records; parsing source files is the
// caller's concern.
type ReconcileRequest struct {
	SideA   []recon.Record   `json:"side_a"`
	SideB   []recon.Record   `json:"side_b"`
	Options *MatchingOptions `json:"options,omitempty"`
}

// MatchingOptions overrides a subset of the engine configuration for a
// single run. Zero-valued fields keep the server defaults.
type MatchingOptions struct {
	AmountTolerancePercent    float64 `json:"amount_tolerance_percent,omitempty"`
	DateWindowDays            int     `json:"date_window_days,omitempty"`
	VendorSimilarityThreshold float64 `json:"vendor_similarity_threshold,omitempty"`
	MinMatchThreshold         float64 `json:"min_match_threshold,omitempty"`
	HighConfidenceMin         float64 `json:"high_confidence_min,omitempty"`
	MediumConfidenceMin       float64 `json:"medium_confidence_min,omitempty"`
	DuplicateDateWindowDays   int     `json:"duplicate_date_window_days,omitempty"`
}

// Apply merges the non-zero overrides onto base and returns the result.
func (o *MatchingOptions) Apply(base recon.Config) recon.Config {
	if o == nil {
		return base
	}
	if o.AmountTolerancePercent != 0 {
		base.AmountTolerancePercent = o.AmountTolerancePercent
	}
	if o.DateWindowDays != 0 {
		base.DateWindowDays = o.DateWindowDays
	}
	if o.VendorSimilarityThreshold != 0 {
		base.VendorSimilarityThreshold = o.VendorSimilarityThreshold
	}
	if o.MinMatchThreshold != 0 {
		base.MinMatchThreshold = o.MinMatchThreshold
	}
	if o.HighConfidenceMin != 0 {
		base.HighConfidenceMin = o.HighConfidenceMin
	}
	if o.MediumConfidenceMin != 0 {
		base.MediumConfidenceMin = o.MediumConfidenceMin
	}
	if o.DuplicateDateWindowDays != 0 {
		base.DuplicateDateWindowDays = o.DuplicateDateWindowDays
	}
	return base
}
