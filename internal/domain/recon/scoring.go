package recon

import (
	"github.com/amajor13/sme-recon-mvp/internal/domain/similarity"
)

// FactorScores holds the raw per-field similarities behind a composite
// score, surfaced so reviewers can see why a pairing was accepted.
type FactorScores struct {
	Reference float64 `json:"reference"`
	Amount    float64 `json:"amount"`
	Date      float64 `json:"date"`
	Vendor    float64 `json:"vendor"`
}

// score computes the weighted composite score for a candidate pairing.
// Reference similarity is tiered: only near-exact similarity earns the
// full reference weight, lower tiers are credited sub-linearly.
func (e *Engine) score(a, b Record) (float64, FactorScores) {
	cfg := e.config
	var factors FactorScores
	total := 0.0

	refSim := similarity.String(a.Reference, b.Reference)
	switch {
	case refSim >= cfg.ReferenceExactThreshold:
		total += cfg.ReferenceWeight
	case refSim >= cfg.ReferenceStrongThreshold:
		total += refSim * cfg.ReferenceStrongWeight
	default:
		total += refSim * cfg.ReferenceWeakWeight
	}
	factors.Reference = refSim

	amountScore := similarity.AmountCloseness(a.Amount, b.Amount,
		cfg.AmountNearExactPercent, cfg.AmountTolerancePercent, cfg.AmountPartialBandPercent)
	total += amountScore * cfg.AmountWeight
	factors.Amount = amountScore

	dateScore := similarity.DateCloseness(a.Date.Time, b.Date.Time, cfg.DateWindowDays)
	total += dateScore * cfg.DateWeight
	factors.Date = dateScore

	vendorSim := similarity.String(a.Vendor, b.Vendor)
	if vendorSim >= cfg.VendorSimilarityThreshold {
		total += vendorSim * cfg.VendorWeight
	} else {
		total += vendorSim * cfg.VendorPartialWeight
	}
	factors.Vendor = vendorSim

	return total, factors
}
