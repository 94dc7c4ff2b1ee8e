package recon

// Config holds every tunable of the engine. The weight table is
// deliberately configuration rather than hardcoded law: different source
// pairs justify different evidence weightings. DefaultConfig sums to 1.0 at
// a perfect match (0.6 reference + 0.25 amount + 0.10 date + 0.05 vendor).
type Config struct {
	// Amount closeness bands, as relative differences.
	AmountNearExactPercent   float64 // full credit below this
	AmountTolerancePercent   float64 // linear decay up to this
	AmountPartialBandPercent float64 // half credit up to this, 0 beyond

	// DateWindowDays is the span over which date evidence decays to 0.
	DateWindowDays int

	// Reference scoring tiers. A similarity at or above ExactThreshold
	// earns the full ReferenceWeight; between StrongThreshold and
	// ExactThreshold it earns similarity * ReferenceStrongWeight, which
	// is deliberately less than linear interpolation would give; below
	// StrongThreshold only similarity * ReferenceWeakWeight.
	ReferenceWeight          float64
	ReferenceStrongWeight    float64
	ReferenceWeakWeight      float64
	ReferenceExactThreshold  float64
	ReferenceStrongThreshold float64

	AmountWeight float64
	DateWeight   float64

	// Vendor similarity is tie-break evidence only. Below the threshold
	// it is discounted to the partial weight.
	VendorWeight              float64
	VendorPartialWeight       float64
	VendorSimilarityThreshold float64

	// MinMatchThreshold is the minimum composite score for a candidate
	// to be eligible at all.
	MinMatchThreshold float64

	// Confidence tier boundaries for reviewer triage.
	HighConfidenceMin   float64
	MediumConfidenceMin float64

	// Near-duplicate detection, typically narrower than the matching
	// tolerances.
	DuplicateAmountTolerancePercent float64
	DuplicateDateWindowDays         int
}

// DefaultConfig returns the tuning used in production reconciliations.
func DefaultConfig() Config {
	return Config{
		AmountNearExactPercent:   0.001,
		AmountTolerancePercent:   0.05,
		AmountPartialBandPercent: 0.20,

		DateWindowDays: 30,

		ReferenceWeight:          0.60,
		ReferenceStrongWeight:    0.40,
		ReferenceWeakWeight:      0.10,
		ReferenceExactThreshold:  0.95,
		ReferenceStrongThreshold: 0.80,

		AmountWeight: 0.25,
		DateWeight:   0.10,

		VendorWeight:              0.05,
		VendorPartialWeight:       0.02,
		VendorSimilarityThreshold: 0.60,

		MinMatchThreshold: 0.50,

		HighConfidenceMin:   0.90,
		MediumConfidenceMin: 0.80,

		DuplicateAmountTolerancePercent: 0.01,
		DuplicateDateWindowDays:         5,
	}
}

// Validate checks every threshold and window before the engine runs.
func (c Config) Validate() error {
	unitRange := []struct {
		name  string
		value float64
	}{
		{"amount_near_exact_percent", c.AmountNearExactPercent},
		{"amount_tolerance_percent", c.AmountTolerancePercent},
		{"amount_partial_band_percent", c.AmountPartialBandPercent},
		{"reference_weight", c.ReferenceWeight},
		{"reference_strong_weight", c.ReferenceStrongWeight},
		{"reference_weak_weight", c.ReferenceWeakWeight},
		{"reference_exact_threshold", c.ReferenceExactThreshold},
		{"reference_strong_threshold", c.ReferenceStrongThreshold},
		{"amount_weight", c.AmountWeight},
		{"date_weight", c.DateWeight},
		{"vendor_weight", c.VendorWeight},
		{"vendor_partial_weight", c.VendorPartialWeight},
		{"vendor_similarity_threshold", c.VendorSimilarityThreshold},
		{"min_match_threshold", c.MinMatchThreshold},
		{"high_confidence_min", c.HighConfidenceMin},
		{"medium_confidence_min", c.MediumConfidenceMin},
		{"duplicate_amount_tolerance_percent", c.DuplicateAmountTolerancePercent},
	}
	for _, f := range unitRange {
		if f.value < 0 || f.value > 1 {
			return &ConfigError{Field: f.name, Reason: "must be within [0,1]"}
		}
	}

	if c.DateWindowDays < 0 {
		return &ConfigError{Field: "date_window_days", Reason: "must not be negative"}
	}
	if c.DuplicateDateWindowDays < 0 {
		return &ConfigError{Field: "duplicate_date_window_days", Reason: "must not be negative"}
	}
	if c.AmountTolerancePercent < c.AmountNearExactPercent {
		return &ConfigError{Field: "amount_tolerance_percent", Reason: "must not be below amount_near_exact_percent"}
	}
	if c.AmountPartialBandPercent < c.AmountTolerancePercent {
		return &ConfigError{Field: "amount_partial_band_percent", Reason: "must not be below amount_tolerance_percent"}
	}
	if c.ReferenceStrongThreshold > c.ReferenceExactThreshold {
		return &ConfigError{Field: "reference_strong_threshold", Reason: "must not exceed reference_exact_threshold"}
	}
	if c.MediumConfidenceMin > c.HighConfidenceMin {
		return &ConfigError{Field: "medium_confidence_min", Reason: "must not exceed high_confidence_min"}
	}

	return nil
}

// MaxScore is the theoretical composite score of a perfect pairing under
// this configuration.
func (c Config) MaxScore() float64 {
	return c.ReferenceWeight + c.AmountWeight + c.DateWeight + c.VendorWeight
}
