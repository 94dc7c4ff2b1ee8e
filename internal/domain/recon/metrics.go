package recon

import (
	"github.com/shopspring/decimal"
)

// perfectAmountTolerance is the absolute difference under which two
// matched amounts count as identical for reporting purposes.
var perfectAmountTolerance = decimal.RequireFromString("0.01")

// Metrics summarizes a completed reconciliation for reviewer triage.
// All monetary fields are exact decimal sums; floating point is only
// used for scores and rates, never for financial totals.
type Metrics struct {
	TotalRecords          int     `json:"total_records"`
	TotalMatches          int     `json:"total_matches"`
	TotalUnmatchedRecords int     `json:"total_unmatched_records"`
	MatchRate             float64 `json:"match_rate"`

	HighConfidence   int     `json:"high_confidence"`
	MediumConfidence int     `json:"medium_confidence"`
	LowConfidence    int     `json:"low_confidence"`
	AverageScore     float64 `json:"average_score"`
	MinScore         float64 `json:"min_score"`
	MaxScore         float64 `json:"max_score"`

	PerfectAmountMatches int `json:"perfect_amount_matches"`

	SideATotal          decimal.Decimal `json:"side_a_total"`
	SideBTotal          decimal.Decimal `json:"side_b_total"`
	MatchedSideATotal   decimal.Decimal `json:"matched_side_a_total"`
	MatchedSideBTotal   decimal.Decimal `json:"matched_side_b_total"`
	UnmatchedSideATotal decimal.Decimal `json:"unmatched_side_a_total"`
	UnmatchedSideBTotal decimal.Decimal `json:"unmatched_side_b_total"`

	// TotalVariance is the absolute difference between the two sides'
	// grand totals.
	TotalVariance decimal.Decimal `json:"total_variance"`
	// TotalAmountDifference sums each match's absolute amount difference.
	TotalAmountDifference decimal.Decimal `json:"total_amount_difference"`
	// LargestDiscrepancy is the single biggest per-match difference.
	LargestDiscrepancy decimal.Decimal `json:"largest_discrepancy"`
}

// buildMetrics computes the summary for a result whose matches and
// unmatched sets are final.
func (e *Engine) buildMetrics(a, b []Record, result *Result) Metrics {
	m := Metrics{
		TotalRecords:          len(a) + len(b),
		TotalMatches:          len(result.Matches),
		TotalUnmatchedRecords: len(result.UnmatchedA) + len(result.UnmatchedB),

		SideATotal:          sumAmounts(a),
		SideBTotal:          sumAmounts(b),
		MatchedSideATotal:   decimal.Zero,
		MatchedSideBTotal:   decimal.Zero,
		UnmatchedSideATotal: decimal.Zero,
		UnmatchedSideBTotal: decimal.Zero,

		TotalAmountDifference: decimal.Zero,
		LargestDiscrepancy:    decimal.Zero,
	}
	m.TotalVariance = m.SideATotal.Sub(m.SideBTotal).Abs()

	if m.TotalRecords > 0 {
		m.MatchRate = float64(2*m.TotalMatches) / float64(m.TotalRecords) * 100
	}

	scoreSum := 0.0
	for i, match := range result.Matches {
		m.MatchedSideATotal = m.MatchedSideATotal.Add(match.RecordA.Amount)
		m.MatchedSideBTotal = m.MatchedSideBTotal.Add(match.RecordB.Amount)

		m.TotalAmountDifference = m.TotalAmountDifference.Add(match.AmountDifference)
		if match.AmountDifference.GreaterThan(m.LargestDiscrepancy) {
			m.LargestDiscrepancy = match.AmountDifference
		}
		if match.AmountDifference.LessThan(perfectAmountTolerance) {
			m.PerfectAmountMatches++
		}

		switch {
		case match.Score >= e.config.HighConfidenceMin:
			m.HighConfidence++
		case match.Score >= e.config.MediumConfidenceMin:
			m.MediumConfidence++
		default:
			m.LowConfidence++
		}

		scoreSum += match.Score
		if i == 0 || match.Score < m.MinScore {
			m.MinScore = match.Score
		}
		if match.Score > m.MaxScore {
			m.MaxScore = match.Score
		}
	}
	if len(result.Matches) > 0 {
		m.AverageScore = scoreSum / float64(len(result.Matches))
	}

	for _, i := range result.UnmatchedA {
		m.UnmatchedSideATotal = m.UnmatchedSideATotal.Add(a[i].Amount)
	}
	for _, i := range result.UnmatchedB {
		m.UnmatchedSideBTotal = m.UnmatchedSideBTotal.Add(b[i].Amount)
	}

	return m
}

func sumAmounts(records []Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}
