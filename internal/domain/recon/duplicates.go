package recon

import (
	"math"

	"github.com/shopspring/decimal"
)

// findDuplicates flags near-duplicates within one side's set: records
// whose amounts differ by at most the duplicate tolerance and whose
// dates fall within the duplicate window of each other. The result maps
// a record index to the indices it duplicates, ascending. Purely
// advisory: matching never consults it.
func (e *Engine) findDuplicates(records []Record) map[int][]int {
	cfg := e.config
	dups := make(map[int][]int)

	for i := range records {
		for j := range records {
			if i == j {
				continue
			}
			if !e.amountsWithinDuplicateTolerance(records[i].Amount, records[j].Amount) {
				continue
			}

			days := math.Abs(records[i].Date.Sub(records[j].Date.Time).Hours() / 24)
			if days > float64(cfg.DuplicateDateWindowDays) {
				continue
			}

			dups[i] = append(dups[i], j)
		}
	}

	return dups
}

func (e *Engine) amountsWithinDuplicateTolerance(a, b decimal.Decimal) bool {
	larger := decimal.Max(a.Abs(), b.Abs())
	if larger.IsZero() {
		// Degenerate comparison, not evidence of duplication.
		return false
	}

	relDiff, _ := a.Sub(b).Abs().Div(larger).Float64()
	return relDiff <= e.config.DuplicateAmountTolerancePercent
}
