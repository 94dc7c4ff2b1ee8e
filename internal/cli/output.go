package cli

import (
	"fmt"
	"strings"

	"github.com/amajor13/sme-recon-mvp/internal/domain/recon"
)

// PrintReport prints a human-readable run summary to stdout.
func PrintReport(result *recon.Result, sideA, sideB []recon.Record) {
	fmt.Printf("Reconciled %d side-A records against %d side-B records\n",
		len(sideA), len(sideB))
	fmt.Println(strings.Repeat("-", 60))

	for _, m := range result.Matches {
		fmt.Printf("MATCH  [%3d <-> %3d]  score=%.3f  %s  %s | %s  diff=%s\n",
			m.IndexA, m.IndexB, m.Score,
			m.RecordA.Date.Format("2006-01-02"),
			m.RecordA.Vendor, m.RecordB.Vendor,
			m.AmountDifference.StringFixed(2))
	}

	for _, i := range result.UnmatchedA {
		r := sideA[i]
		fmt.Printf("ONLY-A [%3d]  %s  %s  %s\n",
			i, r.Date.Format("2006-01-02"), r.Vendor, r.Amount.StringFixed(2))
	}
	for _, i := range result.UnmatchedB {
		r := sideB[i]
		fmt.Printf("ONLY-B [%3d]  %s  %s  %s\n",
			i, r.Date.Format("2006-01-02"), r.Vendor, r.Amount.StringFixed(2))
	}

	printDuplicates("A", result.DuplicatesA)
	printDuplicates("B", result.DuplicatesB)

	mtx := result.Metrics
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Matches: %d (%.1f%%)  High: %d  Medium: %d  Low: %d\n",
		mtx.TotalMatches, mtx.MatchRate,
		mtx.HighConfidence, mtx.MediumConfidence, mtx.LowConfidence)
	fmt.Printf("Side A total: %s  Side B total: %s  Variance: %s\n",
		mtx.SideATotal.StringFixed(2),
		mtx.SideBTotal.StringFixed(2),
		mtx.TotalVariance.StringFixed(2))
	if mtx.TotalMatches > 0 {
		fmt.Printf("Scores: avg=%.3f min=%.3f max=%.3f  Exact amounts: %d\n",
			mtx.AverageScore, mtx.MinScore, mtx.MaxScore, mtx.PerfectAmountMatches)
		fmt.Printf("Matched amount difference: %s  Largest discrepancy: %s\n",
			mtx.TotalAmountDifference.StringFixed(2),
			mtx.LargestDiscrepancy.StringFixed(2))
	}
}

func printDuplicates(side string, dupes map[int][]int) {
	for idx, others := range dupes {
		fmt.Printf("DUPE-%s [%3d]  possible duplicates at %v\n", side, idx, others)
	}
}
