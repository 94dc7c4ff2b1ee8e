// Package similarity provides the pure per-field closeness functions used
// when comparing transactions from two sources.
//
// All functions return a score in [0, 1] where 1 means identical and 0
// means no usable evidence. They are deterministic and hold no state.
package similarity

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// String computes a case-insensitive normalized edit similarity between
// two strings. An empty input on either side yields 0 because an absent
// field is no evidence of a match. The function is symmetric.
func String(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	ra := []rune(strings.ToUpper(a))
	rb := []rune(strings.ToUpper(b))

	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 0
	}

	// Unit substitution cost keeps the distance bounded by the longer
	// string's length, so the ratio below stays in [0, 1].
	distance := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptionsWithSub)
	return 1.0 - float64(distance)/float64(longest)
}

// AmountCloseness scores how close two monetary amounts are, based on
// their relative difference against the larger of the two.
//
// A relative difference below nearExactPercent counts as a full match
// (score 1.0) so that rounding noise does not dilute true duplicates.
// Between there and tolerancePercent the score decays linearly to 0.
// Beyond the tolerance, half credit of the same linear shape is awarded
// up to partialBandPercent, after which the score is 0.
//
// Two zero amounts are degenerate (relative difference is undefined) and
// score 0 rather than dividing by zero.
func AmountCloseness(a, b decimal.Decimal, nearExactPercent, tolerancePercent, partialBandPercent float64) float64 {
	larger := decimal.Max(a.Abs(), b.Abs())
	if larger.IsZero() {
		return 0
	}

	diff := a.Sub(b).Abs()
	relDiff, _ := diff.Div(larger).Float64()

	switch {
	case relDiff <= nearExactPercent:
		return 1.0
	case relDiff <= tolerancePercent:
		return 1.0 - relDiff/tolerancePercent
	case relDiff <= partialBandPercent:
		return 0.5 * (1.0 - relDiff/partialBandPercent)
	default:
		return 0
	}
}

// DateCloseness scores how close two calendar dates are: 1.0 for the same
// day, decaying linearly to 0 at windowDays apart, and 0 beyond.
func DateCloseness(d1, d2 time.Time, windowDays int) float64 {
	if windowDays <= 0 {
		return 0
	}

	days := math.Abs(d1.Sub(d2).Hours() / 24)
	if days > float64(windowDays) {
		return 0
	}
	return 1.0 - days/float64(windowDays)
}
