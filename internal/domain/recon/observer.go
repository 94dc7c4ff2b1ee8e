package recon

import "log/slog"

// Observer receives engine decisions as they happen. It replaces ad hoc
// debug printing inside the matching loop: the engine itself never logs
// and holds no global state, callers decide what to do with the events.
type Observer interface {
	// Comparison fires once per scored candidate pairing.
	Comparison(indexA, indexB int, score float64, factors FactorScores)
	// MatchAccepted fires when a candidate is committed as a Match.
	MatchAccepted(m Match)
}

type nopObserver struct{}

func (nopObserver) Comparison(int, int, float64, FactorScores) {}
func (nopObserver) MatchAccepted(Match)                        {}

// LogObserver bridges engine decisions to a structured logger at debug
// level. Comparisons are high-volume; enable debug logging deliberately.
type LogObserver struct {
	Logger *slog.Logger
}

// Comparison logs one scored pairing.
func (o *LogObserver) Comparison(indexA, indexB int, score float64, factors FactorScores) {
	o.Logger.Debug("scored candidate",
		"index_a", indexA,
		"index_b", indexB,
		"score", score,
		"reference", factors.Reference,
		"amount", factors.Amount,
		"date", factors.Date,
		"vendor", factors.Vendor,
	)
}

// MatchAccepted logs a committed match.
func (o *LogObserver) MatchAccepted(m Match) {
	o.Logger.Debug("match accepted",
		"index_a", m.IndexA,
		"index_b", m.IndexB,
		"score", m.Score,
		"reference", m.RecordA.Reference,
		"amount_difference", m.AmountDifference.String(),
	)
}
