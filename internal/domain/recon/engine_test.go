package recon

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to create a normalized test record
func makeRecord(date Date, amount, vendor, reference string) Record {
	return Record{
		Date:      date,
		Amount:    decimal.RequireFromString(amount),
		Vendor:    vendor,
		Reference: reference,
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(DefaultConfig())
	require.NoError(t, err)
	return engine
}

func TestReconcile_PerfectMatch(t *testing.T) {
	// Arrange
	engine := newTestEngine(t)
	sideA := []Record{makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001")}
	sideB := []Record{makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001")}

	// Act
	result, err := engine.Reconcile(sideA, sideB)

	// Assert
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Empty(t, result.UnmatchedA)
	assert.Empty(t, result.UnmatchedB)

	match := result.Matches[0]
	assert.Equal(t, 0, match.IndexA)
	assert.Equal(t, 0, match.IndexB)
	assert.GreaterOrEqual(t, match.Score, engine.Config().HighConfidenceMin)
	assert.InDelta(t, engine.Config().MaxScore(), match.Score, 0.001)
	assert.True(t, match.AmountDifference.IsZero())
}

func TestReconcile_DateOutsideWindowStillMatches(t *testing.T) {
	// A 44-day gap contributes no date evidence, but exact reference and
	// amount alone clear the minimum threshold.
	engine := newTestEngine(t)
	sideA := []Record{makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001")}
	sideB := []Record{makeRecord(NewDate(2025, 10, 15), "1000", "ACME", "INV001")}

	result, err := engine.Reconcile(sideA, sideB)

	require.NoError(t, err)
	require.Len(t, result.Matches, 1)

	match := result.Matches[0]
	assert.Equal(t, 0.0, match.Factors.Date)
	assert.GreaterOrEqual(t, match.Score, engine.Config().MinMatchThreshold)
	assert.Less(t, match.Score, engine.Config().MaxScore())
}

func TestReconcile_DuplicateSideARecords(t *testing.T) {
	// Two near-identical A records three days apart compete for one B
	// record: the earlier-ordered one wins, the other stays unmatched,
	// and both are flagged as mutual near-duplicates.
	engine := newTestEngine(t)
	sideA := []Record{
		makeRecord(NewDate(2025, 9, 1), "500", "ACME", "INV100"),
		makeRecord(NewDate(2025, 9, 4), "500", "ACME", "INV100"),
	}
	sideB := []Record{makeRecord(NewDate(2025, 9, 1), "500", "ACME", "INV100")}

	result, err := engine.Reconcile(sideA, sideB)

	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, 0, result.Matches[0].IndexA)
	assert.Equal(t, []int{1}, result.UnmatchedA)
	assert.Empty(t, result.UnmatchedB)

	assert.Equal(t, []int{1}, result.DuplicatesA[0])
	assert.Equal(t, []int{0}, result.DuplicatesA[1])
	assert.Empty(t, result.DuplicatesB)
}

func TestReconcile_EmptySideB(t *testing.T) {
	// Arrange
	engine := newTestEngine(t)
	sideA := []Record{
		makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001"),
		makeRecord(NewDate(2025, 9, 2), "250.50", "GLOBEX", "INV002"),
	}

	// Act
	result, err := engine.Reconcile(sideA, nil)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, result.Matches)
	assert.Equal(t, []int{0, 1}, result.UnmatchedA)
	assert.Empty(t, result.UnmatchedB)

	metrics := result.Metrics
	assert.Equal(t, 0, metrics.TotalMatches)
	assert.True(t, metrics.MatchedSideATotal.IsZero())
	assert.True(t, metrics.MatchedSideBTotal.IsZero())
	assert.True(t, metrics.UnmatchedSideATotal.Equal(decimal.RequireFromString("1250.50")))
	assert.True(t, metrics.UnmatchedSideATotal.Equal(metrics.SideATotal))
}

func TestReconcile_TieBreaksOnEarliestSideBIndex(t *testing.T) {
	engine := newTestEngine(t)
	sideA := []Record{makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001")}
	sideB := []Record{
		makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001"),
		makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001"),
	}

	result, err := engine.Reconcile(sideA, sideB)

	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, 0, result.Matches[0].IndexB)
	assert.Equal(t, []int{1}, result.UnmatchedB)
}

func TestReconcile_AcceptanceIsIrrevocable(t *testing.T) {
	// The first A record claims the only B record even though the second
	// A record would have scored higher against it.
	engine := newTestEngine(t)
	sideA := []Record{
		makeRecord(NewDate(2025, 9, 1), "1020", "ACME", "INV001"),
		makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001"),
	}
	sideB := []Record{makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001")}

	result, err := engine.Reconcile(sideA, sideB)

	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, 0, result.Matches[0].IndexA)
	assert.Equal(t, []int{1}, result.UnmatchedA)
}

func TestReconcile_PartitionInvariant(t *testing.T) {
	engine := newTestEngine(t)
	sideA := []Record{
		makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001"),
		makeRecord(NewDate(2025, 9, 5), "730", "GLOBEX", "INV007"),
		makeRecord(NewDate(2025, 9, 9), "88.20", "INITECH", ""),
		makeRecord(NewDate(2025, 9, 12), "450", "HOOLI", "INV442"),
	}
	sideB := []Record{
		makeRecord(NewDate(2025, 9, 2), "1000", "ACME", "INV001"),
		makeRecord(NewDate(2025, 9, 20), "9999", "UMBRELLA", "ZZZ999"),
		makeRecord(NewDate(2025, 9, 11), "449.50", "HOOLI", "INV442"),
	}

	result, err := engine.Reconcile(sideA, sideB)
	require.NoError(t, err)

	seenA := make(map[int]int)
	seenB := make(map[int]int)
	for _, m := range result.Matches {
		seenA[m.IndexA]++
		seenB[m.IndexB]++
	}
	for _, i := range result.UnmatchedA {
		seenA[i]++
	}
	for _, i := range result.UnmatchedB {
		seenB[i]++
	}

	// Every index lands in exactly one bucket.
	require.Len(t, seenA, len(sideA))
	require.Len(t, seenB, len(sideB))
	for i, count := range seenA {
		assert.Equal(t, 1, count, "side A index %d", i)
	}
	for i, count := range seenB {
		assert.Equal(t, 1, count, "side B index %d", i)
	}

	assert.Equal(t, len(sideA), len(result.Matches)+len(result.UnmatchedA))
	assert.Equal(t, len(sideB), len(result.Matches)+len(result.UnmatchedB))
}

func TestReconcile_Deterministic(t *testing.T) {
	engine := newTestEngine(t)
	sideA := []Record{
		makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001"),
		makeRecord(NewDate(2025, 9, 3), "512.75", "GLOBEX", "INV992"),
		makeRecord(NewDate(2025, 9, 3), "512.75", "GLOBEX", "INV993"),
	}
	sideB := []Record{
		makeRecord(NewDate(2025, 9, 4), "512.80", "GLOBEX", "INV992"),
		makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001"),
	}

	first, err := engine.Reconcile(sideA, sideB)
	require.NoError(t, err)
	second, err := engine.Reconcile(sideA, sideB)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestReconcile_ThresholdMonotonicity(t *testing.T) {
	// Independent pairs with distinct score levels: raising the minimum
	// threshold only removes matches, never adds any.
	sideA := []Record{
		makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001"),   // perfect pair
		makeRecord(NewDate(2025, 9, 5), "200", "GLOBEX", "INV500"),  // amount-only pair
	}
	sideB := []Record{
		makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001"),
		makeRecord(NewDate(2025, 9, 5), "200", "STARKIND", "PO-88"),
	}

	lowCfg := DefaultConfig()
	lowCfg.MinMatchThreshold = 0.30
	lowEngine, err := NewEngine(lowCfg)
	require.NoError(t, err)

	highCfg := DefaultConfig()
	highCfg.MinMatchThreshold = 0.90
	highEngine, err := NewEngine(highCfg)
	require.NoError(t, err)

	lowResult, err := lowEngine.Reconcile(sideA, sideB)
	require.NoError(t, err)
	highResult, err := highEngine.Reconcile(sideA, sideB)
	require.NoError(t, err)

	assert.Len(t, lowResult.Matches, 2)
	assert.Len(t, highResult.Matches, 1)

	lowPairs := make(map[[2]int]bool)
	for _, m := range lowResult.Matches {
		lowPairs[[2]int{m.IndexA, m.IndexB}] = true
	}
	for _, m := range highResult.Matches {
		assert.True(t, lowPairs[[2]int{m.IndexA, m.IndexB}],
			"match (%d,%d) appeared only at the higher threshold", m.IndexA, m.IndexB)
	}
}

func TestReconcile_InputsNotMutated(t *testing.T) {
	engine := newTestEngine(t)
	sideA := []Record{makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001")}
	sideB := []Record{makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001")}

	_, err := engine.Reconcile(sideA, sideB)
	require.NoError(t, err)

	// Side tags are set on the engine's own copies only.
	assert.Equal(t, Side(""), sideA[0].Side)
	assert.Equal(t, Side(""), sideB[0].Side)
}

func TestReconcile_RejectsInvalidRecords(t *testing.T) {
	engine := newTestEngine(t)
	valid := makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001")

	tests := []struct {
		name      string
		bad       Record
		wantField string
	}{
		{
			name:      "zero date",
			bad:       Record{Amount: decimal.NewFromInt(10), Vendor: "ACME"},
			wantField: "date",
		},
		{
			name:      "non-positive amount",
			bad:       Record{Date: NewDate(2025, 9, 1), Amount: decimal.Zero, Vendor: "ACME"},
			wantField: "amount",
		},
		{
			name:      "missing vendor",
			bad:       Record{Date: NewDate(2025, 9, 1), Amount: decimal.NewFromInt(10)},
			wantField: "vendor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Reconcile([]Record{valid, tt.bad}, []Record{valid})

			var invalidErr *InvalidInputError
			require.ErrorAs(t, err, &invalidErr)
			assert.Equal(t, SideA, invalidErr.Side)
			assert.Equal(t, 1, invalidErr.Index)
			assert.Equal(t, tt.wantField, invalidErr.Field)
		})
	}
}

func TestReconcile_RejectsInvalidSideB(t *testing.T) {
	engine := newTestEngine(t)
	valid := makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001")
	bad := Record{Date: NewDate(2025, 9, 1), Amount: decimal.NewFromInt(-5), Vendor: "ACME"}

	_, err := engine.Reconcile([]Record{valid}, []Record{bad})

	var invalidErr *InvalidInputError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, SideB, invalidErr.Side)
	assert.Equal(t, 0, invalidErr.Index)
}

func TestNewEngine_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinMatchThreshold = 1.5

	_, err := NewEngine(cfg)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "min_match_threshold", cfgErr.Field)
}

func TestNewEngine_RejectsNegativeWindow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DateWindowDays = -1

	_, err := NewEngine(cfg)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "date_window_days", cfgErr.Field)
}

type recordingObserver struct {
	comparisons int
	accepted    []Match
}

func (r *recordingObserver) Comparison(int, int, float64, FactorScores) { r.comparisons++ }
func (r *recordingObserver) MatchAccepted(m Match)                      { r.accepted = append(r.accepted, m) }

func TestReconcile_ObserverSeesDecisions(t *testing.T) {
	engine := newTestEngine(t)
	obs := &recordingObserver{}
	engine.SetObserver(obs)

	sideA := []Record{
		makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001"),
		makeRecord(NewDate(2025, 9, 2), "600", "GLOBEX", "INV002"),
	}
	sideB := []Record{
		makeRecord(NewDate(2025, 9, 1), "1000", "ACME", "INV001"),
		makeRecord(NewDate(2025, 9, 2), "600", "GLOBEX", "INV002"),
	}

	result, err := engine.Reconcile(sideA, sideB)
	require.NoError(t, err)

	// First A record scans both B records; the second scans only the one
	// left unconsumed.
	assert.Equal(t, 3, obs.comparisons)
	assert.Len(t, obs.accepted, len(result.Matches))

	lateA := time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, lateA, obs.accepted[1].RecordA.Date.Time)
}
