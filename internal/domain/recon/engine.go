package recon

import (
	"github.com/shopspring/decimal"
)

// Match is an accepted pairing of one side-A record with one side-B
// record. Once recorded it is permanent: no later step revokes or
// replaces it. Both sides' amounts are kept as independent observations;
// their difference is a first-class field rather than a silent collapse
// to one authoritative value.
type Match struct {
	IndexA  int          `json:"index_a"`
	IndexB  int          `json:"index_b"`
	RecordA Record       `json:"record_a"`
	RecordB Record       `json:"record_b"`
	Score   float64      `json:"score"`
	Factors FactorScores `json:"factors"`

	AmountDifference decimal.Decimal `json:"amount_difference"`
}

// Result is the complete outcome of one reconciliation. Every input
// index appears in exactly one of Matches or the unmatched list for its
// side. Duplicate maps are advisory and never alter matching.
type Result struct {
	Matches    []Match `json:"matches"`
	UnmatchedA []int   `json:"unmatched_a"`
	UnmatchedB []int   `json:"unmatched_b"`

	DuplicatesA map[int][]int `json:"duplicates_a"`
	DuplicatesB map[int][]int `json:"duplicates_b"`

	Metrics Metrics `json:"metrics"`
}

// Engine reconciles two record sets. It is stateless across invocations
// and safe for concurrent use as long as each call gets its own inputs.
type Engine struct {
	config   Config
	observer Observer
}

// NewEngine creates an engine after validating the configuration.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{config: cfg, observer: nopObserver{}}, nil
}

// SetObserver installs a telemetry callback. Passing nil restores the
// no-op observer.
func (e *Engine) SetObserver(o Observer) {
	if o == nil {
		e.observer = nopObserver{}
		return
	}
	e.observer = o
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Reconcile pairs sideA records against sideB records and returns the
// full result. The call either fully succeeds or fails entirely; no
// partial results are returned and no record is silently dropped.
//
// Matching is a deterministic greedy single pass over side A in input
// order: for each A record every unconsumed B record is scored, the
// best eligible candidate wins (ties go to the earliest B index), and
// the commitment is irrevocable. This is an O(n*m) approximation of
// optimal weighted bipartite matching, chosen for explainability over
// global optimality.
func (e *Engine) Reconcile(sideA, sideB []Record) (*Result, error) {
	if err := validateRecords(SideA, sideA); err != nil {
		return nil, err
	}
	if err := validateRecords(SideB, sideB); err != nil {
		return nil, err
	}

	// Own copies: the consumed-index bookkeeping below is local to this
	// call, and callers keep their slices untouched.
	a := make([]Record, len(sideA))
	copy(a, sideA)
	b := make([]Record, len(sideB))
	copy(b, sideB)
	for i := range a {
		a[i].Side = SideA
	}
	for i := range b {
		b[i].Side = SideB
	}

	result := &Result{
		Matches:     make([]Match, 0),
		DuplicatesA: e.findDuplicates(a),
		DuplicatesB: e.findDuplicates(b),
	}

	consumedA := make([]bool, len(a))
	consumedB := make([]bool, len(b))

	for i := range a {
		bestIdx := -1
		bestScore := -1.0
		var bestFactors FactorScores

		for j := range b {
			if consumedB[j] {
				continue
			}

			total, factors := e.score(a[i], b[j])
			e.observer.Comparison(i, j, total, factors)

			if total < e.config.MinMatchThreshold {
				continue
			}
			// Strict improvement keeps the earliest B index on ties.
			if total > bestScore {
				bestIdx = j
				bestScore = total
				bestFactors = factors
			}
		}

		if bestIdx < 0 {
			continue
		}

		m := Match{
			IndexA:           i,
			IndexB:           bestIdx,
			RecordA:          a[i],
			RecordB:          b[bestIdx],
			Score:            bestScore,
			Factors:          bestFactors,
			AmountDifference: a[i].Amount.Sub(b[bestIdx].Amount).Abs(),
		}
		result.Matches = append(result.Matches, m)
		consumedA[i] = true
		consumedB[bestIdx] = true
		e.observer.MatchAccepted(m)
	}

	result.UnmatchedA = unconsumedIndices(consumedA)
	result.UnmatchedB = unconsumedIndices(consumedB)
	result.Metrics = e.buildMetrics(a, b, result)

	return result, nil
}

func unconsumedIndices(consumed []bool) []int {
	out := make([]int, 0, len(consumed))
	for i, used := range consumed {
		if !used {
			out = append(out, i)
		}
	}
	return out
}
