// Package recon implements the reconciliation engine that pairs
// transactions from two independently produced sources (for example
// authority-reported invoices against an internal purchase ledger)
// which share no common identifier.
//
// The engine consumes two ordered slices of normalized records, scores
// every candidate pairing on reference, amount, date and vendor
// similarity, commits one-to-one matches greedily, flags near-duplicates
// within each side, and summarizes the outcome into financial metrics.
// One call to Reconcile is a complete, stateless computation:
//
//	engine, err := recon.NewEngine(recon.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	result, err := engine.Reconcile(sideA, sideB)
package recon

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Side identifies which source a record came from.
type Side string

const (
	// SideA is the first source, e.g. authority-reported invoices.
	SideA Side = "A"
	// SideB is the second source, e.g. the internal ledger.
	SideB Side = "B"
)

// Date is a calendar date that marshals as YYYY-MM-DD. Reconciliation
// only cares about days, never times of day.
type Date struct {
	time.Time
}

// NewDate creates a Date for the given calendar day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON encodes the date as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// UnmarshalJSON decodes a quoted YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s: expected quoted YYYY-MM-DD", s)
	}
	t, err := time.Parse("2006-01-02", s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("invalid date %s: %w", s, err)
	}
	d.Time = t
	return nil
}

// TaxBreakdown carries the optional per-head tax amounts that some
// sources report alongside the invoice total. The engine passes these
// through untouched; they are not matching evidence.
type TaxBreakdown struct {
	TaxableValue decimal.Decimal `json:"taxable_value"`
	IGST         decimal.Decimal `json:"igst"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
}

// Record is one normalized transaction handed to the engine. Ingestion
// is expected to have already mapped source columns onto these fields,
// uppercased the vendor and reference, and dropped non-positive or
// unparseable rows. Records are immutable once handed to the engine.
type Record struct {
	Side      Side            `json:"side"`
	Date      Date            `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Vendor    string          `json:"vendor"`
	Reference string          `json:"reference"`

	Tax *TaxBreakdown `json:"tax,omitempty"`

	// Extra is the opaque passthrough of original source fields,
	// carried for reviewers and never consulted by the engine.
	Extra map[string]any `json:"extra,omitempty"`
}

// validateRecords rejects the whole invocation on the first record
// missing a required field. Silently defaulting would corrupt the
// financial totals downstream.
func validateRecords(side Side, records []Record) error {
	for i, r := range records {
		switch {
		case r.Date.IsZero():
			return &InvalidInputError{Side: side, Index: i, Field: "date"}
		case !r.Amount.IsPositive():
			return &InvalidInputError{Side: side, Index: i, Field: "amount"}
		case r.Vendor == "":
			return &InvalidInputError{Side: side, Index: i, Field: "vendor"}
		}
	}
	return nil
}
