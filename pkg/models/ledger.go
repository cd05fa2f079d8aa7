package models

import (
	"time"
)

// LedgerRecord is one row of either ledger (Trial Balance or General Ledger).
// A zero Date marks an unparseable or missing date; the validator surfaces it,
// the normalizer never drops the row silently.
type LedgerRecord struct {
	Date          time.Time `json:"date"`
	AccountNumber int       `json:"account_number"`
	AccountName   string    `json:"account_name"`
	Debit         float64   `json:"debit"`
	Credit        float64   `json:"credit"`
	TransactionID string    `json:"transaction_id,omitempty"`
}

// HasDate reports whether the record carries a parseable date.
func (r LedgerRecord) HasDate() bool {
	return !r.Date.IsZero()
}

// Year returns the calendar year of the record, or 0 for the missing-date sentinel.
func (r LedgerRecord) Year() int {
	if r.Date.IsZero() {
		return 0
	}
	return r.Date.Year()
}

// Net returns the debit-normal net amount (debit - credit).
func (r LedgerRecord) Net() float64 {
	return r.Debit - r.Credit
}

// MaxAccountNumber is the largest account code a chart of accounts uses;
// codes outside [1, MaxAccountNumber] are flagged as invalid and can be
// remapped to the unclassified sentinel.
const MaxAccountNumber = 99999

// AccountKey identifies a distinct account as seen in the input data.
// Classification is keyed on the pair, not just the number, because the
// name-based pass runs before the range-based pass.
type AccountKey struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// AccountResolution records how one account was classified and which pass
// decided it, for unclassified auditing by the caller.
type AccountResolution struct {
	Account  AccountKey      `json:"account"`
	Category AccountCategory `json:"category"`
	Pass     string          `json:"pass"` // "name", "range", "override", or "none"
}

// YearWindow is the validated year layout of a run: a contiguous block of
// at least four years where the earliest supplies opening balances only.
type YearWindow struct {
	BaselineYear   int   `json:"baseline_year"`
	StatementYears []int `json:"statement_years"` // ascending
}

// Contains reports whether y is the baseline year or a statement year.
func (w YearWindow) Contains(y int) bool {
	if y == w.BaselineYear {
		return true
	}
	for _, sy := range w.StatementYears {
		if sy == y {
			return true
		}
	}
	return false
}
