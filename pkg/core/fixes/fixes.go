// Package fixes implements the optional, caller-selected corrections applied
// between validation and calculation. Each correction is a typed variant
// resolved by exhaustive matching; there is no string-dispatched fix lookup.
// Corrections only ever remove rows or rewrite account identity; they never
// invent amounts.
package fixes

import (
	"fmt"
	"time"

	"three_statements/pkg/models"
)

// UnclassifiedAccountNumber is the sentinel code missing account numbers are
// rewritten to. It sits outside every default range rule, so the rewritten
// rows land in the unclassified bucket instead of a real line item.
const UnclassifiedAccountNumber = 9999

// Op is one correction operation.
type Op interface {
	isFix()
}

// RemoveMissingDates drops rows carrying the missing-date sentinel.
type RemoveMissingDates struct{}

// RemoveFutureDates drops rows dated after Now.
type RemoveFutureDates struct {
	Now time.Time
}

// RemoveDuplicates drops every occurrence of a row after the first.
type RemoveDuplicates struct{}

// MapUnclassified rewrites missing and out-of-range account numbers to the
// unclassified sentinel so downstream stages see a consistent key.
type MapUnclassified struct{}

// ReassignCategory pins one account number to a category, overriding both
// classifier passes.
type ReassignCategory struct {
	AccountNumber int
	Category      models.AccountCategory
}

func (RemoveMissingDates) isFix() {}
func (RemoveFutureDates) isFix()  {}
func (RemoveDuplicates) isFix()   {}
func (MapUnclassified) isFix()    {}
func (ReassignCategory) isFix()   {}

// FromHint maps a finding's suggested fix to the corresponding operation.
// ReassignCategory carries parameters and has no hint form.
func FromHint(h models.FixHint) (Op, bool) {
	switch h {
	case models.FixRemoveMissingDates:
		return RemoveMissingDates{}, true
	case models.FixRemoveFutureDates:
		return RemoveFutureDates{}, true
	case models.FixRemoveDuplicates:
		return RemoveDuplicates{}, true
	case models.FixMapUnclassified:
		return MapUnclassified{}, true
	}
	return nil, false
}

// Result is the outcome of applying a fix sequence.
type Result struct {
	Records   []models.LedgerRecord
	Overrides map[int]models.AccountCategory // classifier overrides from ReassignCategory
	Changes   []string                       // one human-readable line per applied op
}

// Apply runs the operations in order over a copy of the records. The input
// slice is never mutated; removals renumber rows for subsequent ops, which
// is why fixes run before, not after, the final validation pass.
func Apply(records []models.LedgerRecord, ops []Op) Result {
	out := Result{
		Records:   append([]models.LedgerRecord(nil), records...),
		Overrides: make(map[int]models.AccountCategory),
	}

	for _, op := range ops {
		switch fix := op.(type) {
		case RemoveMissingDates:
			before := len(out.Records)
			out.Records = filter(out.Records, func(r models.LedgerRecord) bool {
				return r.HasDate()
			})
			out.Changes = append(out.Changes, fmt.Sprintf("removed %d row(s) with missing dates", before-len(out.Records)))

		case RemoveFutureDates:
			now := fix.Now
			if now.IsZero() {
				now = time.Now()
			}
			before := len(out.Records)
			out.Records = filter(out.Records, func(r models.LedgerRecord) bool {
				return !r.HasDate() || !r.Date.After(now)
			})
			out.Changes = append(out.Changes, fmt.Sprintf("removed %d future-dated row(s)", before-len(out.Records)))

		case RemoveDuplicates:
			seen := make(map[models.LedgerRecord]bool, len(out.Records))
			before := len(out.Records)
			out.Records = filter(out.Records, func(r models.LedgerRecord) bool {
				if seen[r] {
					return false
				}
				seen[r] = true
				return true
			})
			out.Changes = append(out.Changes, fmt.Sprintf("removed %d duplicate row(s)", before-len(out.Records)))

		case MapUnclassified:
			count := 0
			for i := range out.Records {
				if n := out.Records[i].AccountNumber; n <= 0 || n > models.MaxAccountNumber {
					out.Records[i].AccountNumber = UnclassifiedAccountNumber
					count++
				}
			}
			out.Changes = append(out.Changes, fmt.Sprintf("mapped %d row(s) with missing or invalid account numbers to %d", count, UnclassifiedAccountNumber))

		case ReassignCategory:
			out.Overrides[fix.AccountNumber] = fix.Category
			out.Changes = append(out.Changes, fmt.Sprintf("reassigned account %d to category %s", fix.AccountNumber, fix.Category))
		}
	}

	return out
}

func filter(records []models.LedgerRecord, keep func(models.LedgerRecord) bool) []models.LedgerRecord {
	out := records[:0]
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
