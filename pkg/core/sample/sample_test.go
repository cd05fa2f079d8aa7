package sample

import (
	"math"
	"testing"

	"three_statements/pkg/models"
)

func TestSnapshotsBalanceEveryYear(t *testing.T) {
	tb, _ := Dataset(2020, 3)

	byYear := make(map[int]struct{ debit, credit float64 })
	for _, r := range tb {
		s := byYear[r.Year()]
		s.debit += r.Debit
		s.credit += r.Credit
		byYear[r.Year()] = s
	}

	if len(byYear) != 4 {
		t.Fatalf("expected 4 snapshot years, got %d", len(byYear))
	}
	for year, s := range byYear {
		if math.Abs(s.debit-s.credit) > 1e-9 {
			t.Errorf("year %d snapshot unbalanced: %v vs %v", year, s.debit, s.credit)
		}
	}
}

func TestJournalEntriesBalance(t *testing.T) {
	_, gl := Dataset(2020, 3)

	byTxn := make(map[string]float64)
	for _, r := range gl {
		if r.TransactionID == "" {
			t.Fatalf("GL row without transaction id: %+v", r)
		}
		byTxn[r.TransactionID] += r.Debit - r.Credit
	}
	for id, residual := range byTxn {
		if math.Abs(residual) > 1e-9 {
			t.Errorf("entry %s residual %v", id, residual)
		}
	}
}

func TestRecordsAreSingleSided(t *testing.T) {
	tb, gl := Dataset(2020, 3)
	for _, r := range append(append([]models.LedgerRecord(nil), tb...), gl...) {
		if r.Debit > 0 && r.Credit > 0 {
			t.Errorf("double-sided row: %+v", r)
		}
		if r.Debit < 0 || r.Credit < 0 {
			t.Errorf("negative amount: %+v", r)
		}
	}
}

func TestGrowthAcrossYears(t *testing.T) {
	_, gl := Dataset(2020, 3)

	revenueByYear := make(map[int]float64)
	for _, r := range gl {
		if r.AccountNumber == 4000 {
			revenueByYear[r.Year()] += r.Credit
		}
	}
	if revenueByYear[2022] <= revenueByYear[2021] {
		t.Errorf("revenue should grow: %v", revenueByYear)
	}
}
