package statements

import (
	"math"
	"testing"
	"time"

	"three_statements/pkg/core/classify"
	"three_statements/pkg/core/validate"
	"three_statements/pkg/models"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func row(date time.Time, num int, name string, debit, credit float64) models.LedgerRecord {
	return models.LedgerRecord{Date: date, AccountNumber: num, AccountName: name, Debit: debit, Credit: credit}
}

func glRow(date time.Time, num int, name string, debit, credit float64, txn string) models.LedgerRecord {
	r := row(date, num, name, debit, credit)
	r.TransactionID = txn
	return r
}

func categorize(records []models.LedgerRecord) CategoryMap {
	_, cats := classify.Default().ResolveAll(records)
	return CategoryMap(cats)
}

// twoYearFixture is the worked example: a baseline 2020 snapshot, a 2021
// snapshot, and two balanced 2021 journal entries.
func twoYearFixture() (tb, gl []models.LedgerRecord) {
	tb = []models.LedgerRecord{
		row(day(2020, 12, 31), 1000, "Cash", 5000, 0),
		row(day(2020, 12, 31), 1100, "Accounts Receivable", 2000, 0),
		row(day(2020, 12, 31), 2000, "Accounts Payable", 0, 1500),
		row(day(2020, 12, 31), 3100, "Retained Earnings", 0, 5500),

		row(day(2021, 12, 31), 1000, "Cash", 5500, 0),
		row(day(2021, 12, 31), 1100, "Accounts Receivable", 2200, 0),
		row(day(2021, 12, 31), 2000, "Accounts Payable", 0, 1600),
		row(day(2021, 12, 31), 3100, "Retained Earnings", 0, 6100),
	}
	gl = []models.LedgerRecord{
		glRow(day(2021, 3, 1), 1000, "Cash", 10000, 0, "T1"),
		glRow(day(2021, 3, 1), 4000, "Revenue", 0, 10000, "T1"),
		glRow(day(2021, 6, 1), 5000, "Cost of Goods Sold", 6000, 0, "T2"),
		glRow(day(2021, 6, 1), 1200, "Inventory", 0, 6000, "T2"),
	}
	return tb, gl
}

func TestRepresentativeSnapshotsLatestDateWins(t *testing.T) {
	tb := []models.LedgerRecord{
		row(day(2021, 6, 30), 1000, "Cash", 4800, 0),
		row(day(2021, 12, 31), 1000, "Cash", 5500, 0),
		row(day(2020, 12, 31), 1000, "Cash", 5000, 0),
	}
	snaps := RepresentativeSnapshots(tb)
	if len(snaps[2021]) != 1 || snaps[2021][0].Debit != 5500 {
		t.Errorf("2021 snapshot = %v, want the December row only", snaps[2021])
	}
	if len(snaps[2020]) != 1 {
		t.Errorf("2020 snapshot = %v", snaps[2020])
	}
}

func TestWorkedExampleEndToEnd(t *testing.T) {
	tb, gl := twoYearFixture()
	cats := categorize(append(append([]models.LedgerRecord(nil), tb...), gl...))
	window := models.YearWindow{BaselineYear: 2020, StatementYears: []int{2021}}

	sets, baseline := Build(window, tb, gl, cats)
	if len(sets) != 1 {
		t.Fatalf("expected 1 statement set, got %d", len(sets))
	}
	set := sets[0]

	is := set.Income
	if is.Revenue != 10000 || is.COGS != 6000 || is.GrossProfit != 4000 {
		t.Errorf("IS revenue %v cogs %v gross %v, want 10000/6000/4000", is.Revenue, is.COGS, is.GrossProfit)
	}
	if is.NetIncome != 4000 {
		t.Errorf("net income %v, want 4000", is.NetIncome)
	}

	cf := set.CashFlow
	if set.CashFlowStatus != models.CashFlowComplete || cf == nil {
		t.Fatalf("cash flow status %s", set.CashFlowStatus)
	}
	// CFO = 4000 - ΔAR(200) + ΔAP(100) = 3900; dividends = NI - ΔRE = 3400.
	if cf.CFO != 3900 {
		t.Errorf("CFO %v, want 3900", cf.CFO)
	}
	if cf.DividendsPaid != 3400 {
		t.Errorf("dividends %v, want 3400", cf.DividendsPaid)
	}
	if cf.CFF != -3400 {
		t.Errorf("CFF %v, want -3400", cf.CFF)
	}
	if cf.NetCashChange != 500 || cf.EndingCash != 5500 {
		t.Errorf("net change %v ending %v, want 500/5500", cf.NetCashChange, cf.EndingCash)
	}

	rec := validate.Reconcile(set.Balance, baseline, cf, 0.01)
	if !rec.Passed() {
		t.Errorf("reconciliation failed: balance residual %v, cash residual %v", rec.BalanceResidual, rec.CashResidual)
	}
}

func TestMissingBaselineARIsolatesCashTieOut(t *testing.T) {
	tb, gl := twoYearFixture()

	// Drop the AR row from the baseline snapshot. The 2021 AR delta is now
	// overstated by the full opening balance, which corrupts the cash-flow
	// path while leaving the 2021 balance sheet untouched.
	var broken []models.LedgerRecord
	for _, r := range tb {
		if r.Year() == 2020 && r.AccountNumber == 1100 {
			continue
		}
		broken = append(broken, r)
	}

	cats := categorize(append(append([]models.LedgerRecord(nil), broken...), gl...))
	window := models.YearWindow{BaselineYear: 2020, StatementYears: []int{2021}}
	sets, baseline := Build(window, broken, gl, cats)
	set := sets[0]

	rec := validate.Reconcile(set.Balance, baseline, set.CashFlow, 0.01)
	if !rec.BalancePassed {
		t.Errorf("balance identity should still hold, residual %v", rec.BalanceResidual)
	}
	if rec.CashPassed {
		t.Error("cash tie-out should fail with an incomplete baseline")
	}
	if rec.CashResidual == 0 {
		t.Error("cash residual should be non-zero")
	}
}

func TestIncomeStatementFallsBackToSnapshotFlows(t *testing.T) {
	// No GL: the 2021 snapshot carries pre-closing income accounts.
	tb := []models.LedgerRecord{
		row(day(2021, 12, 31), 4000, "Revenue", 0, 8000),
		row(day(2021, 12, 31), 5000, "Cost of Goods Sold", 3000, 0),
		row(day(2021, 12, 31), 6300, "Marketing Expense", 1000, 0),
	}
	cats := categorize(tb)
	is := BuildIncomeStatement(2021, tb, cats)
	if is.Revenue != 8000 || is.COGS != 3000 || is.MarketingAdmin != 1000 {
		t.Errorf("IS %v/%v/%v, want 8000/3000/1000", is.Revenue, is.COGS, is.MarketingAdmin)
	}
	if is.EBIT != 4000 {
		t.Errorf("EBIT %v, want 4000", is.EBIT)
	}
}

func TestBalanceSheetFoldsPreClosingIncomeIntoRetainedEarnings(t *testing.T) {
	snapshot := []models.LedgerRecord{
		row(day(2021, 12, 31), 1000, "Cash", 7000, 0),
		row(day(2021, 12, 31), 3100, "Retained Earnings", 0, 3000),
		row(day(2021, 12, 31), 4000, "Revenue", 0, 8000),
		row(day(2021, 12, 31), 5000, "Cost of Goods Sold", 4000, 0),
	}
	cats := categorize(snapshot)
	bs := BuildBalanceSheet(2021, snapshot, cats)

	// RE = 3000 + (8000 - 4000) closing fold.
	if bs.RetainedEarnings != 7000 {
		t.Errorf("retained earnings %v, want 7000", bs.RetainedEarnings)
	}
	if residual := bs.TotalAssets() - (bs.TotalLiabilities() + bs.TotalEquity()); math.Abs(residual) > 1e-9 {
		t.Errorf("identity residual %v", residual)
	}
}

func TestCashFlowUsesAccumDepDeltaWithoutDirectLine(t *testing.T) {
	is := &models.IncomeStatement{Year: 2021, NetIncome: 1000}
	prior := &models.BalanceSheet{Year: 2020, Cash: 500, AccumulatedDepreciation: 2000}
	bs := &models.BalanceSheet{Year: 2021, Cash: 2000, AccumulatedDepreciation: 2500}

	cf := BuildCashFlow(is, bs, prior)
	if cf.DepreciationAmortization != 500 {
		t.Errorf("D&A %v, want accum-dep delta 500", cf.DepreciationAmortization)
	}

	is.DepreciationExpense = 450
	cf = BuildCashFlow(is, bs, prior)
	if cf.DepreciationAmortization != 450 {
		t.Errorf("D&A %v, want direct line 450", cf.DepreciationAmortization)
	}
}

func TestNormalizedDisplayCopy(t *testing.T) {
	bs := &models.BalanceSheet{AccountsPayable: -250, LongTermDebt: 1000}
	norm := bs.Normalized()
	if norm.AccountsPayable != 250 {
		t.Errorf("normalized AP %v, want 250", norm.AccountsPayable)
	}
	if bs.AccountsPayable != -250 {
		t.Error("normalization must not mutate the raw sheet")
	}
}
