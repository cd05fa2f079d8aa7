// Package statements turns classified, validated ledger records into the
// per-year three-statement model. Income statements aggregate flows, balance
// sheets read the representative Trial Balance snapshot per year, and cash
// flows apply the indirect method against the prior year's closing sheet.
// The derived lines are fixed accounting identities; nothing here is
// configurable per run beyond the classification map itself.
package statements

import (
	"math"
	"sort"
	"time"

	"three_statements/pkg/models"
)

// CategoryMap resolves an account to its line-item category.
type CategoryMap map[models.AccountKey]models.AccountCategory

func (m CategoryMap) category(r models.LedgerRecord) models.AccountCategory {
	if cat, ok := m[models.AccountKey{Number: r.AccountNumber, Name: r.AccountName}]; ok {
		return cat
	}
	return models.CatUnclassified
}

// RepresentativeSnapshots picks one Trial Balance snapshot per calendar
// year: the rows of the latest date within the year. Earlier snapshots in
// the same year are interim states and never feed a balance sheet.
func RepresentativeSnapshots(tb []models.LedgerRecord) map[int][]models.LedgerRecord {
	latest := make(map[int]time.Time)
	for _, r := range tb {
		if !r.HasDate() {
			continue
		}
		y := r.Year()
		if r.Date.After(latest[y]) {
			latest[y] = r.Date
		}
	}

	snapshots := make(map[int][]models.LedgerRecord, len(latest))
	for _, r := range tb {
		if r.HasDate() && r.Date.Equal(latest[r.Year()]) {
			snapshots[r.Year()] = append(snapshots[r.Year()], r)
		}
	}
	return snapshots
}

// BuildIncomeStatement aggregates one statement year's P&L. flows should be
// the GL rows of the year when a General Ledger is available, else the
// year's representative TB snapshot rows; revenue sums credit-normal,
// expenses debit-normal, and unclassified amounts contribute to no line.
func BuildIncomeStatement(year int, flows []models.LedgerRecord, cats CategoryMap) *models.IncomeStatement {
	is := &models.IncomeStatement{Year: year}

	for _, r := range flows {
		switch cats.category(r) {
		case models.CatRevenue:
			is.Revenue += r.Credit - r.Debit
		case models.CatCOGS:
			is.COGS += r.Net()
		case models.CatDistributionExpenses:
			is.DistributionExpenses += r.Net()
		case models.CatMarketingAdmin:
			is.MarketingAdmin += r.Net()
		case models.CatResearchDev:
			is.ResearchDev += r.Net()
		case models.CatDepreciationExpense:
			is.DepreciationExpense += r.Net()
		case models.CatInterestExpense:
			is.InterestExpense += r.Net()
		case models.CatTaxExpense:
			is.TaxExpense += r.Net()
		}
	}

	is.Derive()
	return is
}

// BuildBalanceSheet aggregates one year's closing balances from its
// representative snapshot. Values stay sign-raw: assets as debit-normal
// nets, liabilities and equity as credit-normal nets.
//
// Income-section accounts appearing in a pre-closing snapshot fold into
// retained earnings, exactly as a closing entry would; dividends accounts
// fold in the same way. A post-closing snapshot carries neither, so the
// fold is a no-op there.
func BuildBalanceSheet(year int, snapshot []models.LedgerRecord, cats CategoryMap) *models.BalanceSheet {
	bs := &models.BalanceSheet{Year: year}

	for _, r := range snapshot {
		debitNet := r.Net()
		creditNet := -debitNet

		switch cats.category(r) {
		case models.CatCash:
			bs.Cash += debitNet
		case models.CatAccountsReceivable:
			bs.AccountsReceivable += debitNet
		case models.CatInventory:
			bs.Inventory += debitNet
		case models.CatPrepaidExpenses:
			bs.PrepaidExpenses += debitNet
		case models.CatOtherCurrentAssets:
			bs.OtherCurrentAssets += debitNet
		case models.CatPPEGross:
			bs.PPEGross += debitNet
		case models.CatAccumulatedDepreciation:
			bs.AccumulatedDepreciation += creditNet

		case models.CatAccountsPayable:
			bs.AccountsPayable += creditNet
		case models.CatAccruedPayroll:
			bs.AccruedPayroll += creditNet
		case models.CatDeferredRevenue:
			bs.DeferredRevenue += creditNet
		case models.CatInterestPayable:
			bs.InterestPayable += creditNet
		case models.CatIncomeTaxesPayable:
			bs.IncomeTaxesPayable += creditNet
		case models.CatOtherCurrentLiabilities:
			bs.OtherCurrentLiabilities += creditNet
		case models.CatLongTermDebt:
			bs.LongTermDebt += creditNet

		case models.CatCommonStock:
			bs.CommonStock += creditNet
		case models.CatRetainedEarnings,
			models.CatDividendsPaid,
			models.CatRevenue, models.CatCOGS,
			models.CatDistributionExpenses, models.CatMarketingAdmin,
			models.CatResearchDev, models.CatDepreciationExpense,
			models.CatInterestExpense, models.CatTaxExpense:
			bs.RetainedEarnings += creditNet
		}
	}

	return bs
}

// BuildCashFlow derives one statement year's indirect-method cash flow from
// its income statement and the two adjacent balance sheets. The prior sheet
// is an explicit input; there is no hidden carry-forward state.
func BuildCashFlow(is *models.IncomeStatement, bs, prior *models.BalanceSheet) *models.CashFlowStatement {
	cf := &models.CashFlowStatement{
		Year:      bs.Year,
		NetIncome: is.NetIncome,
	}

	// Non-cash addback: the accumulated-depreciation delta, unless the P&L
	// carries a direct depreciation line.
	cf.DepreciationAmortization = bs.AccumulatedDepreciation - prior.AccumulatedDepreciation
	if is.DepreciationExpense != 0 {
		cf.DepreciationAmortization = is.DepreciationExpense
	}

	// Working-capital deltas, stored pre-signed for CFO addition: growth in
	// an asset consumes cash, growth in a liability frees it.
	cf.ChangeAR = -(bs.AccountsReceivable - prior.AccountsReceivable)
	cf.ChangeInventory = -(bs.Inventory - prior.Inventory)
	cf.ChangePrepaid = -(bs.PrepaidExpenses - prior.PrepaidExpenses)
	cf.ChangeOtherCA = -(bs.OtherCurrentAssets - prior.OtherCurrentAssets)
	cf.ChangeAP = bs.AccountsPayable - prior.AccountsPayable
	cf.ChangeAccruedPayroll = bs.AccruedPayroll - prior.AccruedPayroll
	cf.ChangeDeferredRevenue = bs.DeferredRevenue - prior.DeferredRevenue
	cf.ChangeInterestPayable = bs.InterestPayable - prior.InterestPayable
	cf.ChangeTaxesPayable = bs.IncomeTaxesPayable - prior.IncomeTaxesPayable
	cf.ChangeOtherCL = bs.OtherCurrentLiabilities - prior.OtherCurrentLiabilities

	cf.CFO = cf.NetIncome + cf.DepreciationAmortization +
		cf.ChangeAR + cf.ChangeInventory + cf.ChangePrepaid + cf.ChangeOtherCA +
		cf.ChangeAP + cf.ChangeAccruedPayroll + cf.ChangeDeferredRevenue +
		cf.ChangeInterestPayable + cf.ChangeTaxesPayable + cf.ChangeOtherCL

	// Capex is the increase in gross PP&E; disposals are not modeled.
	cf.Capex = -(bs.PPEGross - prior.PPEGross)
	cf.CFI = cf.Capex

	cf.DebtChange = bs.LongTermDebt - prior.LongTermDebt
	cf.StockIssuance = bs.CommonStock - prior.CommonStock
	cf.DividendsPaid = math.Max(0, is.NetIncome-(bs.RetainedEarnings-prior.RetainedEarnings))
	cf.CFF = cf.DebtChange + cf.StockIssuance - cf.DividendsPaid

	cf.NetCashChange = cf.CFO + cf.CFI + cf.CFF
	cf.BeginningCash = prior.Cash
	cf.EndingCash = cf.BeginningCash + cf.NetCashChange

	return cf
}

// Build computes the full multi-year model for a validated year window.
// Balance sheets are computed for every year including the baseline; income
// statements and cash flows only for the statement years. Cash flows run in
// ascending year order because each needs its predecessor's closing sheet.
// The returned baseline sheet is the internal predecessor for the first
// statement year and is not part of the statement sets.
func Build(window models.YearWindow, tb, gl []models.LedgerRecord, cats CategoryMap) ([]models.StatementSet, *models.BalanceSheet) {
	snapshots := RepresentativeSnapshots(tb)

	glByYear := make(map[int][]models.LedgerRecord)
	for _, r := range gl {
		if r.HasDate() {
			glByYear[r.Year()] = append(glByYear[r.Year()], r)
		}
	}

	sheets := make(map[int]*models.BalanceSheet, len(window.StatementYears)+1)
	sheets[window.BaselineYear] = BuildBalanceSheet(window.BaselineYear, snapshots[window.BaselineYear], cats)
	for _, year := range window.StatementYears {
		sheets[year] = BuildBalanceSheet(year, snapshots[year], cats)
	}

	years := append([]int(nil), window.StatementYears...)
	sort.Ints(years)

	sets := make([]models.StatementSet, 0, len(years))
	for _, year := range years {
		flows := glByYear[year]
		if len(flows) == 0 {
			flows = snapshots[year]
		}
		is := BuildIncomeStatement(year, flows, cats)

		set := models.StatementSet{
			Year:           year,
			Income:         is,
			Balance:        sheets[year],
			CashFlowStatus: models.CashFlowIncomplete,
		}
		if prior := sheets[year-1]; prior != nil {
			set.CashFlow = BuildCashFlow(is, sheets[year], prior)
			set.CashFlowStatus = models.CashFlowComplete
		}
		sets = append(sets, set)
	}

	return sets, sheets[window.BaselineYear]
}
