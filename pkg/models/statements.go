package models

import "math"

// IncomeStatement holds one statement year's P&L. Expense lines are stored
// as positive magnitudes; the derived lines follow fixed accounting
// identities, not configurable formulas.
type IncomeStatement struct {
	Year int `json:"year"`

	Revenue float64 `json:"revenue"`
	COGS    float64 `json:"cogs"`

	DistributionExpenses float64 `json:"distribution_expenses"`
	MarketingAdmin       float64 `json:"marketing_admin"`
	ResearchDev          float64 `json:"research_dev"`
	DepreciationExpense  float64 `json:"depreciation_expense"`

	InterestExpense float64 `json:"interest_expense"`
	TaxExpense      float64 `json:"tax_expense"`

	GrossProfit float64 `json:"gross_profit"`
	TotalOpEx   float64 `json:"total_opex"`
	EBIT        float64 `json:"ebit"`
	EBT         float64 `json:"ebt"`
	NetIncome   float64 `json:"net_income"`
}

// Derive fills the identity lines from the raw lines.
func (is *IncomeStatement) Derive() {
	is.GrossProfit = is.Revenue - is.COGS
	is.TotalOpEx = is.DistributionExpenses + is.MarketingAdmin + is.ResearchDev + is.DepreciationExpense
	is.EBIT = is.GrossProfit - is.TotalOpEx
	is.EBT = is.EBIT - is.InterestExpense
	is.NetIncome = is.EBT - is.TaxExpense
}

// BalanceSheet holds closing balances for one year's representative Trial
// Balance snapshot. Fields are sign-raw: assets are debit-normal nets
// (debit - credit), liabilities and equity are credit-normal nets
// (credit - debit). A liability account that nets to a debit balance is
// therefore negative here; Normalized gives display magnitudes while the
// raw values keep the balance identity exact.
type BalanceSheet struct {
	Year int `json:"year"`

	Cash               float64 `json:"cash"`
	AccountsReceivable float64 `json:"accounts_receivable"`
	Inventory          float64 `json:"inventory"`
	PrepaidExpenses    float64 `json:"prepaid_expenses"`
	OtherCurrentAssets float64 `json:"other_current_assets"`

	PPEGross                float64 `json:"ppe_gross"`
	AccumulatedDepreciation float64 `json:"accumulated_depreciation"` // credit-normal magnitude

	AccountsPayable         float64 `json:"accounts_payable"`
	AccruedPayroll          float64 `json:"accrued_payroll"`
	DeferredRevenue         float64 `json:"deferred_revenue"`
	InterestPayable         float64 `json:"interest_payable"`
	IncomeTaxesPayable      float64 `json:"income_taxes_payable"`
	OtherCurrentLiabilities float64 `json:"other_current_liabilities"`
	LongTermDebt            float64 `json:"long_term_debt"`

	CommonStock      float64 `json:"common_stock"`
	RetainedEarnings float64 `json:"retained_earnings"`
}

// TotalCurrentAssets sums the current asset lines.
func (bs *BalanceSheet) TotalCurrentAssets() float64 {
	return bs.Cash + bs.AccountsReceivable + bs.Inventory + bs.PrepaidExpenses + bs.OtherCurrentAssets
}

// PPENet is gross PP&E less accumulated depreciation.
func (bs *BalanceSheet) PPENet() float64 {
	return bs.PPEGross - bs.AccumulatedDepreciation
}

// TotalAssets sums current assets and net PP&E.
func (bs *BalanceSheet) TotalAssets() float64 {
	return bs.TotalCurrentAssets() + bs.PPENet()
}

// TotalCurrentLiabilities sums the current liability lines.
func (bs *BalanceSheet) TotalCurrentLiabilities() float64 {
	return bs.AccountsPayable + bs.AccruedPayroll + bs.DeferredRevenue +
		bs.InterestPayable + bs.IncomeTaxesPayable + bs.OtherCurrentLiabilities
}

// TotalLiabilities sums current liabilities and long-term debt.
func (bs *BalanceSheet) TotalLiabilities() float64 {
	return bs.TotalCurrentLiabilities() + bs.LongTermDebt
}

// TotalEquity sums the equity lines.
func (bs *BalanceSheet) TotalEquity() float64 {
	return bs.CommonStock + bs.RetainedEarnings
}

// Normalized returns a copy with liability and equity lines flipped to
// non-negative magnitudes for display. Reconciliation always runs on the
// raw values, never on the normalized copy.
func (bs *BalanceSheet) Normalized() BalanceSheet {
	out := *bs
	for _, p := range []*float64{
		&out.AccumulatedDepreciation,
		&out.AccountsPayable, &out.AccruedPayroll, &out.DeferredRevenue,
		&out.InterestPayable, &out.IncomeTaxesPayable, &out.OtherCurrentLiabilities,
		&out.LongTermDebt, &out.CommonStock, &out.RetainedEarnings,
	} {
		*p = math.Abs(*p)
	}
	return out
}

// CashFlowStatus marks whether a year's cash flow could be computed.
type CashFlowStatus string

const (
	CashFlowComplete   CashFlowStatus = "Complete"
	CashFlowIncomplete CashFlowStatus = "Incomplete" // no valid prior-year balance sheet
)

// CashFlowStatement is one statement year's indirect-method cash flow.
// Working-capital changes are stored already signed for CFO addition:
// asset deltas negated, liability deltas as-is.
type CashFlowStatement struct {
	Year int `json:"year"`

	NetIncome                float64 `json:"net_income"`
	DepreciationAmortization float64 `json:"depreciation_amortization"`

	ChangeAR              float64 `json:"change_ar"`
	ChangeInventory       float64 `json:"change_inventory"`
	ChangePrepaid         float64 `json:"change_prepaid"`
	ChangeOtherCA         float64 `json:"change_other_current_assets"`
	ChangeAP              float64 `json:"change_ap"`
	ChangeAccruedPayroll  float64 `json:"change_accrued_payroll"`
	ChangeDeferredRevenue float64 `json:"change_deferred_revenue"`
	ChangeInterestPayable float64 `json:"change_interest_payable"`
	ChangeOtherCL         float64 `json:"change_other_current_liabilities"`
	ChangeTaxesPayable    float64 `json:"change_income_taxes_payable"`

	CFO float64 `json:"cfo"`

	Capex float64 `json:"capex"` // negative for spend
	CFI   float64 `json:"cfi"`

	DebtChange    float64 `json:"debt_change"`
	StockIssuance float64 `json:"stock_issuance"`
	DividendsPaid float64 `json:"dividends_paid"` // non-negative magnitude
	CFF           float64 `json:"cff"`

	NetCashChange float64 `json:"net_cash_change"`
	BeginningCash float64 `json:"beginning_cash"`
	EndingCash    float64 `json:"ending_cash"` // BeginningCash + NetCashChange
}

// ReconciliationResult carries the two per-year identity residuals.
type ReconciliationResult struct {
	Year int `json:"year"`

	BalanceResidual  float64 `json:"balance_residual"` // Assets - (Liabilities + Equity)
	BalanceTolerance float64 `json:"balance_tolerance"`
	BalancePassed    bool    `json:"balance_passed"`

	CashResidual  float64 `json:"cash_residual"` // BS cash - (prior cash + net cash change)
	CashTolerance float64 `json:"cash_tolerance"`
	CashPassed    bool    `json:"cash_passed"`
}

// Passed reports whether both identities held.
func (r ReconciliationResult) Passed() bool {
	return r.BalancePassed && r.CashPassed
}

// StatementSet bundles one statement year's output. CashFlow is nil when
// CashFlowStatus is Incomplete; it is never silently zeroed.
type StatementSet struct {
	Year           int                   `json:"year"`
	Income         *IncomeStatement      `json:"income"`
	Balance        *BalanceSheet         `json:"balance"`
	CashFlow       *CashFlowStatement    `json:"cash_flow,omitempty"`
	CashFlowStatus CashFlowStatus        `json:"cash_flow_status"`
	Reconciliation *ReconciliationResult `json:"reconciliation,omitempty"`
}
