package models

// AccountCategory is a standardized financial-statement line item (FSLI).
// The enumeration is closed: every account resolves to exactly one category,
// with Unclassified as the sentinel for accounts no rule matched.
type AccountCategory string

const (
	// Assets
	CatCash                    AccountCategory = "cash"
	CatAccountsReceivable      AccountCategory = "accounts_receivable"
	CatInventory               AccountCategory = "inventory"
	CatPrepaidExpenses         AccountCategory = "prepaid_expenses"
	CatOtherCurrentAssets      AccountCategory = "other_current_assets"
	CatPPEGross                AccountCategory = "ppe_gross"
	CatAccumulatedDepreciation AccountCategory = "accumulated_depreciation"

	// Liabilities
	CatAccountsPayable         AccountCategory = "accounts_payable"
	CatAccruedPayroll          AccountCategory = "accrued_payroll"
	CatDeferredRevenue         AccountCategory = "deferred_revenue"
	CatInterestPayable         AccountCategory = "interest_payable"
	CatIncomeTaxesPayable      AccountCategory = "income_taxes_payable"
	CatOtherCurrentLiabilities AccountCategory = "other_current_liabilities"
	CatLongTermDebt            AccountCategory = "long_term_debt"

	// Equity
	CatCommonStock       AccountCategory = "common_stock"
	CatRetainedEarnings  AccountCategory = "retained_earnings"
	CatDividendsPaid     AccountCategory = "dividends_paid"

	// Income statement
	CatRevenue              AccountCategory = "revenue"
	CatCOGS                 AccountCategory = "cogs"
	CatDistributionExpenses AccountCategory = "distribution_expenses"
	CatMarketingAdmin       AccountCategory = "marketing_admin"
	CatResearchDev          AccountCategory = "research_dev"
	CatDepreciationExpense  AccountCategory = "depreciation_expense"
	CatInterestExpense      AccountCategory = "interest_expense"
	CatTaxExpense           AccountCategory = "tax_expense"

	// Sentinel
	CatUnclassified AccountCategory = "unclassified"
)

// Section partitions categories for statement assembly and sign handling.
type Section string

const (
	SectionAsset     Section = "asset"
	SectionLiability Section = "liability"
	SectionEquity    Section = "equity"
	SectionIncome    Section = "income"
	SectionExpense   Section = "expense"
	SectionNone      Section = "none"
)

var categorySections = map[AccountCategory]Section{
	CatCash:                    SectionAsset,
	CatAccountsReceivable:      SectionAsset,
	CatInventory:               SectionAsset,
	CatPrepaidExpenses:         SectionAsset,
	CatOtherCurrentAssets:      SectionAsset,
	CatPPEGross:                SectionAsset,
	CatAccumulatedDepreciation: SectionAsset, // contra-asset, credit-normal

	CatAccountsPayable:         SectionLiability,
	CatAccruedPayroll:          SectionLiability,
	CatDeferredRevenue:         SectionLiability,
	CatInterestPayable:         SectionLiability,
	CatIncomeTaxesPayable:      SectionLiability,
	CatOtherCurrentLiabilities: SectionLiability,
	CatLongTermDebt:            SectionLiability,

	CatCommonStock:      SectionEquity,
	CatRetainedEarnings: SectionEquity,
	CatDividendsPaid:    SectionEquity, // contra-equity, debit-normal

	CatRevenue:              SectionIncome,
	CatCOGS:                 SectionExpense,
	CatDistributionExpenses: SectionExpense,
	CatMarketingAdmin:       SectionExpense,
	CatResearchDev:          SectionExpense,
	CatDepreciationExpense:  SectionExpense,
	CatInterestExpense:      SectionExpense,
	CatTaxExpense:           SectionExpense,

	CatUnclassified: SectionNone,
}

// Section returns the statement section a category belongs to.
func (c AccountCategory) Section() Section {
	if s, ok := categorySections[c]; ok {
		return s
	}
	return SectionNone
}

// IsBalanceSheet reports whether the category lands on the balance sheet.
func (c AccountCategory) IsBalanceSheet() bool {
	switch c.Section() {
	case SectionAsset, SectionLiability, SectionEquity:
		return true
	}
	return false
}

// CreditNormal reports whether the category's natural balance is a credit.
// Accumulated depreciation is a credit-normal contra-asset; dividends paid
// is a debit-normal contra-equity account.
func (c AccountCategory) CreditNormal() bool {
	if c == CatAccumulatedDepreciation {
		return true
	}
	if c == CatDividendsPaid {
		return false
	}
	switch c.Section() {
	case SectionLiability, SectionEquity, SectionIncome:
		return true
	}
	return false
}

// AllCategories lists every category except the sentinel, in statement order.
func AllCategories() []AccountCategory {
	return []AccountCategory{
		CatCash, CatAccountsReceivable, CatInventory, CatPrepaidExpenses,
		CatOtherCurrentAssets, CatPPEGross, CatAccumulatedDepreciation,
		CatAccountsPayable, CatAccruedPayroll, CatDeferredRevenue,
		CatInterestPayable, CatIncomeTaxesPayable, CatOtherCurrentLiabilities,
		CatLongTermDebt,
		CatCommonStock, CatRetainedEarnings, CatDividendsPaid,
		CatRevenue, CatCOGS, CatDistributionExpenses, CatMarketingAdmin,
		CatResearchDev, CatDepreciationExpense, CatInterestExpense, CatTaxExpense,
	}
}
