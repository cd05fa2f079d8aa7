package classify

import "three_statements/pkg/models"

// DefaultNameRules is the standard ordered pattern table. Order carries the
// disambiguation: specific phrases ("interest payable", "deferred revenue",
// "cost of revenue") sit above the generic rules whose patterns they contain.
func DefaultNameRules() []NameRule {
	return []NameRule{
		{models.CatAccumulatedDepreciation, []string{
			"accumulated depreciation", "accum depreciation", "accum dep", "accumulated amortization",
		}},
		{models.CatInterestPayable, []string{"interest payable", "accrued interest"}},
		{models.CatIncomeTaxesPayable, []string{
			"income taxes payable", "income tax payable", "taxes payable", "tax payable",
		}},
		{models.CatAccruedPayroll, []string{
			"accrued payroll", "wages payable", "salaries payable", "accrued wages", "payroll liabilities",
		}},
		{models.CatDeferredRevenue, []string{
			"deferred revenue", "unearned revenue", "customer deposits",
		}},
		{models.CatAccountsPayable, []string{
			"accounts payable", "trade payables", "trade payable", "ap", "a p",
		}},
		{models.CatAccountsReceivable, []string{
			"accounts receivable", "trade receivables", "trade receivable", "receivables", "receivable", "ar", "a r",
		}},
		{models.CatLongTermDebt, []string{
			"long term debt", "notes payable", "bonds payable", "bank loan", "term loan", "mortgage", "line of credit",
		}},
		{models.CatPrepaidExpenses, []string{"prepaid"}},
		{models.CatInventory, []string{"inventory", "merchandise", "raw materials", "finished goods"}},
		{models.CatCash, []string{
			"cash", "petty cash", "checking", "savings", "money market", "cash equivalents",
		}},
		{models.CatPPEGross, []string{
			"property plant and equipment", "property plant equipment", "ppe", "pp e",
			"equipment", "machinery", "buildings", "building", "land",
			"furniture", "fixtures", "vehicles", "leasehold improvements", "computer hardware",
		}},
		{models.CatCommonStock, []string{
			"common stock", "capital stock", "share capital", "paid in capital", "additional paid in capital", "apic",
		}},
		{models.CatRetainedEarnings, []string{"retained earnings", "accumulated deficit"}},
		{models.CatDividendsPaid, []string{"dividends", "dividend", "distributions", "owner draws"}},
		{models.CatInterestExpense, []string{"interest expense", "finance charges"}},
		{models.CatTaxExpense, []string{
			"income tax expense", "tax expense", "provision for income taxes", "income taxes",
		}},
		{models.CatDepreciationExpense, []string{
			"depreciation expense", "depreciation", "amortization expense", "amortization",
		}},
		{models.CatCOGS, []string{
			"cost of goods sold", "cogs", "cost of sales", "cost of revenue", "cost of services",
		}},
		{models.CatRevenue, []string{
			"revenue", "sales", "service income", "fees earned", "subscription income",
		}},
		{models.CatDistributionExpenses, []string{
			"distribution", "freight", "shipping", "delivery", "logistics",
		}},
		{models.CatResearchDev, []string{
			"research and development", "research", "development", "r d", "engineering",
		}},
		{models.CatMarketingAdmin, []string{
			"marketing", "advertising", "selling", "general and administrative", "g a",
			"administrative", "admin", "salaries", "wages", "payroll", "rent",
			"utilities", "insurance", "office", "professional fees", "travel",
		}},
		{models.CatOtherCurrentAssets, []string{"other current assets", "deposits", "supplies"}},
		{models.CatOtherCurrentLiabilities, []string{"other current liabilities", "other accrued liabilities", "accrued expenses", "accrued liabilities"}},
	}
}

// DefaultRangeRules is the standard ordered numeric fallback: 1000s assets,
// 2000s liabilities, 3000s equity, 4000s revenue, 5000s COGS, 6000-7999
// operating expenses, 8000s non-operating.
func DefaultRangeRules() []RangeRule {
	return []RangeRule{
		{models.CatCash, 1000, 1099},
		{models.CatAccountsReceivable, 1100, 1199},
		{models.CatInventory, 1200, 1299},
		{models.CatPrepaidExpenses, 1300, 1399},
		{models.CatOtherCurrentAssets, 1400, 1499},
		{models.CatPPEGross, 1500, 1699},
		{models.CatAccumulatedDepreciation, 1700, 1799},
		{models.CatOtherCurrentAssets, 1800, 1999},

		{models.CatAccountsPayable, 2000, 2099},
		{models.CatAccruedPayroll, 2100, 2199},
		{models.CatDeferredRevenue, 2200, 2299},
		{models.CatInterestPayable, 2300, 2349},
		{models.CatIncomeTaxesPayable, 2350, 2399},
		{models.CatOtherCurrentLiabilities, 2400, 2499},
		{models.CatLongTermDebt, 2500, 2999},

		{models.CatCommonStock, 3000, 3099},
		{models.CatRetainedEarnings, 3100, 3199},
		{models.CatDividendsPaid, 3200, 3299},

		{models.CatRevenue, 4000, 4999},
		{models.CatCOGS, 5000, 5999},

		{models.CatDistributionExpenses, 6000, 6199},
		{models.CatMarketingAdmin, 6200, 6499},
		{models.CatResearchDev, 6500, 6699},
		{models.CatDepreciationExpense, 6700, 6799},
		{models.CatMarketingAdmin, 6800, 7999},

		{models.CatInterestExpense, 8000, 8099},
		{models.CatTaxExpense, 8100, 8199},
	}
}
