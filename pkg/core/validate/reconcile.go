// Cross-statement reconciliation. Two identities are re-derived per
// statement year from the calculator's output and asserted within the
// dataset tolerance: the balance identity A = L + E, and the cash tie-out
// linking the balance sheet's cash line to the cash-flow statement's net
// change. A failing residual is reported as-is, never rounded away; it is
// the signal that the input data, not the arithmetic, is inconsistent.

package validate

import (
	"math"

	"three_statements/pkg/models"
)

// CheckBalanceIdentity computes Assets - (Liabilities + Equity) on the raw
// signed balances. Run this on the sheet's internal values, not the
// normalized display copy.
func CheckBalanceIdentity(bs *models.BalanceSheet, tol float64) (residual float64, passed bool) {
	residual = bs.TotalAssets() - (bs.TotalLiabilities() + bs.TotalEquity())
	return residual, math.Abs(residual) <= tol
}

// CheckCashTieOut computes EndingCash(balance sheet) - (BeginningCash(prior
// sheet) + NetCashChange(cash flow)). The two sides reach ending cash via
// independent paths, so agreement is a real consistency proof.
func CheckCashTieOut(bs, prior *models.BalanceSheet, cf *models.CashFlowStatement, tol float64) (residual float64, passed bool) {
	residual = bs.Cash - (prior.Cash + cf.NetCashChange)
	return residual, math.Abs(residual) <= tol
}

// Reconcile evaluates both identities for one statement year. A nil cash
// flow (the Incomplete case) yields a balance-only result with the cash
// check marked failed, so an incomplete year can never read as reconciled.
func Reconcile(bs, prior *models.BalanceSheet, cf *models.CashFlowStatement, tol float64) models.ReconciliationResult {
	result := models.ReconciliationResult{
		Year:             bs.Year,
		BalanceTolerance: tol,
		CashTolerance:    tol,
	}
	result.BalanceResidual, result.BalancePassed = CheckBalanceIdentity(bs, tol)

	if cf == nil || prior == nil {
		return result
	}
	result.CashResidual, result.CashPassed = CheckCashTieOut(bs, prior, cf, tol)
	return result
}
