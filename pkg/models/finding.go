package models

import "fmt"

// Severity classifies a validation finding by its effect on the run.
// Critical findings block statement calculation; Warnings and Info do not.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityWarning  Severity = "Warning"
	SeverityInfo     Severity = "Info"
)

// FindingCategory is the closed set of invariants and data-quality checks.
type FindingCategory string

const (
	FindingMissingColumn        FindingCategory = "MissingColumn"
	FindingUnbalancedPeriod     FindingCategory = "UnbalancedPeriod"
	FindingUnbalancedTxn        FindingCategory = "UnbalancedTransaction"
	FindingMissingBaselineYear  FindingCategory = "MissingBaselineYear"
	FindingNonContiguousYears   FindingCategory = "NonContiguousYears"
	FindingBothSidesPositive    FindingCategory = "BothSidesPositive"
	FindingMissingDate          FindingCategory = "MissingDate"
	FindingMissingAccountNumber FindingCategory = "MissingAccountNumber"
	FindingInvalidAccountNumber FindingCategory = "InvalidAccountNumber"
	FindingInvalidAmount        FindingCategory = "InvalidAmount"
	FindingDuplicateRow         FindingCategory = "DuplicateRow"
	FindingFutureDate           FindingCategory = "FutureDate"
	FindingAmountOutlier        FindingCategory = "AmountOutlier"
	FindingUnclassified         FindingCategory = "Unclassified"
	FindingCustomRule           FindingCategory = "CustomRule"
)

// FixHint names a correction operation the caller may choose to apply.
// The operations themselves are typed variants in the fixes package; the
// hint only advertises which one would address the finding.
type FixHint string

const (
	FixNone               FixHint = ""
	FixRemoveMissingDates FixHint = "remove_missing_dates"
	FixRemoveFutureDates  FixHint = "remove_future_dates"
	FixRemoveDuplicates   FixHint = "remove_duplicates"
	FixMapUnclassified    FixHint = "map_unclassified"
)

// Finding is one validation outcome with its structured detail payload.
// Residual and Tolerance are populated for balance checks; Rows holds a
// bounded sample of affected row indexes with TotalAffected as the true count.
type Finding struct {
	Severity      Severity        `json:"severity"`
	Category      FindingCategory `json:"category"`
	Message       string          `json:"message"`
	Source        string          `json:"source,omitempty"` // "TB" or "GL"
	Date          string          `json:"date,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Residual      float64         `json:"residual,omitempty"`
	Tolerance     float64         `json:"tolerance,omitempty"`
	Rows          []int           `json:"rows,omitempty"`
	TotalAffected int             `json:"total_affected,omitempty"`
	SuggestedFix  FixHint         `json:"suggested_fix,omitempty"`
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s: %s", f.Severity, f.Category, f.Message)
}

// IsBlocking reports whether the finding gates statement calculation.
func (f Finding) IsBlocking() bool {
	return f.Severity == SeverityCritical
}

// HasBlocking reports whether any finding in the slice is Critical.
func HasBlocking(findings []Finding) bool {
	for _, f := range findings {
		if f.IsBlocking() {
			return true
		}
	}
	return false
}

// CountBySeverity tallies findings per severity level.
func CountBySeverity(findings []Finding) map[Severity]int {
	counts := make(map[Severity]int)
	for _, f := range findings {
		counts[f.Severity]++
	}
	return counts
}
