package models

// RunState tracks a generation run through the pipeline. A blocked run is
// terminal: no statements are produced and the caller decides whether to
// correct the input and start a fresh run.
type RunState string

const (
	StateLoaded           RunState = "Loaded"
	StateValidated        RunState = "Validated"
	StateValidatedBlocked RunState = "ValidatedBlocked"
	StateClassified       RunState = "Classified"
	StateCalculated       RunState = "Calculated"
	StateReconciled       RunState = "Reconciled"
)

// MappingStats summarizes classification coverage for data-quality reporting.
type MappingStats struct {
	TotalAccounts        int     `json:"total_accounts"`
	ClassifiedAccounts   int     `json:"classified_accounts"`
	UnclassifiedAccounts int     `json:"unclassified_accounts"`
	UnclassifiedAmount   float64 `json:"unclassified_amount"` // gross debit+credit volume
	TotalAmount          float64 `json:"total_amount"`
}

// DataSummary describes the input dataset of a run.
type DataSummary struct {
	TrialBalanceRows  int     `json:"trial_balance_rows"`
	GeneralLedgerRows int     `json:"general_ledger_rows"`
	FirstDate         string  `json:"first_date,omitempty"`
	LastDate          string  `json:"last_date,omitempty"`
	TotalDebit        float64 `json:"total_debit"`
	TotalCredit       float64 `json:"total_credit"`
	DistinctAccounts  int     `json:"distinct_accounts"`
}

// RunResult is the full output bundle of one generation run: the statements
// per year, the validator's findings, and the classifier's resolution map.
// Everything downstream renderers need, nothing they must recompute.
type RunResult struct {
	RunID string   `json:"run_id"`
	State RunState `json:"state"`

	Window     *YearWindow    `json:"window,omitempty"`
	Statements []StatementSet `json:"statements,omitempty"` // ascending statement years
	Baseline   *BalanceSheet  `json:"-"`                    // Year0 sheet, internal predecessor only

	Findings    []Finding           `json:"findings"`
	Resolutions []AccountResolution `json:"resolutions,omitempty"`
	Stats       *MappingStats       `json:"mapping_stats,omitempty"`
	Summary     *DataSummary        `json:"summary,omitempty"`

	AppliedFixes []string `json:"applied_fixes,omitempty"`
}

// Blocked reports whether the run terminated at validation.
func (r *RunResult) Blocked() bool {
	return r.State == StateValidatedBlocked
}

// StatementFor returns the statement set for a year, or nil.
func (r *RunResult) StatementFor(year int) *StatementSet {
	for i := range r.Statements {
		if r.Statements[i].Year == year {
			return &r.Statements[i]
		}
	}
	return nil
}
