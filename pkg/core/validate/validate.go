// Package validate enforces the double-entry and period-completeness
// invariants ahead of classification, and re-derives the reconciliation
// identities after statement calculation. All checks report through the
// Finding taxonomy; nothing here mutates the input records.
package validate

import (
	"fmt"
	"math"
	"sort"
	"time"

	"three_statements/pkg/core/config"
	"three_statements/pkg/models"
)

const dateLayout = "2006-01-02"

// Validator runs the invariant and data-quality checks for one dataset.
// Now anchors the future-date check; zero means time.Now at construction.
type Validator struct {
	cfg config.Config
	now time.Time
}

// New builds a validator over the given configuration.
func New(cfg config.Config) *Validator {
	return &Validator{cfg: cfg, now: time.Now()}
}

// NewAt builds a validator with a fixed reference time, for reproducible runs.
func NewAt(cfg config.Config, now time.Time) *Validator {
	return &Validator{cfg: cfg, now: now}
}

// MaxAbsAmount returns the largest absolute debit or credit in the records.
func MaxAbsAmount(records []models.LedgerRecord) float64 {
	var max float64
	for _, r := range records {
		if v := math.Abs(r.Debit); v > max {
			max = v
		}
		if v := math.Abs(r.Credit); v > max {
			max = v
		}
	}
	return max
}

// Tolerance computes the balance tolerance for the dataset the records
// belong to: an absolute floor combined with a relative ceiling.
func (v *Validator) Tolerance(records []models.LedgerRecord) float64 {
	return v.cfg.Tolerance(MaxAbsAmount(records))
}

// CheckPeriodBalance verifies that every distinct Trial Balance date is
// self-balancing. Rows with the missing-date sentinel are excluded here;
// CheckRecords reports them separately.
func (v *Validator) CheckPeriodBalance(tb []models.LedgerRecord) []models.Finding {
	tol := v.Tolerance(tb)

	type sums struct{ debit, credit float64 }
	byDate := make(map[time.Time]*sums)
	for _, r := range tb {
		if !r.HasDate() {
			continue
		}
		s := byDate[r.Date]
		if s == nil {
			s = &sums{}
			byDate[r.Date] = s
		}
		s.debit += r.Debit
		s.credit += r.Credit
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var findings []models.Finding
	for _, d := range dates {
		s := byDate[d]
		residual := s.debit - s.credit
		if math.Abs(residual) > tol {
			findings = append(findings, models.Finding{
				Severity:  models.SeverityCritical,
				Category:  models.FindingUnbalancedPeriod,
				Source:    "TB",
				Date:      d.Format(dateLayout),
				Residual:  residual,
				Tolerance: tol,
				Message: fmt.Sprintf("trial balance on %s does not balance: debits %.2f, credits %.2f, residual %.2f exceeds tolerance %.2f",
					d.Format(dateLayout), s.debit, s.credit, residual, tol),
			})
		}
	}
	return findings
}

// CheckTransactionBalance verifies General Ledger balance. When at least
// the configured fraction of rows carries a TransactionID, each journal
// entry must balance on its own; otherwise the file as a whole must.
// Per-entry failures are reported individually up to the sample bound,
// then summarized.
func (v *Validator) CheckTransactionBalance(gl []models.LedgerRecord) []models.Finding {
	if len(gl) == 0 {
		return nil
	}
	tol := v.Tolerance(gl)

	tagged := 0
	for _, r := range gl {
		if r.TransactionID != "" {
			tagged++
		}
	}

	if float64(tagged)/float64(len(gl)) < v.cfg.TxnIDThreshold {
		return v.checkWholeFileBalance(gl, tol)
	}

	type group struct {
		debit, credit float64
		date          time.Time
	}
	groups := make(map[string]*group)
	var order []string
	for _, r := range gl {
		if r.TransactionID == "" {
			continue
		}
		g := groups[r.TransactionID]
		if g == nil {
			g = &group{date: r.Date}
			groups[r.TransactionID] = g
			order = append(order, r.TransactionID)
		}
		g.debit += r.Debit
		g.credit += r.Credit
	}

	var findings []models.Finding
	failed := 0
	for _, id := range order {
		g := groups[id]
		residual := g.debit - g.credit
		if math.Abs(residual) <= tol {
			continue
		}
		failed++
		if failed <= v.cfg.MaxSampleRows {
			findings = append(findings, models.Finding{
				Severity:      models.SeverityCritical,
				Category:      models.FindingUnbalancedTxn,
				Source:        "GL",
				TransactionID: id,
				Date:          g.date.Format(dateLayout),
				Residual:      residual,
				Tolerance:     tol,
				Message: fmt.Sprintf("transaction %s (%s) does not balance: residual %.2f exceeds tolerance %.2f",
					id, g.date.Format(dateLayout), residual, tol),
			})
		}
	}
	if failed > v.cfg.MaxSampleRows {
		findings = append(findings, models.Finding{
			Severity:      models.SeverityCritical,
			Category:      models.FindingUnbalancedTxn,
			Source:        "GL",
			TotalAffected: failed,
			Tolerance:     tol,
			Message:       fmt.Sprintf("%d unbalanced transactions in total; first %d reported individually", failed, v.cfg.MaxSampleRows),
		})
	}
	return findings
}

func (v *Validator) checkWholeFileBalance(gl []models.LedgerRecord, tol float64) []models.Finding {
	var debit, credit float64
	for _, r := range gl {
		debit += r.Debit
		credit += r.Credit
	}
	residual := debit - credit
	if math.Abs(residual) <= tol {
		return nil
	}
	return []models.Finding{{
		Severity:  models.SeverityCritical,
		Category:  models.FindingUnbalancedTxn,
		Source:    "GL",
		Residual:  residual,
		Tolerance: tol,
		Message: fmt.Sprintf("general ledger does not balance overall: debits %.2f, credits %.2f, residual %.2f exceeds tolerance %.2f",
			debit, credit, residual, tol),
	}}
}

// DetectBaselineYear extracts the year window from the Trial Balance: at
// least MinYears contiguous calendar years, the earliest serving as the
// baseline. A short or gapped year set is a hard gate, because cash-flow
// deltas are undefined without a complete predecessor year.
func (v *Validator) DetectBaselineYear(tb []models.LedgerRecord) (*models.YearWindow, []models.Finding) {
	seen := make(map[int]bool)
	for _, r := range tb {
		if y := r.Year(); y != 0 {
			seen[y] = true
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)

	if len(years) < v.cfg.MinYears {
		return nil, []models.Finding{{
			Severity: models.SeverityCritical,
			Category: models.FindingMissingBaselineYear,
			Source:   "TB",
			Message: fmt.Sprintf("trial balance covers %d year(s) %v; need at least %d contiguous years (baseline plus statement years)",
				len(years), years, v.cfg.MinYears),
		}}
	}

	for i := 1; i < len(years); i++ {
		if years[i] != years[i-1]+1 {
			return nil, []models.Finding{{
				Severity: models.SeverityCritical,
				Category: models.FindingNonContiguousYears,
				Source:   "TB",
				Message: fmt.Sprintf("trial balance years %v have a gap between %d and %d; cash-flow deltas require a contiguous block",
					years, years[i-1], years[i]),
			}}
		}
	}

	return &models.YearWindow{
		BaselineYear:   years[0],
		StatementYears: years[1:],
	}, nil
}

// CheckRecords runs the row-level checks on one ledger. BothSidesPositive
// is the only Critical outcome here; the rest are correctable data-quality
// findings carrying a fix hint and a bounded row sample.
func (v *Validator) CheckRecords(records []models.LedgerRecord, source string) []models.Finding {
	var findings []models.Finding

	var bothSides, missingDates, missingAccounts, invalidAccounts, futureDates []int
	dupes := v.duplicateRows(records)
	for i, r := range records {
		if r.Debit > 0 && r.Credit > 0 {
			bothSides = append(bothSides, i)
		}
		if !r.HasDate() {
			missingDates = append(missingDates, i)
		} else if r.Date.After(v.now) {
			futureDates = append(futureDates, i)
		}
		switch {
		case r.AccountNumber == 0:
			missingAccounts = append(missingAccounts, i)
		case r.AccountNumber < 0 || r.AccountNumber > models.MaxAccountNumber:
			invalidAccounts = append(invalidAccounts, i)
		}
	}

	if len(bothSides) > 0 {
		findings = append(findings, v.rowFinding(models.SeverityCritical, models.FindingBothSidesPositive, source,
			"record(s) carry both a debit and a credit; double-entry rows must be single-sided", bothSides, models.FixNone))
	}
	if len(missingDates) > 0 {
		findings = append(findings, v.rowFinding(models.SeverityWarning, models.FindingMissingDate, source,
			"record(s) have a missing or unparseable date", missingDates, models.FixRemoveMissingDates))
	}
	if len(futureDates) > 0 {
		findings = append(findings, v.rowFinding(models.SeverityWarning, models.FindingFutureDate, source,
			"record(s) are dated in the future", futureDates, models.FixRemoveFutureDates))
	}
	if len(missingAccounts) > 0 {
		findings = append(findings, v.rowFinding(models.SeverityWarning, models.FindingMissingAccountNumber, source,
			"record(s) have a missing account number", missingAccounts, models.FixMapUnclassified))
	}
	if len(invalidAccounts) > 0 {
		findings = append(findings, v.rowFinding(models.SeverityWarning, models.FindingInvalidAccountNumber, source,
			fmt.Sprintf("record(s) have an account number outside [1, %d]", models.MaxAccountNumber),
			invalidAccounts, models.FixMapUnclassified))
	}
	if len(dupes) > 0 {
		findings = append(findings, v.rowFinding(models.SeverityWarning, models.FindingDuplicateRow, source,
			"exact duplicate record(s) found", dupes, models.FixRemoveDuplicates))
	}
	if outliers := v.outlierRows(records); len(outliers) > 0 {
		findings = append(findings, v.rowFinding(models.SeverityInfo, models.FindingAmountOutlier, source,
			fmt.Sprintf("record amount(s) beyond %.0f standard deviations of the dataset mean", v.cfg.OutlierSigma),
			outliers, models.FixNone))
	}
	return findings
}

func (v *Validator) rowFinding(sev models.Severity, cat models.FindingCategory, source, what string, rows []int, fix models.FixHint) models.Finding {
	sample := rows
	if len(sample) > v.cfg.MaxSampleRows {
		sample = sample[:v.cfg.MaxSampleRows]
	}
	return models.Finding{
		Severity:      sev,
		Category:      cat,
		Source:        source,
		Message:       fmt.Sprintf("%d %s", len(rows), what),
		Rows:          sample,
		TotalAffected: len(rows),
		SuggestedFix:  fix,
	}
}

// duplicateRows returns the indexes of every row after the first occurrence
// of an identical row.
func (v *Validator) duplicateRows(records []models.LedgerRecord) []int {
	seen := make(map[models.LedgerRecord]bool, len(records))
	var dupes []int
	for i, r := range records {
		if seen[r] {
			dupes = append(dupes, i)
			continue
		}
		seen[r] = true
	}
	return dupes
}

// outlierRows flags rows whose gross amount sits beyond OutlierSigma
// standard deviations of the dataset mean. Informational only.
func (v *Validator) outlierRows(records []models.LedgerRecord) []int {
	if len(records) < 3 {
		return nil
	}
	amounts := make([]float64, len(records))
	var sum float64
	for i, r := range records {
		amounts[i] = math.Max(math.Abs(r.Debit), math.Abs(r.Credit))
		sum += amounts[i]
	}
	mean := sum / float64(len(amounts))

	var variance float64
	for _, a := range amounts {
		variance += (a - mean) * (a - mean)
	}
	std := math.Sqrt(variance / float64(len(amounts)))
	if std == 0 {
		return nil
	}

	var rows []int
	for i, a := range amounts {
		if math.Abs(a-mean)/std > v.cfg.OutlierSigma {
			rows = append(rows, i)
		}
	}
	return rows
}

// ValidateAll runs the full pre-calculation gate over both ledgers and
// returns the detected year window with every finding. A nil window means
// a Critical finding blocked baseline detection.
func (v *Validator) ValidateAll(tb, gl []models.LedgerRecord) (*models.YearWindow, []models.Finding) {
	var findings []models.Finding

	findings = append(findings, v.CheckRecords(tb, "TB")...)
	findings = append(findings, v.CheckPeriodBalance(tb)...)

	if len(gl) > 0 {
		findings = append(findings, v.CheckRecords(gl, "GL")...)
		findings = append(findings, v.CheckTransactionBalance(gl)...)
	}

	window, baselineFindings := v.DetectBaselineYear(tb)
	findings = append(findings, baselineFindings...)

	return window, findings
}
