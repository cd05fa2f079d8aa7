// Package pipeline orchestrates one generation run end to end:
// Loaded -> Validated -> Classified -> Calculated -> Reconciled, or
// Loaded -> Validated(blocked) when a Critical finding gates calculation.
// The engine holds only immutable configuration, so concurrent runs with
// different rule sets never interfere.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"three_statements/pkg/core/classify"
	"three_statements/pkg/core/config"
	"three_statements/pkg/core/fixes"
	"three_statements/pkg/core/rules"
	"three_statements/pkg/core/statements"
	"three_statements/pkg/core/validate"
	"three_statements/pkg/logger"
	"three_statements/pkg/models"
)

const dateLayout = "2006-01-02"

// Engine runs the validation, classification, calculation, and
// reconciliation stages over one in-memory dataset.
type Engine struct {
	cfg        config.Config
	classifier *classify.Classifier
	custom     []rules.Rule
	log        zerolog.Logger
	now        time.Time
}

// New builds an engine with the default classifier and a no-op logger.
func New(cfg config.Config) *Engine {
	return &Engine{
		cfg:        cfg,
		classifier: classify.Default(),
		log:        logger.Nop(),
	}
}

// SetClassifier replaces the default classification rule tables.
func (e *Engine) SetClassifier(c *classify.Classifier) {
	e.classifier = c
}

// SetCustomRules installs user-defined validation rules, evaluated over
// both ledgers during the validation stage.
func (e *Engine) SetCustomRules(ruleset []rules.Rule) {
	e.custom = ruleset
}

// SetLogger wires a structured logger for stage-transition logging.
func (e *Engine) SetLogger(log zerolog.Logger) {
	e.log = log
}

// SetNow fixes the reference time for future-date checks, for
// reproducible runs.
func (e *Engine) SetNow(now time.Time) {
	e.now = now
}

// Run executes one generation run. tb is required; gl may be empty, in
// which case income statements fall back to the Trial Balance snapshots.
// ops are the caller-selected corrections applied before validation.
// The returned result is complete in either direction: a blocked run
// carries every finding and no statements, a finished run carries both.
func (e *Engine) Run(ctx context.Context, tb, gl []models.LedgerRecord, ops []fixes.Op) (*models.RunResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &models.RunResult{
		RunID: uuid.NewString(),
		State: models.StateLoaded,
	}
	log := e.log.With().Str("run_id", result.RunID).Logger()
	log.Info().Int("tb_rows", len(tb)).Int("gl_rows", len(gl)).Msg("run loaded")

	// Corrections first, so validation sees the data calculation will use.
	classifier := e.classifier
	if len(ops) > 0 {
		tbFix := fixes.Apply(tb, ops)
		glFix := fixes.Apply(gl, ops)
		tb, gl = tbFix.Records, glFix.Records
		result.AppliedFixes = append(tbFix.Changes, glFix.Changes...)
		if len(tbFix.Overrides) > 0 {
			classifier = classifier.WithOverrides(tbFix.Overrides)
		}
		log.Info().Strs("changes", result.AppliedFixes).Msg("corrections applied")
	}

	result.Summary = summarize(tb, gl)

	// Validation gate.
	validator := e.validator()
	window, findings := validator.ValidateAll(tb, gl)
	findings = append(findings, rules.EvaluateAll(e.custom, tb, "TB", e.cfg.MaxSampleRows)...)
	if len(gl) > 0 {
		findings = append(findings, rules.EvaluateAll(e.custom, gl, "GL", e.cfg.MaxSampleRows)...)
	}
	result.Findings = findings

	if window == nil || models.HasBlocking(findings) {
		result.State = models.StateValidatedBlocked
		log.Warn().Int("findings", len(findings)).Msg("run blocked at validation")
		return result, nil
	}
	result.State = models.StateValidated
	result.Window = window
	log.Info().
		Int("baseline_year", window.BaselineYear).
		Ints("statement_years", window.StatementYears).
		Msg("validation passed")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Classification over every account either ledger mentions.
	all := append(append([]models.LedgerRecord(nil), tb...), gl...)
	resolutions, cats := classifier.ResolveAll(all)
	result.Resolutions = resolutions
	result.Stats = mappingStats(all, resolutions, cats)
	if result.Stats.UnclassifiedAccounts > 0 {
		result.Findings = append(result.Findings, models.Finding{
			Severity: models.SeverityInfo,
			Category: models.FindingUnclassified,
			Message: fmt.Sprintf("%d of %d account(s) unclassified, covering %.2f of %.2f gross volume",
				result.Stats.UnclassifiedAccounts, result.Stats.TotalAccounts,
				result.Stats.UnclassifiedAmount, result.Stats.TotalAmount),
			SuggestedFix: models.FixMapUnclassified,
		})
	}
	result.State = models.StateClassified

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Statement calculation, then the independent reconciliation pass.
	sets, baseline := statements.Build(*window, tb, gl, cats)
	result.Statements = sets
	result.Baseline = baseline
	result.State = models.StateCalculated

	tol := e.cfg.Tolerance(validate.MaxAbsAmount(all))
	prior := baseline
	for i := range result.Statements {
		set := &result.Statements[i]
		rec := validate.Reconcile(set.Balance, prior, set.CashFlow, tol)
		set.Reconciliation = &rec
		if !rec.Passed() {
			log.Warn().
				Int("year", set.Year).
				Float64("balance_residual", rec.BalanceResidual).
				Float64("cash_residual", rec.CashResidual).
				Msg("reconciliation failed")
		}
		prior = set.Balance
	}
	result.State = models.StateReconciled
	log.Info().Int("statement_years", len(result.Statements)).Msg("run reconciled")

	return result, nil
}

func (e *Engine) validator() *validate.Validator {
	if !e.now.IsZero() {
		return validate.NewAt(e.cfg, e.now)
	}
	return validate.New(e.cfg)
}

func summarize(tb, gl []models.LedgerRecord) *models.DataSummary {
	s := &models.DataSummary{
		TrialBalanceRows:  len(tb),
		GeneralLedgerRows: len(gl),
	}

	accounts := make(map[models.AccountKey]bool)
	var first, last time.Time
	for _, r := range append(append([]models.LedgerRecord(nil), tb...), gl...) {
		s.TotalDebit += r.Debit
		s.TotalCredit += r.Credit
		accounts[models.AccountKey{Number: r.AccountNumber, Name: r.AccountName}] = true
		if !r.HasDate() {
			continue
		}
		if first.IsZero() || r.Date.Before(first) {
			first = r.Date
		}
		if r.Date.After(last) {
			last = r.Date
		}
	}
	s.DistinctAccounts = len(accounts)
	if !first.IsZero() {
		s.FirstDate = first.Format(dateLayout)
		s.LastDate = last.Format(dateLayout)
	}
	return s
}

func mappingStats(records []models.LedgerRecord, resolutions []models.AccountResolution, cats statements.CategoryMap) *models.MappingStats {
	stats := &models.MappingStats{TotalAccounts: len(resolutions)}
	for _, res := range resolutions {
		if res.Category == models.CatUnclassified {
			stats.UnclassifiedAccounts++
		} else {
			stats.ClassifiedAccounts++
		}
	}
	for _, r := range records {
		gross := r.Debit + r.Credit
		stats.TotalAmount += gross
		if cats[models.AccountKey{Number: r.AccountNumber, Name: r.AccountName}] == models.CatUnclassified {
			stats.UnclassifiedAmount += gross
		}
	}
	return stats
}
