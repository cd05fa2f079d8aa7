package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"three_statements/pkg/core/classify"
	"three_statements/pkg/core/config"
	"three_statements/pkg/core/fixes"
	"three_statements/pkg/core/ingest"
	"three_statements/pkg/core/normalize"
	"three_statements/pkg/core/pipeline"
	"three_statements/pkg/core/sample"
	"three_statements/pkg/core/store"
	"three_statements/pkg/logger"
	"three_statements/pkg/models"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	var (
		tbPath     = flag.String("tb", "", "Trial Balance file (.csv, .html)")
		glPath     = flag.String("gl", "", "General Ledger file (.csv, .html), optional")
		configPath = flag.String("config", "", "engine config file (.yaml, .hjson), optional")
		rulesPath  = flag.String("rules", "", "classification rules file (.yaml, .hjson), optional")
		demo       = flag.Bool("demo", false, "run on the built-in consistent demo dataset")
		demoYear   = flag.Int("demo-year", 2020, "baseline year for the demo dataset")
		applyFixes = flag.String("apply-fixes", "", "comma-separated corrections: remove_missing_dates,remove_future_dates,remove_duplicates,map_unclassified")
		saveRun    = flag.Bool("save", false, "archive the run result to Postgres (DATABASE_URL)")
		asJSON     = flag.Bool("json", false, "emit the full run result as JSON instead of the report")
		verbose    = flag.Bool("v", false, "structured stage logging to stderr")
	)
	flag.Parse()

	if !*demo && *tbPath == "" {
		log.Fatal("Error: -tb is required (or use -demo).")
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Config error: %v", err)
		}
	}
	if *rulesPath == "" && cfg.RulesPath != "" {
		*rulesPath = cfg.RulesPath
	}

	tb, gl, findings := loadData(*demo, *demoYear, *tbPath, *glPath)

	engine := pipeline.New(cfg)
	if *rulesPath != "" {
		classifier, err := classify.LoadRules(*rulesPath)
		if err != nil {
			log.Fatalf("Rules error: %v", err)
		}
		engine.SetClassifier(classifier)
	}
	if *verbose {
		engine.SetLogger(logger.New())
	}

	ctx := context.Background()
	result, err := engine.Run(ctx, tb, gl, parseFixes(*applyFixes))
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}
	// Ingest-level findings (missing columns) surface alongside the engine's.
	result.Findings = append(findings, result.Findings...)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatalf("Encode failed: %v", err)
		}
	} else {
		printReport(result)
	}

	if *saveRun {
		if err := store.InitDB(ctx); err != nil {
			log.Fatalf("Database error: %v", err)
		}
		defer store.Close()
		if err := store.NewRunRepo().Save(ctx, result); err != nil {
			log.Fatalf("Archive error: %v", err)
		}
		fmt.Printf("\nArchived run %s\n", result.RunID)
	}

	if result.Blocked() {
		os.Exit(1)
	}
}

func loadData(demo bool, demoYear int, tbPath, glPath string) (tb, gl []models.LedgerRecord, findings []models.Finding) {
	if demo {
		tb, gl = sample.Dataset(demoYear, 3)
		return tb, gl, nil
	}

	aliases := normalize.DefaultAliases()

	tbTable, err := ingest.ReadFile(tbPath)
	if err != nil {
		log.Fatalf("Load error: %v", err)
	}
	tb, tbFindings := normalize.Records(normalize.Tabular(tbTable), aliases, "TB")
	findings = append(findings, tbFindings...)

	if glPath != "" {
		glTable, err := ingest.ReadFile(glPath)
		if err != nil {
			log.Fatalf("Load error: %v", err)
		}
		var glFindings []models.Finding
		gl, glFindings = normalize.Records(normalize.Tabular(glTable), aliases, "GL")
		findings = append(findings, glFindings...)
	}
	return tb, gl, findings
}

func parseFixes(spec string) []fixes.Op {
	var ops []fixes.Op
	for _, name := range strings.Split(spec, ",") {
		hint := models.FixHint(strings.TrimSpace(name))
		if hint == models.FixNone {
			continue
		}
		op, ok := fixes.FromHint(hint)
		if !ok {
			log.Fatalf("Unknown fix %q", name)
		}
		ops = append(ops, op)
	}
	return ops
}

func printReport(result *models.RunResult) {
	fmt.Printf("Run %s [%s]\n", result.RunID, result.State)

	if s := result.Summary; s != nil {
		fmt.Printf("\nData: %d TB rows, %d GL rows, %d accounts",
			s.TrialBalanceRows, s.GeneralLedgerRows, s.DistinctAccounts)
		if s.FirstDate != "" {
			fmt.Printf(", %s .. %s", s.FirstDate, s.LastDate)
		}
		fmt.Printf("\n      debits %.2f / credits %.2f\n", s.TotalDebit, s.TotalCredit)
	}

	if len(result.AppliedFixes) > 0 {
		fmt.Println("\nCorrections applied:")
		for _, c := range result.AppliedFixes {
			fmt.Printf("  - %s\n", c)
		}
	}

	if len(result.Findings) > 0 {
		fmt.Println("\nFindings:")
		for _, f := range result.Findings {
			fmt.Printf("  %s\n", f)
		}
	}

	if result.Blocked() {
		fmt.Println("\nRun blocked: fix the Critical findings above and re-run.")
		return
	}

	if w := result.Window; w != nil {
		fmt.Printf("\nBaseline year %d, statement years %v\n", w.BaselineYear, w.StatementYears)
	}
	if st := result.Stats; st != nil {
		fmt.Printf("Classified %d/%d accounts", st.ClassifiedAccounts, st.TotalAccounts)
		if st.UnclassifiedAccounts > 0 {
			fmt.Printf(" (%d unclassified, %.2f gross volume)", st.UnclassifiedAccounts, st.UnclassifiedAmount)
		}
		fmt.Println()
	}

	for _, set := range result.Statements {
		fmt.Printf("\n=== %d ===\n", set.Year)

		is := set.Income
		fmt.Printf("Income:   revenue %.2f  cogs %.2f  gross %.2f  opex %.2f  ebit %.2f  net income %.2f\n",
			is.Revenue, is.COGS, is.GrossProfit, is.TotalOpEx, is.EBIT, is.NetIncome)

		bs := set.Balance.Normalized()
		fmt.Printf("Balance:  assets %.2f  liabilities %.2f  equity %.2f  (cash %.2f)\n",
			set.Balance.TotalAssets(), set.Balance.TotalLiabilities(), set.Balance.TotalEquity(), bs.Cash)

		if set.CashFlow != nil {
			cf := set.CashFlow
			fmt.Printf("CashFlow: cfo %.2f  cfi %.2f  cff %.2f  net %.2f  ending cash %.2f\n",
				cf.CFO, cf.CFI, cf.CFF, cf.NetCashChange, cf.EndingCash)
		} else {
			fmt.Printf("CashFlow: %s\n", set.CashFlowStatus)
		}

		if rec := set.Reconciliation; rec != nil {
			fmt.Printf("Checks:   balance identity %s (residual %.4f, tol %.4f)  cash tie-out %s (residual %.4f, tol %.4f)\n",
				passFail(rec.BalancePassed), rec.BalanceResidual, rec.BalanceTolerance,
				passFail(rec.CashPassed), rec.CashResidual, rec.CashTolerance)
		}
	}
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}
