package rules

import (
	"testing"
	"time"

	"three_statements/pkg/models"
)

func record(num int, debit, credit float64) models.LedgerRecord {
	return models.LedgerRecord{
		Date:          time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
		AccountNumber: num,
		Debit:         debit,
		Credit:        credit,
	}
}

func TestCompareOperators(t *testing.T) {
	r := record(1000, 150, 0)

	cases := []struct {
		expr Expr
		want bool
	}{
		{Compare{FieldDebit, OpGT, 100}, true},
		{Compare{FieldDebit, OpLE, 100}, false},
		{Compare{FieldCredit, OpEQ, 0}, true},
		{Compare{FieldNet, OpGE, 150}, true},
		{Compare{FieldAccountNumber, OpEQ, 1000}, true},
		{Compare{FieldYear, OpEQ, 2021}, true},
	}
	for i, c := range cases {
		if got := c.expr.Eval(r); got != c.want {
			t.Errorf("case %d: got %v, want %v", i, got, c.want)
		}
	}
}

func TestBooleanCombinators(t *testing.T) {
	r := record(1000, 150, 0)

	both := And{Exprs: []Expr{
		Compare{FieldDebit, OpGT, 100},
		Compare{FieldAccountNumber, OpLT, 2000},
	}}
	if !both.Eval(r) {
		t.Error("And should hold")
	}

	either := Or{Exprs: []Expr{
		Compare{FieldDebit, OpGT, 1000},
		Compare{FieldCredit, OpEQ, 0},
	}}
	if !either.Eval(r) {
		t.Error("Or should hold")
	}

	if (Not{Expr: both}).Eval(r) {
		t.Error("Not should invert")
	}
}

func TestRuleEvaluateBoundsSample(t *testing.T) {
	var records []models.LedgerRecord
	for i := 0; i < 10; i++ {
		records = append(records, record(1000, 500, 0))
	}

	rule := Rule{
		Name:     "big_debits",
		Severity: models.SeverityWarning,
		Expr:     Compare{FieldDebit, OpGE, 500},
	}
	f := rule.Evaluate(records, "GL", 3)
	if f == nil {
		t.Fatal("expected a finding")
	}
	if f.Category != models.FindingCustomRule || f.Severity != models.SeverityWarning {
		t.Errorf("got %s/%s", f.Category, f.Severity)
	}
	if len(f.Rows) != 3 || f.TotalAffected != 10 {
		t.Errorf("sample %d of %d, want 3 of 10", len(f.Rows), f.TotalAffected)
	}

	quiet := Rule{Name: "none", Expr: Compare{FieldDebit, OpGT, 1e9}}
	if got := quiet.Evaluate(records, "GL", 3); got != nil {
		t.Errorf("expected nil finding, got %v", got)
	}
}

func TestCompileDeclarativeRule(t *testing.T) {
	spec := RuleSpec{
		Name:     "suspicious_cash",
		Severity: "Warning",
		Message:  "large cash posting",
		When: Node{All: []Node{
			{Field: "account_number", Op: "eq", Value: 1000},
			{Any: []Node{
				{Field: "debit", Op: "gt", Value: 100000},
				{Field: "credit", Op: "gt", Value: 100000},
			}},
		}},
	}
	rule, err := CompileRule(spec)
	if err != nil {
		t.Fatal(err)
	}

	if !rule.Expr.Eval(record(1000, 200000, 0)) {
		t.Error("should match a large cash debit")
	}
	if rule.Expr.Eval(record(1000, 50, 0)) {
		t.Error("should not match a small posting")
	}
	if rule.Expr.Eval(record(2000, 200000, 0)) {
		t.Error("should not match other accounts")
	}
}

func TestCompileRejectsBadNodes(t *testing.T) {
	cases := []Node{
		{}, // nothing set
		{Field: "debit", Op: "gt", Value: 1, Not: &Node{Field: "credit", Op: "eq"}}, // ambiguous
		{Field: "color", Op: "eq"},      // unknown field
		{Field: "debit", Op: "matches"}, // unknown operator
	}
	for i, n := range cases {
		if _, err := Compile(n); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestCompileRuleSeverity(t *testing.T) {
	if _, err := CompileRule(RuleSpec{Name: "x", Severity: "Fatal", When: Node{Field: "debit", Op: "gt"}}); err == nil {
		t.Error("unknown severity should fail")
	}

	rule, err := CompileRule(RuleSpec{Name: "x", When: Node{Field: "debit", Op: "gt"}})
	if err != nil {
		t.Fatal(err)
	}
	if rule.Severity != models.SeverityInfo {
		t.Errorf("default severity = %s, want Info", rule.Severity)
	}
}
