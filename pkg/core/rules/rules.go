// Package rules implements user-defined validation rules as a closed
// expression tree: comparisons over named record fields combined with
// boolean operators, evaluated by an interpreter the engine controls.
// There is deliberately no dynamic expression parsing; the language is
// exactly what the node types express.
package rules

import (
	"fmt"

	"three_statements/pkg/models"
)

// Field names a numeric attribute of a ledger record.
type Field string

const (
	FieldDebit         Field = "debit"
	FieldCredit        Field = "credit"
	FieldNet           Field = "net" // debit - credit
	FieldAccountNumber Field = "account_number"
	FieldYear          Field = "year"
)

// value extracts the field from a record. Unknown fields read as zero and
// are caught earlier by Compile.
func (f Field) value(r models.LedgerRecord) float64 {
	switch f {
	case FieldDebit:
		return r.Debit
	case FieldCredit:
		return r.Credit
	case FieldNet:
		return r.Net()
	case FieldAccountNumber:
		return float64(r.AccountNumber)
	case FieldYear:
		return float64(r.Year())
	}
	return 0
}

// Op is a comparison operator.
type Op string

const (
	OpEQ Op = "eq"
	OpNE Op = "ne"
	OpGT Op = "gt"
	OpGE Op = "ge"
	OpLT Op = "lt"
	OpLE Op = "le"
)

// Expr is a boolean expression over one ledger record.
type Expr interface {
	Eval(r models.LedgerRecord) bool
}

// Compare tests one field against a constant.
type Compare struct {
	Field Field
	Op    Op
	Value float64
}

func (c Compare) Eval(r models.LedgerRecord) bool {
	v := c.Field.value(r)
	switch c.Op {
	case OpEQ:
		return v == c.Value
	case OpNE:
		return v != c.Value
	case OpGT:
		return v > c.Value
	case OpGE:
		return v >= c.Value
	case OpLT:
		return v < c.Value
	case OpLE:
		return v <= c.Value
	}
	return false
}

// And is true when every operand is true. An empty And is true.
type And struct{ Exprs []Expr }

func (a And) Eval(r models.LedgerRecord) bool {
	for _, e := range a.Exprs {
		if !e.Eval(r) {
			return false
		}
	}
	return true
}

// Or is true when any operand is true. An empty Or is false.
type Or struct{ Exprs []Expr }

func (o Or) Eval(r models.LedgerRecord) bool {
	for _, e := range o.Exprs {
		if e.Eval(r) {
			return true
		}
	}
	return false
}

// Not negates its operand.
type Not struct{ Expr Expr }

func (n Not) Eval(r models.LedgerRecord) bool {
	return !n.Expr.Eval(r)
}

// Rule binds a named expression to a severity. Matching rows produce one
// CustomRule finding with a bounded row sample.
type Rule struct {
	Name     string
	Severity models.Severity
	Message  string
	Expr     Expr
}

// Evaluate runs the rule over the records. Nil when nothing matched.
func (rule Rule) Evaluate(records []models.LedgerRecord, source string, maxSample int) *models.Finding {
	var rows []int
	for i, r := range records {
		if rule.Expr.Eval(r) {
			rows = append(rows, i)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	sample := rows
	if len(sample) > maxSample {
		sample = sample[:maxSample]
	}
	msg := rule.Message
	if msg == "" {
		msg = fmt.Sprintf("rule %q matched", rule.Name)
	}
	return &models.Finding{
		Severity:      rule.Severity,
		Category:      models.FindingCustomRule,
		Source:        source,
		Message:       fmt.Sprintf("%s (%d row(s))", msg, len(rows)),
		Rows:          sample,
		TotalAffected: len(rows),
	}
}

// EvaluateAll runs every rule and collects the non-empty findings.
func EvaluateAll(ruleset []Rule, records []models.LedgerRecord, source string, maxSample int) []models.Finding {
	var findings []models.Finding
	for _, rule := range ruleset {
		if f := rule.Evaluate(records, source, maxSample); f != nil {
			findings = append(findings, *f)
		}
	}
	return findings
}
