package rules

import (
	"fmt"

	"three_statements/pkg/models"
)

// Node is the declarative (file-loadable) form of an expression. Exactly one
// of the operator fields may be set: All, Any, Not, or a Field comparison.
type Node struct {
	All []Node `yaml:"all,omitempty" json:"all,omitempty"`
	Any []Node `yaml:"any,omitempty" json:"any,omitempty"`
	Not *Node  `yaml:"not,omitempty" json:"not,omitempty"`

	Field string  `yaml:"field,omitempty" json:"field,omitempty"`
	Op    string  `yaml:"op,omitempty" json:"op,omitempty"`
	Value float64 `yaml:"value,omitempty" json:"value,omitempty"`
}

// RuleSpec is the declarative form of a rule.
type RuleSpec struct {
	Name     string `yaml:"name" json:"name"`
	Severity string `yaml:"severity" json:"severity"`
	Message  string `yaml:"message" json:"message"`
	When     Node   `yaml:"when" json:"when"`
}

var validFields = map[Field]bool{
	FieldDebit: true, FieldCredit: true, FieldNet: true,
	FieldAccountNumber: true, FieldYear: true,
}

var validOps = map[Op]bool{
	OpEQ: true, OpNE: true, OpGT: true, OpGE: true, OpLT: true, OpLE: true,
}

// Compile turns a declarative node into an evaluable expression, rejecting
// unknown fields, unknown operators, and ambiguous nodes.
func Compile(n Node) (Expr, error) {
	set := 0
	if len(n.All) > 0 {
		set++
	}
	if len(n.Any) > 0 {
		set++
	}
	if n.Not != nil {
		set++
	}
	if n.Field != "" {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("node must set exactly one of all/any/not/field")
	}

	switch {
	case len(n.All) > 0:
		exprs, err := compileList(n.All)
		if err != nil {
			return nil, err
		}
		return And{Exprs: exprs}, nil
	case len(n.Any) > 0:
		exprs, err := compileList(n.Any)
		if err != nil {
			return nil, err
		}
		return Or{Exprs: exprs}, nil
	case n.Not != nil:
		inner, err := Compile(*n.Not)
		if err != nil {
			return nil, err
		}
		return Not{Expr: inner}, nil
	default:
		field, op := Field(n.Field), Op(n.Op)
		if !validFields[field] {
			return nil, fmt.Errorf("unknown field %q", n.Field)
		}
		if !validOps[op] {
			return nil, fmt.Errorf("unknown operator %q", n.Op)
		}
		return Compare{Field: field, Op: op, Value: n.Value}, nil
	}
}

func compileList(nodes []Node) ([]Expr, error) {
	exprs := make([]Expr, 0, len(nodes))
	for i, n := range nodes {
		e, err := Compile(n)
		if err != nil {
			return nil, fmt.Errorf("operand %d: %w", i, err)
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

// CompileRule validates and compiles one declarative rule.
func CompileRule(spec RuleSpec) (Rule, error) {
	if spec.Name == "" {
		return Rule{}, fmt.Errorf("rule has no name")
	}

	var sev models.Severity
	switch models.Severity(spec.Severity) {
	case models.SeverityCritical, models.SeverityWarning, models.SeverityInfo:
		sev = models.Severity(spec.Severity)
	case "":
		sev = models.SeverityInfo
	default:
		return Rule{}, fmt.Errorf("rule %s: unknown severity %q", spec.Name, spec.Severity)
	}

	expr, err := Compile(spec.When)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %s: %w", spec.Name, err)
	}
	return Rule{Name: spec.Name, Severity: sev, Message: spec.Message, Expr: expr}, nil
}

// CompileRules compiles a declarative ruleset, failing on the first bad rule.
func CompileRules(specs []RuleSpec) ([]Rule, error) {
	out := make([]Rule, 0, len(specs))
	for _, spec := range specs {
		r, err := CompileRule(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
