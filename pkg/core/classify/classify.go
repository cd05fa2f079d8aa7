// Package classify resolves ledger accounts to financial-statement line-item
// categories. Two ordered passes: name patterns first, numeric ranges as the
// fallback, then the unclassified sentinel. Resolution is a pure function of
// the rule tables, so two runs over the same data always agree.
package classify

import (
	"strings"

	"three_statements/pkg/models"
)

// NameRule binds a set of whole-word name patterns to a category. Patterns
// within a rule are alternatives; rules are checked in slice order and the
// first hit wins.
type NameRule struct {
	Category models.AccountCategory `yaml:"category" json:"category"`
	Patterns []string               `yaml:"patterns" json:"patterns"`
}

// RangeRule binds an inclusive account-number range to a category.
type RangeRule struct {
	Category models.AccountCategory `yaml:"category" json:"category"`
	Low      int                    `yaml:"low" json:"low"`
	High     int                    `yaml:"high" json:"high"`
}

// Classifier holds immutable rule tables plus per-account overrides applied
// ahead of both passes. Build one per run; it is safe for concurrent reads.
type Classifier struct {
	nameRules  []NameRule
	rangeRules []RangeRule
	overrides  map[int]models.AccountCategory
}

// New builds a classifier from explicit rule tables.
func New(nameRules []NameRule, rangeRules []RangeRule) *Classifier {
	return &Classifier{nameRules: nameRules, rangeRules: rangeRules}
}

// Default builds a classifier over the standard chart-of-accounts tables.
func Default() *Classifier {
	return New(DefaultNameRules(), DefaultRangeRules())
}

// WithOverrides returns a copy that resolves the given account numbers to
// fixed categories before any rule is consulted. Used by the correction
// layer to honor user reassignments.
func (c *Classifier) WithOverrides(overrides map[int]models.AccountCategory) *Classifier {
	merged := make(map[int]models.AccountCategory, len(c.overrides)+len(overrides))
	for k, v := range c.overrides {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return &Classifier{nameRules: c.nameRules, rangeRules: c.rangeRules, overrides: merged}
}

// Resolve classifies one account. Every input yields exactly one category;
// accounts no override, pattern, or range matches get the sentinel.
func (c *Classifier) Resolve(key models.AccountKey) models.AccountResolution {
	if cat, ok := c.overrides[key.Number]; ok {
		return models.AccountResolution{Account: key, Category: cat, Pass: "override"}
	}

	tokens := tokenize(key.Name)
	for _, rule := range c.nameRules {
		for _, pattern := range rule.Patterns {
			if containsPhrase(tokens, tokenize(pattern)) {
				return models.AccountResolution{Account: key, Category: rule.Category, Pass: "name"}
			}
		}
	}

	for _, rule := range c.rangeRules {
		if key.Number >= rule.Low && key.Number <= rule.High {
			return models.AccountResolution{Account: key, Category: rule.Category, Pass: "range"}
		}
	}

	return models.AccountResolution{Account: key, Category: models.CatUnclassified, Pass: "none"}
}

// ResolveAll classifies every distinct account appearing in the records.
// Resolutions come back in first-appearance order; the map is keyed for
// the statement builders.
func (c *Classifier) ResolveAll(records []models.LedgerRecord) ([]models.AccountResolution, map[models.AccountKey]models.AccountCategory) {
	seen := make(map[models.AccountKey]bool)
	var order []models.AccountKey
	for _, rec := range records {
		key := models.AccountKey{Number: rec.AccountNumber, Name: rec.AccountName}
		if !seen[key] {
			seen[key] = true
			order = append(order, key)
		}
	}

	resolutions := make([]models.AccountResolution, 0, len(order))
	lookup := make(map[models.AccountKey]models.AccountCategory, len(order))
	for _, key := range order {
		res := c.Resolve(key)
		resolutions = append(resolutions, res)
		lookup[key] = res.Category
	}
	return resolutions, lookup
}

// tokenize splits a name or pattern into lowercase word tokens. Punctuation
// acts as a separator, so "A/R" and "a r" tokenize identically.
func tokenize(s string) []string {
	s = strings.ToLower(s)
	return strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}

// containsPhrase reports whether phrase appears as a contiguous token run in
// tokens. Whole-word by construction: "ar" matches the token "ar" but never
// a substring of "retained".
func containsPhrase(tokens, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return false
	}
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		match := true
		for j, p := range phrase {
			if tokens[i+j] != p {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
