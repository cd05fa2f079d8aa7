package classify

import (
	"testing"

	"three_statements/pkg/models"
)

func key(num int, name string) models.AccountKey {
	return models.AccountKey{Number: num, Name: name}
}

func TestWholeWordMatching(t *testing.T) {
	c := Default()

	// "AR" is an accepted alias but must never match inside a longer word.
	res := c.Resolve(key(3100, "Retained Earnings"))
	if res.Category != models.CatRetainedEarnings {
		t.Errorf("Retained Earnings resolved to %s", res.Category)
	}

	res = c.Resolve(key(0, "AR"))
	if res.Category != models.CatAccountsReceivable || res.Pass != "name" {
		t.Errorf("AR resolved to %s via %s", res.Category, res.Pass)
	}

	res = c.Resolve(key(0, "A/R - Trade"))
	if res.Category != models.CatAccountsReceivable {
		t.Errorf("A/R - Trade resolved to %s", res.Category)
	}
}

func TestNamePriorityOverAmbiguity(t *testing.T) {
	c := Default()

	cases := []struct {
		name string
		want models.AccountCategory
	}{
		{"Accumulated Depreciation - Equipment", models.CatAccumulatedDepreciation},
		{"Depreciation Expense", models.CatDepreciationExpense},
		{"Interest Payable", models.CatInterestPayable},
		{"Interest Expense", models.CatInterestExpense},
		{"Deferred Revenue", models.CatDeferredRevenue},
		{"Cost of Revenue", models.CatCOGS},
		{"Revenue", models.CatRevenue},
		{"Salaries Payable", models.CatAccruedPayroll},
		{"Salaries", models.CatMarketingAdmin},
		{"Notes Payable", models.CatLongTermDebt},
		{"Accounts Payable", models.CatAccountsPayable},
	}
	for _, tc := range cases {
		if got := c.Resolve(key(0, tc.name)).Category; got != tc.want {
			t.Errorf("%q resolved to %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestRangeFallback(t *testing.T) {
	c := Default()

	res := c.Resolve(key(1050, "Operating Account"))
	if res.Category != models.CatCash || res.Pass != "range" {
		t.Errorf("1050 resolved to %s via %s, want cash via range", res.Category, res.Pass)
	}

	res = c.Resolve(key(4200, "Misc"))
	if res.Category != models.CatRevenue {
		t.Errorf("4200 resolved to %s, want revenue", res.Category)
	}
}

func TestUnclassifiedSentinel(t *testing.T) {
	c := Default()
	res := c.Resolve(key(9999, "Mystery"))
	if res.Category != models.CatUnclassified || res.Pass != "none" {
		t.Errorf("got %s via %s, want unclassified via none", res.Category, res.Pass)
	}
}

func TestClassificationIdempotentAndTotal(t *testing.T) {
	c := Default()
	records := []models.LedgerRecord{
		{AccountNumber: 1000, AccountName: "Cash"},
		{AccountNumber: 1000, AccountName: "Cash"}, // same account twice
		{AccountNumber: 4000, AccountName: "Revenue"},
		{AccountNumber: 9999, AccountName: "Mystery"},
	}

	first, lookup1 := c.ResolveAll(records)
	second, lookup2 := c.ResolveAll(records)

	if len(first) != 3 {
		t.Fatalf("expected 3 distinct accounts, got %d", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("resolution %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
	for k, v := range lookup1 {
		if lookup2[k] != v {
			t.Errorf("lookup for %v differs: %s vs %s", k, v, lookup2[k])
		}
		if v == "" {
			t.Errorf("account %v received no category", k)
		}
	}
}

func TestOverridesWinBothPasses(t *testing.T) {
	c := Default().WithOverrides(map[int]models.AccountCategory{
		1000: models.CatOtherCurrentAssets,
	})
	res := c.Resolve(key(1000, "Cash"))
	if res.Category != models.CatOtherCurrentAssets || res.Pass != "override" {
		t.Errorf("got %s via %s, want other_current_assets via override", res.Category, res.Pass)
	}
}

func TestRuleFileValidate(t *testing.T) {
	bad := RuleFile{NameRules: []NameRule{{Category: "nonsense", Patterns: []string{"x"}}}}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown category")
	}

	inverted := RuleFile{RangeRules: []RangeRule{{Category: models.CatCash, Low: 2000, High: 1000}}}
	if err := inverted.Validate(); err == nil {
		t.Error("expected error for inverted range")
	}
}
