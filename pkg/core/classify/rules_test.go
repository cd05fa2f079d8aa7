package classify

import (
	"os"
	"path/filepath"
	"testing"

	"three_statements/pkg/models"
)

func TestLoadRulesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
name_rules:
  - category: cash
    patterns: ["vault", "till"]
range_rules:
  - category: revenue
    low: 9000
    high: 9099
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadRules(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := c.Resolve(key(0, "Main Till")).Category; got != models.CatCash {
		t.Errorf("Main Till resolved to %s", got)
	}
	if got := c.Resolve(key(9050, "Misc")).Category; got != models.CatRevenue {
		t.Errorf("9050 resolved to %s", got)
	}
	// The default tables are replaced, not merged.
	if got := c.Resolve(key(0, "Accounts Receivable")).Category; got != models.CatUnclassified {
		t.Errorf("default name rules should not apply, got %s", got)
	}
}

func TestLoadRulesHJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.hjson")
	content := `{
  // hand-maintained override table
  name_rules: [
    {
      category: long_term_debt
      patterns: ["facility"]
    }
  ]
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadRules(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Resolve(key(0, "Credit Facility")).Category; got != models.CatLongTermDebt {
		t.Errorf("Credit Facility resolved to %s", got)
	}
	// Empty range section falls back to the default ranges.
	if got := c.Resolve(key(1050, "Operating")).Category; got != models.CatCash {
		t.Errorf("range fallback missing, got %s", got)
	}
}

func TestLoadRulesRejectsUnknownCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "name_rules:\n  - category: treasure\n    patterns: [\"gold\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRules(path); err == nil {
		t.Error("expected error for unknown category")
	}
}
