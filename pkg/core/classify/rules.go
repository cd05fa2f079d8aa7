package classify

import (
	"fmt"
	"os"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"

	"three_statements/pkg/models"
)

// RuleFile is the on-disk shape of an external rule table. YAML is the
// primary format; HJSON is accepted for hand-maintained files with comments.
type RuleFile struct {
	NameRules  []NameRule  `yaml:"name_rules" json:"name_rules"`
	RangeRules []RangeRule `yaml:"range_rules" json:"range_rules"`
}

// LoadRules reads a rule file and builds a classifier from it. Extension
// picks the decoder: .hjson parses as HJSON, anything else as YAML.
// An empty section falls back to the corresponding default table, so a file
// can override just the patterns while keeping the standard ranges.
func LoadRules(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}

	var rf RuleFile
	if strings.HasSuffix(strings.ToLower(path), ".hjson") {
		if err := hjson.Unmarshal(data, &rf); err != nil {
			return nil, fmt.Errorf("parse rules %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &rf); err != nil {
			return nil, fmt.Errorf("parse rules %s: %w", path, err)
		}
	}

	if err := rf.Validate(); err != nil {
		return nil, fmt.Errorf("rules %s: %w", path, err)
	}

	nameRules := rf.NameRules
	if len(nameRules) == 0 {
		nameRules = DefaultNameRules()
	}
	rangeRules := rf.RangeRules
	if len(rangeRules) == 0 {
		rangeRules = DefaultRangeRules()
	}
	return New(nameRules, rangeRules), nil
}

// Validate rejects unknown categories and inverted ranges before the tables
// are trusted for a run.
func (rf RuleFile) Validate() error {
	known := make(map[models.AccountCategory]bool)
	for _, c := range models.AllCategories() {
		known[c] = true
	}
	known[models.CatUnclassified] = true

	for i, r := range rf.NameRules {
		if !known[r.Category] {
			return fmt.Errorf("name rule %d: unknown category %q", i, r.Category)
		}
		if len(r.Patterns) == 0 {
			return fmt.Errorf("name rule %d (%s): no patterns", i, r.Category)
		}
	}
	for i, r := range rf.RangeRules {
		if !known[r.Category] {
			return fmt.Errorf("range rule %d: unknown category %q", i, r.Category)
		}
		if r.Low > r.High {
			return fmt.Errorf("range rule %d (%s): low %d > high %d", i, r.Category, r.Low, r.High)
		}
	}
	return nil
}
