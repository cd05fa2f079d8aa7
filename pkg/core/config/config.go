// Package config defines the engine's immutable run configuration. A Config
// is built once (defaults, file, or both) and passed into the pipeline entry
// point; nothing in the engine reads package-level state, so concurrent runs
// with different settings never interfere.
package config

import (
	"fmt"
	"os"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"
)

// Config carries the tunable constants of a generation run.
type Config struct {
	// Tolerance for balance checks: max(Floor, maxAbsAmount * Ratio).
	ToleranceFloor float64 `yaml:"tolerance_floor" json:"tolerance_floor"`
	ToleranceRatio float64 `yaml:"tolerance_ratio" json:"tolerance_ratio"`

	// MinYears is the smallest contiguous year block accepted: the earliest
	// year becomes the baseline, the rest are statement years.
	MinYears int `yaml:"min_years" json:"min_years"`

	// TxnIDThreshold is the fraction of GL rows that must carry a
	// TransactionID before balancing switches from whole-file to
	// per-transaction mode.
	TxnIDThreshold float64 `yaml:"txn_id_threshold" json:"txn_id_threshold"`

	// OutlierSigma is the z-score beyond which an amount is flagged.
	OutlierSigma float64 `yaml:"outlier_sigma" json:"outlier_sigma"`

	// MaxSampleRows bounds the per-finding row sample.
	MaxSampleRows int `yaml:"max_sample_rows" json:"max_sample_rows"`

	// RulesPath optionally points at an external classification rule file.
	RulesPath string `yaml:"rules_path" json:"rules_path"`
}

// Default returns the standard engine configuration.
func Default() Config {
	return Config{
		ToleranceFloor: 0.01,
		ToleranceRatio: 0.0001,
		MinYears:       4,
		TxnIDThreshold: 0.5,
		OutlierSigma:   3,
		MaxSampleRows:  50,
	}
}

// Load reads a config file over the defaults. Extension picks the decoder:
// .hjson parses as HJSON, anything else as YAML. Zero-valued fields in the
// file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	var overlay Config
	if strings.HasSuffix(strings.ToLower(path), ".hjson") {
		err = hjson.Unmarshal(data, &overlay)
	} else {
		err = yaml.Unmarshal(data, &overlay)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.merge(overlay)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if o.ToleranceFloor != 0 {
		c.ToleranceFloor = o.ToleranceFloor
	}
	if o.ToleranceRatio != 0 {
		c.ToleranceRatio = o.ToleranceRatio
	}
	if o.MinYears != 0 {
		c.MinYears = o.MinYears
	}
	if o.TxnIDThreshold != 0 {
		c.TxnIDThreshold = o.TxnIDThreshold
	}
	if o.OutlierSigma != 0 {
		c.OutlierSigma = o.OutlierSigma
	}
	if o.MaxSampleRows != 0 {
		c.MaxSampleRows = o.MaxSampleRows
	}
	if o.RulesPath != "" {
		c.RulesPath = o.RulesPath
	}
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	if c.ToleranceFloor < 0 {
		return fmt.Errorf("tolerance_floor must be non-negative, got %g", c.ToleranceFloor)
	}
	if c.ToleranceRatio < 0 {
		return fmt.Errorf("tolerance_ratio must be non-negative, got %g", c.ToleranceRatio)
	}
	if c.MinYears < 2 {
		return fmt.Errorf("min_years must be at least 2, got %d", c.MinYears)
	}
	if c.TxnIDThreshold < 0 || c.TxnIDThreshold > 1 {
		return fmt.Errorf("txn_id_threshold must be in [0,1], got %g", c.TxnIDThreshold)
	}
	if c.OutlierSigma <= 0 {
		return fmt.Errorf("outlier_sigma must be positive, got %g", c.OutlierSigma)
	}
	if c.MaxSampleRows < 1 {
		return fmt.Errorf("max_sample_rows must be at least 1, got %d", c.MaxSampleRows)
	}
	return nil
}

// Tolerance computes the balance-check tolerance for a dataset whose largest
// absolute amount is maxAbs. The floor keeps tiny datasets from demanding
// exact float equality; the ratio scales with dataset magnitude.
func (c Config) Tolerance(maxAbs float64) float64 {
	tol := maxAbs * c.ToleranceRatio
	if tol < c.ToleranceFloor {
		tol = c.ToleranceFloor
	}
	return tol
}
