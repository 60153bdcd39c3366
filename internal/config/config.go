package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/yqhr/mfrecon/internal/recon"
)

// Config represents the top-level mfrecon.yaml configuration.
type Config struct {
	Matching MatchingConfig `yaml:"matching"`
	Import   ImportConfig   `yaml:"import"`
}

// MatchingConfig controls the expense/refund matching window and policy.
type MatchingConfig struct {
	WindowDays          int     `yaml:"window_days"`
	AmountTolerance     float64 `yaml:"amount_tolerance"`     // absolute, minor-unit scale
	RelativeTolerance   float64 `yaml:"relative_tolerance"`   // 0.05 = ±5%
	SimilarityThreshold float64 `yaml:"similarity_threshold"` // inclusive
	Scorer              string  `yaml:"scorer"`               // token_set or cosine
	AllowMultiRefund    bool    `yaml:"allow_multi_refund_per_expense"`
}

// ImportConfig controls import directory handling.
type ImportConfig struct {
	Format        string `yaml:"format"`
	MoveProcessed bool   `yaml:"move_processed"`
}

// Load reads an mfrecon.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the standard matching parameters.
func Default() *Config {
	return &Config{
		Matching: MatchingConfig{
			WindowDays:          14,
			AmountTolerance:     100,
			RelativeTolerance:   0.05,
			SimilarityThreshold: 0.8,
			Scorer:              "token_set",
			AllowMultiRefund:    false,
		},
		Import: ImportConfig{
			Format:        "moneyforward",
			MoveProcessed: true,
		},
	}
}

// Options converts the matching section into engine options. The scorer
// name is resolved here so a bad config fails before any data is read.
func (m MatchingConfig) Options() (recon.Options, error) {
	scorer, err := recon.NewScorer(m.Scorer)
	if err != nil {
		return recon.Options{}, err
	}
	return recon.Options{
		WindowDays:                 m.WindowDays,
		AmountTolerance:            decimal.NewFromFloat(m.AmountTolerance),
		RelativeTolerance:          decimal.NewFromFloat(m.RelativeTolerance),
		Threshold:                  m.SimilarityThreshold,
		Scorer:                     scorer,
		AllowMultiRefundPerExpense: m.AllowMultiRefund,
	}, nil
}
