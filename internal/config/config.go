// Package config loads and validates the YAML configuration describing a
// Finanzguru CSV export: income accounts, row filters, the issue category
// hierarchy and the column/label names the aggregation engine needs.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/geldfluss/sankey/internal/frame"
)

// IncomeFilter declares one income bucket of an account: the amount column
// is summed over rows whose Column contains any of the Values
// (case-insensitive substring). Overlapping values count a row once per
// matching value.
type IncomeFilter struct {
	Label  string   `yaml:"sankey_label"`
	Column string   `yaml:"csv_column_name"`
	Values []string `yaml:"csv_value_filters"`
}

// AccountSource is one bank or payment account treated as an income source.
type AccountSource struct {
	Name          string         `yaml:"account_name"`
	IBAN          string         `yaml:"iban"`
	IncomeFilters []IncomeFilter `yaml:"income_filters"`
}

// IssueCategory is one level of the expense drill-down chain. Each level
// names a CSV column; Sub points to the next level, if any. The chain is a
// singly-linked list, not a tree: the same column sequence is re-applied per
// discovered category value.
type IssueCategory struct {
	Column string         `yaml:"csv_column_name"`
	Sub    *IssueCategory `yaml:"sub_category"`
}

// Depth returns the number of chained levels. A nil chain has depth 0.
func (c *IssueCategory) Depth() int {
	depth := 0
	for level := c; level != nil; level = level.Sub {
		depth++
	}
	return depth
}

// Config is the full parsed configuration.
type Config struct {
	InputFile  string `yaml:"input_file"`
	OutputFile string `yaml:"output_file"`

	IncomeAccounts []AccountSource `yaml:"income_reference_accounts"`
	IncomeFilters  []frame.Filter  `yaml:"income_data_frame_filters"`
	IssueFilters   []frame.Filter  `yaml:"issues_data_frame_filters"`
	IssueHierarchy *IssueCategory  `yaml:"issues_hierarchy"`

	IncomeNodeName    string `yaml:"income_node_name"`
	NotUsedIncomeName string `yaml:"not_used_income_name"`
	OtherIncomeName   string `yaml:"other_income_name"`

	YearColumn   string `yaml:"analysis_year_column_name"`
	MonthColumn  string `yaml:"analysis_month_column_name"`
	AmountColumn string `yaml:"amount_out_name"`
}

// Load parses and validates a YAML configuration.
func Load(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config (check syntax and indentation): %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile loads the configuration from a filesystem path.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %q: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.AmountColumn) == "" {
		return fmt.Errorf("config: amount_out_name cannot be empty")
	}
	if strings.TrimSpace(c.YearColumn) == "" {
		return fmt.Errorf("config: analysis_year_column_name cannot be empty")
	}
	if strings.TrimSpace(c.IncomeNodeName) == "" {
		return fmt.Errorf("config: income_node_name cannot be empty")
	}
	if strings.TrimSpace(c.OtherIncomeName) == "" {
		return fmt.Errorf("config: other_income_name cannot be empty")
	}
	if strings.TrimSpace(c.NotUsedIncomeName) == "" {
		return fmt.Errorf("config: not_used_income_name cannot be empty")
	}

	for i, account := range c.IncomeAccounts {
		if strings.TrimSpace(account.Name) == "" {
			return fmt.Errorf("config: income account %d: account_name cannot be empty", i)
		}
		for j, filter := range account.IncomeFilters {
			if strings.TrimSpace(filter.Label) == "" {
				return fmt.Errorf("config: income account %d (%s), filter %d: sankey_label cannot be empty", i, account.Name, j)
			}
			if strings.TrimSpace(filter.Column) == "" {
				return fmt.Errorf("config: income account %d (%s), filter %d (%s): csv_column_name cannot be empty", i, account.Name, j, filter.Label)
			}
		}
	}

	level := 0
	for category := c.IssueHierarchy; category != nil; category = category.Sub {
		if strings.TrimSpace(category.Column) == "" {
			return fmt.Errorf("config: issues_hierarchy level %d: csv_column_name cannot be empty", level)
		}
		level++
	}

	return nil
}

// defaultConfig is the skeleton written when no config file exists yet,
// pre-filled with the Finanzguru export column names.
const defaultConfig = `input_file: ""
output_file: ""
income_reference_accounts: []
income_data_frame_filters: []
issues_data_frame_filters: []
issues_hierarchy:
  csv_column_name: Analyse-Hauptkategorie
  sub_category:
    csv_column_name: Analyse-Unterkategorie
income_node_name: Income
not_used_income_name: Not used income
other_income_name: Other income
analysis_year_column_name: Analyse-Jahr
analysis_month_column_name: Analyse-Monat
amount_out_name: Betrag
`

// WriteDefault writes a default configuration skeleton to path unless a file
// already exists there. Returns true if a file was written.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config file %q: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write default config to %q: %w", path, err)
	}
	return true, nil
}
