package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spendtrack-dev/spendtrack/internal/rules"
)

// FileName is the config file looked up in the working directory.
const FileName = "spendtrack.yaml"

// Config represents the top-level spendtrack.yaml configuration.
type Config struct {
	Accounts []AccountConfig `yaml:"accounts"`
	Render   RenderConfig    `yaml:"render"`
	Classify ClassifyConfig  `yaml:"classify"`
}

// AccountConfig describes one account type: which export files it applies to
// and the category rules its transactions are classified with.
type AccountConfig struct {
	Name       string           `yaml:"name"`
	Match      []string         `yaml:"match,omitempty"` // file name substrings, case-insensitive
	Policy     string           `yaml:"policy"`          // first-match | best-score
	Categories []CategoryConfig `yaml:"categories"`
}

// CategoryConfig is a category and its patterns, in declaration order.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
}

// RenderConfig controls text output.
type RenderConfig struct {
	MaxRows             int    `yaml:"max_rows"`              // per month, 0 = unlimited
	MaxDescriptionWidth int    `yaml:"max_description_width"` // 0 = unlimited
	CurrencySymbol      string `yaml:"currency_symbol"`
}

// ClassifyConfig controls batch classification.
type ClassifyConfig struct {
	Workers int `yaml:"workers"` // 0 or 1 = serial
}

// Load reads a spendtrack.yaml file from disk.
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

// LoadOrDefault loads path, falling back to Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
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

// Default returns a Config carrying the built-in account rule sets.
func Default() *Config {
	cfg := &Config{
		Render: RenderConfig{
			CurrencySymbol: "$",
		},
	}
	for _, name := range rules.DefaultAccounts() {
		specs, policy, _ := rules.DefaultSpecs(name)
		cfg.Accounts = append(cfg.Accounts, AccountConfig{
			Name:       name,
			Match:      []string{name},
			Policy:     string(policy),
			Categories: FromSpecs(specs),
		})
	}
	return cfg
}

// FromSpecs converts rule definitions to their config form.
func FromSpecs(specs []rules.CategorySpec) []CategoryConfig {
	out := make([]CategoryConfig, len(specs))
	for i, s := range specs {
		out[i] = CategoryConfig{Name: s.Name, Patterns: s.Patterns}
	}
	return out
}

// Specs converts the account's categories to rule definitions.
func (a AccountConfig) Specs() []rules.CategorySpec {
	out := make([]rules.CategorySpec, len(a.Categories))
	for i, c := range a.Categories {
		out[i] = rules.CategorySpec{Name: c.Name, Patterns: c.Patterns}
	}
	return out
}
