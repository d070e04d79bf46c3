// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/scriptkit/internal/util"
)

// =============================================================================
// CONFIG TYPES
// =============================================================================

// Config is the root of the cost tracker configuration.
type Config struct {
	// Currency is the symbol prefixed to every amount (default "$")
	Currency string `json:"currency" toml:"currency" yaml:"currency"`

	// OverallMonthlyBudget caps spend across all projects
	OverallMonthlyBudget *float64 `json:"overallMonthlyBudget,omitempty" toml:"overallMonthlyBudget,omitempty" yaml:"overallMonthlyBudget,omitempty"`

	// Providers maps a provider key to its definition
	Providers map[string]Provider `json:"providers" toml:"providers" yaml:"providers"`

	// Projects are reported in the order given here
	Projects []Project `json:"projects" toml:"projects" yaml:"projects"`
}

// Provider is a billed AI API vendor.
type Provider struct {
	DisplayName   string        `json:"displayName" toml:"displayName" yaml:"displayName"`
	Pricing       *Pricing      `json:"pricing,omitempty" toml:"pricing,omitempty" yaml:"pricing,omitempty"`
	MonthlyBudget *float64      `json:"monthlyBudget,omitempty" toml:"monthlyBudget,omitempty" yaml:"monthlyBudget,omitempty"`
	Optimization  *Optimization `json:"optimization,omitempty" toml:"optimization,omitempty" yaml:"optimization,omitempty"`
}

// Pricing is the wire form of a pricing rule. Type selects between "manual"
// and "web"; see the pricing package for the resolved variants.
type Pricing struct {
	Type          string   `json:"type" toml:"type" yaml:"type"`
	Unit          string   `json:"unit,omitempty" toml:"unit,omitempty" yaml:"unit,omitempty"`
	Price         *float64 `json:"price,omitempty" toml:"price,omitempty" yaml:"price,omitempty"`
	URL           string   `json:"url,omitempty" toml:"url,omitempty" yaml:"url,omitempty"`
	Regex         string   `json:"regex,omitempty" toml:"regex,omitempty" yaml:"regex,omitempty"`
	Selector      string   `json:"selector,omitempty" toml:"selector,omitempty" yaml:"selector,omitempty"`
	FallbackPrice *float64 `json:"fallbackPrice,omitempty" toml:"fallbackPrice,omitempty" yaml:"fallbackPrice,omitempty"`
	Note          string   `json:"note,omitempty" toml:"note,omitempty" yaml:"note,omitempty"`
}

// Optimization suggests moving part of a provider's workload elsewhere.
type Optimization struct {
	Alternative        string  `json:"alternative" toml:"alternative" yaml:"alternative"`
	EligibleUsageRatio float64 `json:"eligibleUsageRatio" toml:"eligibleUsageRatio" yaml:"eligibleUsageRatio"`
	Note               string  `json:"note,omitempty" toml:"note,omitempty" yaml:"note,omitempty"`
}

// Project is one consumer of a provider.
type Project struct {
	Name        string     `json:"name" toml:"name" yaml:"name"`
	Provider    string     `json:"provider" toml:"provider" yaml:"provider"`
	MonthToDate Usage      `json:"monthToDate" toml:"monthToDate" yaml:"monthToDate"`
	Recent7Days *Usage     `json:"recent7Days,omitempty" toml:"recent7Days,omitempty" yaml:"recent7Days,omitempty"`
	Threshold   *Threshold `json:"threshold,omitempty" toml:"threshold,omitempty" yaml:"threshold,omitempty"`
}

// Usage counts. A nil field is absent, which is not the same as zero.
type Usage struct {
	Calls  *float64 `json:"calls,omitempty" toml:"calls,omitempty" yaml:"calls,omitempty"`
	Tokens *float64 `json:"tokens,omitempty" toml:"tokens,omitempty" yaml:"tokens,omitempty"`
}

// Threshold is a per-project budget.
type Threshold struct {
	MonthlyBudget *float64 `json:"monthlyBudget,omitempty" toml:"monthlyBudget,omitempty" yaml:"monthlyBudget,omitempty"`
}

// DefaultCurrency is used when the config leaves currency empty.
const DefaultCurrency = "$"

// Float returns a pointer to v. Handy for building configs in code.
func Float(v float64) *float64 {
	return &v
}

// Value returns *p, or 0 when p is nil.
func Value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// ProviderKeys returns the provider keys in sorted order.
func (c *Config) ProviderKeys() []string {
	keys := make([]string, 0, len(c.Providers))
	for k := range c.Providers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

const (
	// EnvConfigPath overrides the default config location
	EnvConfigPath = "API_COST_TRACKER_CONFIG"
	// EnvCurrency overrides the configured currency symbol
	EnvCurrency = "API_COST_TRACKER_CURRENCY"
)

// ConfigDir returns the directory holding the default config file.
func ConfigDir() (string, error) {
	home, err := util.HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "api-cost-tracker"), nil
}

// DefaultPath returns ~/.config/api-cost-tracker/config.json.
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ResolvePath picks the config path: explicit flag value, then
// API_COST_TRACKER_CONFIG, then DefaultPath. Relative paths are resolved
// against the home directory.
func ResolvePath(flagValue string) (string, error) {
	p := flagValue
	if p == "" {
		p = os.Getenv(EnvConfigPath)
	}
	if p == "" {
		return DefaultPath()
	}
	return util.HomePath(p)
}

// =============================================================================
// FORMATS
// =============================================================================

type format int

const (
	formatJSON format = iota
	formatTOML
	formatYAML
)

func (f format) String() string {
	switch f {
	case formatTOML:
		return "TOML"
	case formatYAML:
		return "YAML"
	default:
		return "JSON"
	}
}

func formatFor(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

func decode(f format, data []byte, cfg *Config) error {
	switch f {
	case formatTOML:
		_, err := toml.Decode(string(data), cfg)
		return err
	case formatYAML:
		return yaml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

func encode(f format, cfg *Config) ([]byte, error) {
	switch f {
	case formatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case formatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// =============================================================================
// LOAD / BOOTSTRAP
// =============================================================================

// EnsureExists writes the starter config to path when no file is there yet.
// It reports whether a file was created.
func EnsureExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to check config %s: %w", path, err)
	}

	f := formatFor(path)
	data, err := encode(f, Sample())
	if err != nil {
		return false, fmt.Errorf("failed to encode sample %s config: %w", f, err)
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write sample config: %w", err)
	}
	return true, nil
}

// Load reads and decodes the config at path, applies environment overrides
// and fills defaults. A malformed file is an error; nothing is repaired.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	f := formatFor(path)
	cfg := &Config{}
	if err := decode(f, data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s config %s: %w", f, path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	return cfg, nil
}

// ApplyEnvOverrides applies API_COST_TRACKER_* variables.
func (c *Config) ApplyEnvOverrides() {
	if currency := os.Getenv(EnvCurrency); currency != "" {
		c.Currency = currency
	}
}

// SetDefaults fills values the rest of the tracker relies on.
func (c *Config) SetDefaults() {
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	if c.Providers == nil {
		c.Providers = map[string]Provider{}
	}
}
