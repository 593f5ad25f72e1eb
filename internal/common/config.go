// Package common provides shared utilities for TealScan
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for TealScan
type Config struct {
	Environment string           `toml:"environment"`
	Server      ServerConfig     `toml:"server"`
	Logging     LoggingConfig    `toml:"logging"`
	Scan        ScanConfig       `toml:"scan"`
	CashFlow    CashFlowConfig   `toml:"cashflow"`
	Fees        FeesConfig       `toml:"fees"`
	Classifier  ClassifierConfig `toml:"classifier"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	MaxBodyMB   int      `toml:"max_body_mb"`
	RateLimit   float64  `toml:"rate_limit"` // scan requests per second, 0 disables
	RateBurst   int      `toml:"rate_burst"`
	CORSOrigins []string `toml:"cors_origins"`
}

// MaxBodyBytes returns the request body limit in bytes.
func (c *ServerConfig) MaxBodyBytes() int64 {
	if c.MaxBodyMB <= 0 {
		return 10 << 20
	}
	return int64(c.MaxBodyMB) << 20
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// ScanConfig holds the scheme inclusion policy.
type ScanConfig struct {
	MinValue float64 `toml:"min_value"` // schemes valued below this are treated as closed
	Currency string  `toml:"currency"`  // ISO 4217 code used when formatting amounts
}

// CashFlowConfig controls how transaction descriptions are read.
type CashFlowConfig struct {
	ContributionKeywords []string `toml:"contribution_keywords"`
}

// FeesConfig holds the commission estimate policy.
type FeesConfig struct {
	RegularRate float64 `toml:"regular_rate"` // annual fraction of value charged to regular plans
}

// CategoryRule maps any of a set of name keywords to a category.
type CategoryRule struct {
	Category string   `toml:"category" json:"category"`
	Keywords []string `toml:"keywords" json:"keywords"`
}

// ClassifierConfig holds the ordered scheme-name rule table.
type ClassifierConfig struct {
	Categories      []CategoryRule `toml:"categories"`
	DefaultCategory string         `toml:"default_category"`
	DirectKeywords  []string       `toml:"direct_keywords"`
}

// IsProduction returns true when running in the production environment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production") || strings.EqualFold(c.Environment, "prod")
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8000,
			MaxBodyMB:   10,
			RateLimit:   5,
			RateBurst:   10,
			CORSOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Scan: ScanConfig{
			MinValue: 100,
			Currency: "INR",
		},
		CashFlow: CashFlowConfig{
			ContributionKeywords: []string{"PURCHASE", "SIP"},
		},
		Fees: FeesConfig{
			RegularRate: 0.01,
		},
		Classifier: ClassifierConfig{
			Categories: []CategoryRule{
				{Category: "Debt", Keywords: []string{"LIQUID", "DEBT", "BOND"}},
				{Category: "Gold", Keywords: []string{"GOLD"}},
			},
			DefaultCategory: "Equity",
			DirectKeywords:  []string{"DIRECT"},
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Later files override earlier
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		// Array tables append on decode; a file's rule table replaces the previous one
		rules := config.Classifier.Categories
		config.Classifier.Categories = nil

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}

		if config.Classifier.Categories == nil {
			config.Classifier.Categories = rules
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("TEALSCAN_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("TEALSCAN_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("TEALSCAN_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("TEALSCAN_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if v := os.Getenv("TEALSCAN_MIN_VALUE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Scan.MinValue = f
		}
	}

	if v := os.Getenv("TEALSCAN_REGULAR_FEE_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Fees.RegularRate = f
		}
	}

	if v := os.Getenv("TEALSCAN_CURRENCY"); v != "" {
		config.Scan.Currency = strings.ToUpper(v)
	}

	if v := os.Getenv("TEALSCAN_CORS_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		config.Server.CORSOrigins = origins
	}
}

// Validate rejects configurations the scan pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Scan.MinValue < 0 {
		return fmt.Errorf("scan.min_value must not be negative, got %v", c.Scan.MinValue)
	}
	if c.Fees.RegularRate < 0 || c.Fees.RegularRate > 1 {
		return fmt.Errorf("fees.regular_rate must be between 0 and 1, got %v", c.Fees.RegularRate)
	}
	for i, rule := range c.Classifier.Categories {
		if rule.Category == "" {
			return fmt.Errorf("classifier.categories[%d]: category is required", i)
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("classifier.categories[%d] (%s): at least one keyword is required", i, rule.Category)
		}
	}
	return nil
}
