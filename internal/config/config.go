package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SectorProxy maps a sector name to the ETF tracked as its proxy. The table
// is loaded once and treated as immutable; list order is the tie-break order
// of the heatmap.
type SectorProxy struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
}

// Config holds all application configuration.
type Config struct {
	Gemini struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`
	Discord struct {
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"discord"`
	Scan struct {
		Lookback            string `yaml:"lookback"` // Yahoo range string
		SMAFast             int    `yaml:"sma_fast"`
		SMASlow             int    `yaml:"sma_slow"`
		ConsolidationWindow int    `yaml:"consolidation_window"`
		BatchSize           int    `yaml:"batch_size"`
	} `yaml:"scan"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Sectors []SectorProxy `yaml:"sectors"`
	Proxy   string        `yaml:"proxy"`
}

// defaultSectors is the standard 11-sector SPDR proxy table, used when the
// config file does not override it.
var defaultSectors = []SectorProxy{
	{Name: "Technology", Symbol: "XLK"},
	{Name: "Health Care", Symbol: "XLV"},
	{Name: "Financials", Symbol: "XLF"},
	{Name: "Consumer Discretionary", Symbol: "XLY"},
	{Name: "Consumer Staples", Symbol: "XLP"},
	{Name: "Energy", Symbol: "XLE"},
	{Name: "Industrials", Symbol: "XLI"},
	{Name: "Materials", Symbol: "XLB"},
	{Name: "Utilities", Symbol: "XLU"},
	{Name: "Real Estate", Symbol: "XLRE"},
	{Name: "Communication Services", Symbol: "XLC"},
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is fine; env vars and defaults
// carry the whole configuration in that case.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.Discord.WebhookURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Schedule.ScanCron = v
	}

	// Defaults
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.5-flash"
	}
	if cfg.Scan.Lookback == "" {
		cfg.Scan.Lookback = "1y"
	}
	if cfg.Scan.SMAFast == 0 {
		cfg.Scan.SMAFast = 50
	}
	if cfg.Scan.SMASlow == 0 {
		cfg.Scan.SMASlow = 150
	}
	if cfg.Scan.ConsolidationWindow == 0 {
		cfg.Scan.ConsolidationWindow = 20
	}
	if cfg.Scan.BatchSize == 0 {
		cfg.Scan.BatchSize = 10
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 0 22 * * 1-5"
	}
	if len(cfg.Sectors) == 0 {
		cfg.Sectors = defaultSectors
	}

	return cfg, nil
}

// Validate checks the fields required for an analyzing scan. Pure indicator
// runs (--no-analysis) work without a Gemini key, so the caller decides when
// to enforce this.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("gemini.api_key is required")
	}
	if c.Scan.SMAFast >= c.Scan.SMASlow {
		return fmt.Errorf("scan.sma_fast must be below scan.sma_slow")
	}
	return nil
}
