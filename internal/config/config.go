package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the ambient runtime settings. The crawl parameters proper
// (seed, page budget, worker count) come from the command line; everything
// here has a default and may be overridden from an optional JSON file.
type Config struct {
	UserAgent        string `json:"user_agent"`
	FetchTimeoutMs   int    `json:"fetch_timeout_ms"`
	RankIterations   int    `json:"rank_iterations"`
	PagesReportPath  string `json:"pages_report_path"`
	RankReportPath   string `json:"rank_report_path"`
	MetricsPath      string `json:"metrics_path"`
	SnapshotPath     string `json:"snapshot_path"`
	MetricsAddr      string `json:"metrics_addr"`
	ProgressInterval int    `json:"progress_interval_ms"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads configuration from a JSON file, falling back to defaults when
// the file does not exist. A present-but-invalid file is an error.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config JSON: %w", err)
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0 (X11; Linux x86_64) webrank/1.0"
	}
	if cfg.FetchTimeoutMs == 0 {
		cfg.FetchTimeoutMs = 10000
	}
	if cfg.RankIterations == 0 {
		cfg.RankIterations = 30
	}
	if cfg.PagesReportPath == "" {
		cfg.PagesReportPath = "crawled_pages.csv"
	}
	if cfg.RankReportPath == "" {
		cfg.RankReportPath = "pagerank_results.csv"
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "metrics.csv"
	}
	if cfg.SnapshotPath == "" {
		cfg.SnapshotPath = "webrank.db"
	}
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = ":2112"
	}
	if cfg.ProgressInterval == 0 {
		cfg.ProgressInterval = 1000
	}
}

func validate(cfg *Config) error {
	if cfg.FetchTimeoutMs < 1000 {
		return fmt.Errorf("fetch_timeout_ms must be >= 1000")
	}
	if cfg.RankIterations < 1 {
		return fmt.Errorf("rank_iterations must be >= 1")
	}
	if cfg.ProgressInterval < 100 {
		return fmt.Errorf("progress_interval_ms must be >= 100")
	}
	return nil
}
