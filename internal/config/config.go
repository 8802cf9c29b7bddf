package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/resultado/dre/internal/model"
)

// FileName is the default config file name.
const FileName = "dre.yaml"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config represents the top-level dre.yaml configuration.
type Config struct {
	Entity  EntityConfig  `yaml:"entity"`
	Ledger  LedgerConfig  `yaml:"ledger"`
	Catalog CatalogConfig `yaml:"catalog"`
	Report  ReportConfig  `yaml:"report"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// EntityConfig selects the entities reported when none are requested.
// Empty means every entity in the ledger.
type EntityConfig struct {
	DefaultIDs []string `yaml:"default_ids,omitempty"`
}

// LedgerConfig locates the ledger exports.
type LedgerConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // auto, csv or csv-br
}

// CatalogConfig locates the chart of accounts.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// ReportConfig controls the aggregation engine.
type ReportConfig struct {
	AccountType      string   `yaml:"account_type"`
	DeductionMarkers []string `yaml:"deduction_markers,omitempty"`
	CompareMode      string   `yaml:"compare_mode"`
}

// ServerConfig controls `dre serve`.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ExportRateLimit int           `yaml:"export_rate_limit"` // requests per minute per client
	Watch           bool          `yaml:"watch"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Format string `yaml:"format"` // text or json
	Level  string `yaml:"level"`  // debug, info, warn, error
}

// Load reads a dre.yaml file from disk. Relative paths in the file are
// resolved against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.ResolvePaths(filepath.Dir(path))
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

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			Dir:    "ledger",
			Format: "auto",
		},
		Catalog: CatalogConfig{
			Path: "catalog/dre-catalog.csv",
		},
		Report: ReportConfig{
			AccountType: model.AccountTypeDRE,
			CompareMode: "period",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			RequestTimeout:  30 * time.Second,
			ExportRateLimit: 10,
		},
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

// ResolvePaths makes the ledger dir and catalog path absolute relative to base.
func (c *Config) ResolvePaths(base string) {
	if c.Ledger.Dir != "" && !filepath.IsAbs(c.Ledger.Dir) {
		c.Ledger.Dir = filepath.Join(base, c.Ledger.Dir)
	}
	if c.Catalog.Path != "" && !filepath.IsAbs(c.Catalog.Path) {
		c.Catalog.Path = filepath.Join(base, c.Catalog.Path)
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalid, c.Log.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	switch c.Report.CompareMode {
	case "period", "cumulative":
	default:
		return fmt.Errorf("%w: report.compare_mode %q (want period or cumulative)", ErrInvalid, c.Report.CompareMode)
	}
	if strings.TrimSpace(c.Report.AccountType) == "" {
		return fmt.Errorf("%w: report.account_type is empty", ErrInvalid)
	}
	if c.Ledger.Dir == "" {
		return fmt.Errorf("%w: ledger.dir is empty", ErrInvalid)
	}
	if c.Server.ExportRateLimit < 0 {
		return fmt.Errorf("%w: server.export_rate_limit must not be negative", ErrInvalid)
	}
	return nil
}
