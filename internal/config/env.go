package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DRE"

// envOverrides mirrors the settings that may come from the environment.
// Empty values leave the file setting untouched.
type envOverrides struct {
	LogFormat   string `envconfig:"LOG_FORMAT"`
	LogLevel    string `envconfig:"LOG_LEVEL"`
	Addr        string `envconfig:"ADDR"`
	LedgerDir   string `envconfig:"LEDGER_DIR"`
	CatalogPath string `envconfig:"CATALOG_PATH"`
	AccountType string `envconfig:"ACCOUNT_TYPE"`
}

// ApplyEnv overlays DRE_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Log.Format, env.LogFormat)
	set(&cfg.Log.Level, env.LogLevel)
	set(&cfg.Server.Addr, env.Addr)
	set(&cfg.Ledger.Dir, env.LedgerDir)
	set(&cfg.Catalog.Path, env.CatalogPath)
	set(&cfg.Report.AccountType, env.AccountType)
	return nil
}

// LoadDotEnv loads variables from a .env file into the process
// environment. A missing file is not an error. Variables already set win.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
