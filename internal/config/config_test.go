package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Entity.DefaultIDs = []string{"01", "02"}
	cfg.Report.DeductionMarkers = []string{"(-)", "imposto"}
	cfg.Server.Watch = true

	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"01", "02"}, got.Entity.DefaultIDs)
	assert.Equal(t, filepath.Join(dir, "ledger"), got.Ledger.Dir)
	assert.Equal(t, filepath.Join(dir, "catalog/dre-catalog.csv"), got.Catalog.Path)
	assert.Equal(t, "auto", got.Ledger.Format)
	assert.Equal(t, "3-DRE", got.Report.AccountType)
	assert.Equal(t, []string{"(-)", "imposto"}, got.Report.DeductionMarkers)
	assert.Equal(t, 30*time.Second, got.Server.RequestTimeout)
	assert.True(t, got.Server.Watch)
	assert.Equal(t, cfg.Log, got.Log)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "ledger", cfg.Ledger.Dir)
	assert.Equal(t, "catalog/dre-catalog.csv", cfg.Catalog.Path)
	assert.Equal(t, "3-DRE", cfg.Report.AccountType)
	assert.Equal(t, "period", cfg.Report.CompareMode)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10, cfg.Server.ExportRateLimit)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Entity.DefaultIDs)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("ledger:\n  dir: /data/ledger\nlog:\n  format: json\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/ledger", cfg.Ledger.Dir)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "account_type: 3-DRE")
	assert.Contains(t, contents, "dir: ledger")
	assert.Contains(t, contents, "request_timeout: 30s")
	assert.Contains(t, contents, "compare_mode: period")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"compare mode", func(c *Config) { c.Report.CompareMode = "ytd" }},
		{"account type", func(c *Config) { c.Report.AccountType = " " }},
		{"ledger dir", func(c *Config) { c.Ledger.Dir = "" }},
		{"rate limit", func(c *Config) { c.Server.ExportRateLimit = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DRE_LOG_FORMAT", "json")
	t.Setenv("DRE_LOG_LEVEL", "debug")
	t.Setenv("DRE_ADDR", "127.0.0.1:9000")
	t.Setenv("DRE_LEDGER_DIR", "/srv/ledger")
	t.Setenv("DRE_CATALOG_PATH", "/srv/catalog.csv")
	t.Setenv("DRE_ACCOUNT_TYPE", "4-RESULTADO")

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg))

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "/srv/ledger", cfg.Ledger.Dir)
	assert.Equal(t, "/srv/catalog.csv", cfg.Catalog.Path)
	assert.Equal(t, "4-RESULTADO", cfg.Report.AccountType)
}

func TestApplyEnv_UnsetKeepsFile(t *testing.T) {
	t.Setenv("DRE_ADDR", "")

	cfg := Default()
	cfg.Server.Addr = ":9999"
	require.NoError(t, ApplyEnv(cfg))
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadDotEnv(filepath.Join(dir, ".env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DRE_TEST_DOTENV=from-file\n"), 0o644))
	t.Setenv("DRE_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("DRE_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("DRE_TEST_DOTENV"))
}
