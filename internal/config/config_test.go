package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pzaremba/worklog/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "sqlite", cfg.Store.Backend)
	require.Equal(t, "worklog.db", cfg.Store.Path)
	require.True(t, cfg.Auth.Enabled)
	require.Equal(t, "USD", cfg.Earnings.BaseCurrency)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: 9090
store:
  backend: memory
earnings:
  base_currency: PLN
log:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	t.Setenv("WORKLOG_CONFIG_PATH", path)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "memory", cfg.Store.Backend)
	require.Equal(t, "PLN", cfg.Earnings.BaseCurrency)
	require.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep their defaults.
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: sqlite\n"), 0o644))
	t.Setenv("WORKLOG_CONFIG_PATH", path)
	t.Setenv("WORKLOG_STORE_BACKEND", "memory")
	t.Setenv("WORKLOG_SERVER_PORT", "7070")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "memory", cfg.Store.Backend)
	require.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("WORKLOG_STORE_BACKEND", "postgres")
	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadRejectsBadTransport(t *testing.T) {
	t.Setenv("WORKLOG_TRANSPORT_MODE", "grpc")
	_, err := config.Load()
	require.Error(t, err)
}
