package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/klinik-cli/internal/adapters/gateway"
)

func isolatedHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"KLINIK_ENV", "KLINIK_API_URL", "KLINIK_API_TIMEOUT", "KLINIK_SESSION_BACKEND", "KLINIK_LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolatedHome(t)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.True(t, cfg.Production())
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 3, cfg.API.MaxRetries)
	assert.Equal(t, time.Second, cfg.API.RetryDelay)
	assert.Equal(t, BackendChain, cfg.Session.Backend)
	assert.Equal(t, filepath.Join(home, ".klinik"), cfg.Session.Dir)
	assert.Equal(t, filepath.Join(home, ".klinik", "session.toml"), cfg.IdentityPath())

	gw := cfg.Gateway()
	assert.Equal(t, gateway.ProductionBaseURL, gw.BaseURL)
	assert.True(t, gw.Production)
	assert.Equal(t, gateway.DefaultAcceptLanguage, gw.AcceptLanguage)
}

func TestLoadDevelopmentModeUsesLocalAPI(t *testing.T) {
	isolatedHome(t)
	t.Setenv("KLINIK_ENV", "development")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.False(t, cfg.Production())
	assert.Equal(t, gateway.DevelopmentBaseURL, cfg.Gateway().BaseURL)
}

func TestLoadAPIURLOverride(t *testing.T) {
	isolatedHome(t)
	t.Setenv("KLINIK_API_URL", "https://klinik.example.com/api")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "https://klinik.example.com/api", cfg.Gateway().BaseURL)
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := isolatedHome(t)
	dir := filepath.Join(home, ".klinik")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
env = "development"

[api]
timeout = "5s"
max_retries = 1
retry_delay = "250ms"

[session]
backend = "file"

[metrics]
file = "/tmp/klinik.prom"
`), 0o600))

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1, cfg.API.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.API.RetryDelay)
	assert.Equal(t, BackendFile, cfg.Session.Backend)
	assert.Equal(t, "/tmp/klinik.prom", cfg.MetricsFile)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	home := isolatedHome(t)
	dir := filepath.Join(home, ".klinik")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[session]\nbackend = \"file\"\n"), 0o600))
	t.Setenv("KLINIK_SESSION_BACKEND", "redis")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.Session.Backend)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "env", key: "KLINIK_ENV", value: "staging", wantErr: "invalid env"},
		{name: "backend", key: "KLINIK_SESSION_BACKEND", value: "keychain", wantErr: "invalid session backend"},
		{name: "timeout", key: "KLINIK_API_TIMEOUT", value: "0s", wantErr: "api timeout must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolatedHome(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load(viper.New())
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadMalformedConfigFile(t *testing.T) {
	home := isolatedHome(t)
	dir := filepath.Join(home, ".klinik")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("env = ["), 0o600))

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.ErrorContains(t, err, "read config file")
}
