package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.False(t, cfg.JSONLogs())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty addr", func(c *Config) { c.Server.ListenAddr = " " }, "listen_addr"},
		{"empty data path", func(c *Config) { c.Data.Path = "" }, "data.path"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"negative rps", func(c *Config) { c.RateLimit.RPS = -1 }, "rate_limit.rps"},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }, "rate_limit.burst"},
		{"negative preview", func(c *Config) { c.UI.PreviewRows = -3 }, "preview_rows"},
		{"relative geojson url", func(c *Config) { c.UI.WorldGeoJSONURL = "world.json" }, "world_geojson_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("limiter disabled ignores burst", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultConfig()
		cfg.RateLimit = RateLimitConfig{}
		assert.NoError(t, cfg.Validate())
	})
}

func TestSlogLevel(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
	} {
		cfg := DefaultConfig()
		cfg.Log.Level = in
		assert.Equal(t, want, cfg.SlogLevel(), in)
	}
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "aidash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data:
  path: /srv/data/ai.csv
log:
  format: json
ui:
  preview_rows: 25
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/srv/data/ai.csv", cfg.Data.Path)
	assert.True(t, cfg.JSONLogs())
	assert.Equal(t, 25, cfg.UI.PreviewRows)
	// Untouched keys keep their defaults.
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, DefaultConfig().UI.Title, cfg.UI.Title)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("server: [unterminated"), 0o600))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		EnvDataPath:   "/tmp/ai.csv",
		EnvListenAddr: "127.0.0.1:9000",
		EnvLogLevel:   "debug",
		EnvRateRPS:    "2.5",
		EnvRateBurst:  " 7 ",
	}
	cfg := DefaultConfig()
	require.NoError(t, applyEnv(cfg, func(k string) string { return env[k] }))

	assert.Equal(t, "/tmp/ai.csv", cfg.Data.Path)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.ListenAddr)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "text", cfg.Log.Format)
	assert.InDelta(t, 2.5, cfg.RateLimit.RPS, 1e-9)
	assert.Equal(t, 7, cfg.RateLimit.Burst)

	env[EnvRateBurst] = "lots"
	err := applyEnv(DefaultConfig(), func(k string) string { return env[k] })
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvRateBurst)
}
