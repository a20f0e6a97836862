package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/shopfloor/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() config.Config {
	return config.Config{
		DB:       config.DBConfig{Path: config.MemoryDBPath},
		Timezone: "UTC",
		Poll:     config.PollConfig{Interval: 5 * time.Second},
		Log:      config.LogConfig{Level: "info"},
	}
}

func TestValidate_ValidConfig_NoError(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   error
	}{
		{"empty db path", func(c *config.Config) { c.DB.Path = " " }, config.ErrEmptyDBPath},
		{"bad timezone", func(c *config.Config) { c.Timezone = "Mars/Olympus" }, config.ErrInvalidTimezone},
		{"fast poll", func(c *config.Config) { c.Poll.Interval = 10 * time.Millisecond }, config.ErrInvalidPollInterval},
		{"bad level", func(c *config.Config) { c.Log.Level = "loud" }, config.ErrInvalidLogLevel},
		{"negative rotation", func(c *config.Config) { c.Log.MaxBackups = -1 }, config.ErrInvalidLogRotation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tc.want)
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := validConfig()
	cfg.Timezone = "Europe/Madrid"
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Madrid", loc.String())

	cfg.Timezone = ""
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultServerAddr, cfg.Server.Addr)
	assert.Equal(t, config.DefaultPollInterval, cfg.Poll.Interval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ".shopfloor", filepath.Base(filepath.Dir(cfg.DB.Path)))
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db:
  path: /tmp/shop.db
timezone: UTC
server:
  addr: ":9090"
  cors_origins: ["http://till.local"]
poll:
  interval: 2s
log:
  level: debug
`), 0o644))
	t.Setenv("SHOPFLOOR_SERVER_ADDR", ":7070")
	t.Setenv("SHOPFLOOR_METRICS_ENABLED", "false")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/shop.db", cfg.DB.Path)
	assert.Equal(t, ":7070", cfg.Server.Addr, "env overrides the file")
	assert.Equal(t, []string{"http://till.local"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 2*time.Second, cfg.Poll.Interval)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_InvalidFileValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: Nowhere/Land\n"), 0o644))

	_, err := config.Load(path)
	assert.ErrorIs(t, err, config.ErrInvalidTimezone)
}
