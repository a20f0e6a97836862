package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config is the top-level shopfloor configuration.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	DB       DBConfig      `mapstructure:"db"`
	Timezone string        `mapstructure:"timezone"`
	Server   ServerConfig  `mapstructure:"server"`
	Poll     PollConfig    `mapstructure:"poll"`
	Log      LogConfig     `mapstructure:"log"`
	Metrics  MetricsConfig `mapstructure:"metrics"`
}

type DBConfig struct {
	// Path is the SQLite file, or ":memory:".
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type PollConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// LogConfig controls the slog handler. An empty File logs to stderr only.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

const (
	DefaultTimezone     = "Local"
	DefaultServerAddr   = ":8080"
	DefaultPollInterval = 5 * time.Second
	DefaultLogLevel     = "info"
	DefaultLogMaxSizeMB = 50
	DefaultLogBackups   = 5
	DefaultLogMaxAge    = 30
	MemoryDBPath        = ":memory:"
)

// DefaultDBPath is ~/.shopfloor/shopfloor.db, or a relative path when the
// home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".shopfloor", "shopfloor.db")
	}
	return filepath.Join(home, ".shopfloor", "shopfloor.db")
}

var (
	// ErrEmptyDBPath indicates db.path is blank.
	ErrEmptyDBPath = errors.New("db.path must not be empty")
	// ErrInvalidTimezone indicates timezone is not a known IANA zone.
	ErrInvalidTimezone = errors.New("timezone must be an IANA zone name or Local")
	// ErrInvalidPollInterval indicates the poll interval is too short.
	ErrInvalidPollInterval = errors.New("poll.interval must be at least 1s")
	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("log.level must be debug, info, warn or error")
	// ErrInvalidLogRotation indicates a negative rotation setting.
	ErrInvalidLogRotation = errors.New("log rotation settings must be non-negative")
)

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DB.Path) == "" {
		return ErrEmptyDBPath
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Poll.Interval < time.Second {
		return ErrInvalidPollInterval
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return ErrInvalidLogRotation
	}
	return nil
}

// Location resolves Timezone; it defines which calendar day a time falls on.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Timezone)
	}
	return loc, nil
}
