// Package config handles configuration loading from defaults, a TOML file,
// an optional .env file and environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"

	"github.com/warp/shift-hours/balance"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SHIFTHOURS_"

// Config holds the application configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Storage   StorageConfig   `toml:"storage"`
	Defaults  DefaultsConfig  `toml:"defaults"`
	Reports   ReportsConfig   `toml:"reports"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Log       LogConfig       `toml:"log"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// DefaultsConfig is the unit configuration used when a unit has none stored.
type DefaultsConfig struct {
	StandardMonthlyHours float64 `toml:"standard_monthly_hours"`
	PaymentPercentage    float64 `toml:"payment_percentage"`
	MinimumHours         float64 `toml:"minimum_hours"`
}

// ReportsConfig holds presentation thresholds.
type ReportsConfig struct {
	HighAccrualThreshold float64 `toml:"high_accrual_threshold"` // HAC above this is flagged
}

// SchedulerConfig controls the automatic month close.
type SchedulerConfig struct {
	Enabled  bool   `toml:"enabled"`
	Interval string `toml:"interval"` // Go duration, e.g. "1h"
	Source   string `toml:"source"`   // "registry" or "roster"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		},
		Storage: StorageConfig{
			DBPath: "./shift-hours.db",
		},
		Defaults: DefaultsConfig{
			StandardMonthlyHours: balance.DefaultStandardMonthlyHours.InexactFloat64(),
			PaymentPercentage:    balance.DefaultPaymentPercentage.InexactFloat64(),
			MinimumHours:         balance.DefaultMinimumHours.InexactFloat64(),
		},
		Reports: ReportsConfig{
			HighAccrualThreshold: 40,
		},
		Scheduler: SchedulerConfig{
			Enabled:  false,
			Interval: "1h",
			Source:   string(balance.SourceRegistry),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "shift-hours.toml"
	}
	return filepath.Join(home, ".config", "shift-hours", "config.toml")
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays the file if it exists, loads a .env file
// from the working directory if there is one, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	// Server overrides
	if v := os.Getenv(EnvPrefix + "PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sPORT: %w", EnvPrefix, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv(EnvPrefix + "ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}

	// Storage overrides
	if v := os.Getenv(EnvPrefix + "DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	// Unit default overrides
	floats := []struct {
		name string
		dst  *float64
	}{
		{"STANDARD_MONTHLY_HOURS", &cfg.Defaults.StandardMonthlyHours},
		{"PAYMENT_PERCENTAGE", &cfg.Defaults.PaymentPercentage},
		{"MINIMUM_HOURS", &cfg.Defaults.MinimumHours},
		{"HIGH_ACCRUAL_THRESHOLD", &cfg.Reports.HighAccrualThreshold},
	}
	for _, f := range floats {
		v := os.Getenv(EnvPrefix + f.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, f.name, err)
		}
		*f.dst = n
	}

	// Scheduler overrides
	if v := os.Getenv(EnvPrefix + "SCHEDULER_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sSCHEDULER_ENABLED: %w", EnvPrefix, err)
		}
		cfg.Scheduler.Enabled = enabled
	}
	if v := os.Getenv(EnvPrefix + "SCHEDULER_INTERVAL"); v != "" {
		cfg.Scheduler.Interval = v
	}
	if v := os.Getenv(EnvPrefix + "SCHEDULER_SOURCE"); v != "" {
		cfg.Scheduler.Source = v
	}

	// Log overrides
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if err := c.UnitDefaults().Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if c.Reports.HighAccrualThreshold < 0 {
		return errors.New("high_accrual_threshold must not be negative")
	}
	interval, err := time.ParseDuration(c.Scheduler.Interval)
	if err != nil {
		return fmt.Errorf("scheduler interval: %w", err)
	}
	if interval <= 0 {
		return errors.New("scheduler interval must be positive")
	}
	if _, err := balance.ParseHoursSource(c.Scheduler.Source); err != nil {
		return fmt.Errorf("scheduler source: %w", err)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// UnitDefaults converts the defaults section into an engine configuration.
func (c *Config) UnitDefaults() balance.UnitConfig {
	return balance.UnitConfig{
		StandardMonthlyHours: decimal.NewFromFloat(c.Defaults.StandardMonthlyHours),
		PaymentPercentage:    decimal.NewFromFloat(c.Defaults.PaymentPercentage),
		MinimumHours:         decimal.NewFromFloat(c.Defaults.MinimumHours),
	}
}

// SchedulerInterval returns the parsed scheduler interval.
func (c *Config) SchedulerInterval() time.Duration {
	d, err := time.ParseDuration(c.Scheduler.Interval)
	if err != nil {
		return time.Hour
	}
	return d
}

// HighAccrualThreshold returns the reports threshold as a decimal.
func (c *Config) HighAccrualThreshold() decimal.Decimal {
	return decimal.NewFromFloat(c.Reports.HighAccrualThreshold)
}

// LogLevel parses the configured level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return level, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
