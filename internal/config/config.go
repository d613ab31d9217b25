// Package config loads the server configuration from an optional YAML file
// and WEEKGOAL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/weekgoal/internal/money"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Week     WeekConfig     `yaml:"week"`
	Sessions SessionsConfig `yaml:"sessions"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port      int    `yaml:"port"`
	StaticDir string `yaml:"static_dir"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type WeekConfig struct {
	// DefaultGoal is the goal of weeks that were never saved, in currency units.
	DefaultGoal float64 `yaml:"default_goal"`
}

type SessionsConfig struct {
	CacheSize int           `yaml:"cache_size"`
	IdleTTL   time.Duration `yaml:"idle_ttl"`
	SweepCron string        `yaml:"sweep_cron"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing overrides it. The JWT
// secret has no default.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080, StaticDir: "./static"},
		Database: DatabaseConfig{Path: "./data/weekgoal.db"},
		Auth:     AuthConfig{TokenTTL: 7 * 24 * time.Hour},
		Week:     WeekConfig{DefaultGoal: 1000},
		Sessions: SessionsConfig{CacheSize: 1024, IdleTTL: 30 * time.Minute, SweepCron: "@every 5m"},
		Log:      LogConfig{Level: "info"},
	}
}

// Load starts from Default, applies the YAML file at path (skipped when path
// is empty), then environment overrides, and validates the result.
//
// Environment variables:
//
//	WEEKGOAL_PORT, WEEKGOAL_STATIC_DIR, WEEKGOAL_DB_PATH,
//	WEEKGOAL_JWT_SECRET, WEEKGOAL_TOKEN_TTL, WEEKGOAL_DEFAULT_GOAL,
//	WEEKGOAL_SESSION_CACHE_SIZE, WEEKGOAL_SESSION_IDLE_TTL,
//	WEEKGOAL_SESSION_SWEEP_CRON, WEEKGOAL_LOG_LEVEL (LOG_LEVEL also works)
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	var errs []error

	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	integer("WEEKGOAL_PORT", &cfg.Server.Port)
	str("WEEKGOAL_STATIC_DIR", &cfg.Server.StaticDir)
	str("WEEKGOAL_DB_PATH", &cfg.Database.Path)
	str("WEEKGOAL_JWT_SECRET", &cfg.Auth.JWTSecret)
	duration("WEEKGOAL_TOKEN_TTL", &cfg.Auth.TokenTTL)
	if v := os.Getenv("WEEKGOAL_DEFAULT_GOAL"); v != "" {
		goal, err := money.Parse(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("WEEKGOAL_DEFAULT_GOAL: %w", err))
		} else {
			cfg.Week.DefaultGoal = goal.Units()
		}
	}
	integer("WEEKGOAL_SESSION_CACHE_SIZE", &cfg.Sessions.CacheSize)
	duration("WEEKGOAL_SESSION_IDLE_TTL", &cfg.Sessions.IdleTTL)
	str("WEEKGOAL_SESSION_SWEEP_CRON", &cfg.Sessions.SweepCron)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("WEEKGOAL_LOG_LEVEL", &cfg.Log.Level)

	return errors.Join(errs...)
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if math.IsNaN(c.Week.DefaultGoal) || c.Week.DefaultGoal <= 0 {
		errs = append(errs, errors.New("week.default_goal must be positive"))
	}
	if c.Sessions.CacheSize <= 0 {
		errs = append(errs, errors.New("sessions.cache_size must be positive"))
	}
	if c.Sessions.IdleTTL <= 0 {
		errs = append(errs, errors.New("sessions.idle_ttl must be positive"))
	}
	if _, err := cron.ParseStandard(c.Sessions.SweepCron); err != nil {
		errs = append(errs, fmt.Errorf("sessions.sweep_cron: %w", err))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}

	return errors.Join(errs...)
}

// DefaultGoal returns the configured default weekly goal in cents.
func (c *Config) DefaultGoal() money.Amount {
	return money.FromFloat(c.Week.DefaultGoal)
}
