package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the application.
const EnvPrefix = "TERVE"

const devSessionSecret = "terve-development-session-secret!"

// Config is the configuration to start the server and the background jobs.
type Config struct {
	// Mode can be "prod" or "dev"
	Mode string `mapstructure:"mode"`
	// Addr is the binding address for the HTTP server
	Addr string `mapstructure:"addr"`
	// Port is the binding port for the HTTP server
	Port int `mapstructure:"port"`
	// BaseURL is the externally visible URL, used for OAuth callbacks
	BaseURL string `mapstructure:"base-url"`
	// Data is the data directory holding the sqlite file
	Data string `mapstructure:"data"`
	// Driver is the database driver (sqlite or postgres)
	Driver string `mapstructure:"driver"`
	// DSN points to the database. Derived from Data for sqlite when empty
	DSN string `mapstructure:"dsn"`

	SessionName   string        `mapstructure:"session-name"`
	SessionSecret string        `mapstructure:"session-secret"`
	SessionMaxAge time.Duration `mapstructure:"session-max-age"`

	GoogleClientID     string `mapstructure:"google-client-id"`
	GoogleClientSecret string `mapstructure:"google-client-secret"`
	GitHubClientID     string `mapstructure:"github-client-id"`
	GitHubClientSecret string `mapstructure:"github-client-secret"`

	TelegramToken         string `mapstructure:"telegram-token"`
	NotificationStartHour int    `mapstructure:"notification-start-hour"`
	NotificationEndHour   int    `mapstructure:"notification-end-hour"`

	OpenAIKey     string `mapstructure:"openai-key"`
	OpenAIBaseURL string `mapstructure:"openai-base-url"`
	OpenAIModel   string `mapstructure:"openai-model"`

	LogLevel string `mapstructure:"log-level"`
	// ExamGrace is tolerated on top of an exam's time limit before the session counts as abandoned
	ExamGrace time.Duration `mapstructure:"exam-grace"`
	// RateLimit is the sustained number of requests per second allowed per client
	RateLimit float64 `mapstructure:"rate-limit"`
	RateBurst int     `mapstructure:"rate-burst"`
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("mode", "dev")
	v.SetDefault("addr", "")
	v.SetDefault("port", 8080)
	v.SetDefault("base-url", "http://localhost:8080")
	v.SetDefault("data", "data")
	v.SetDefault("driver", "sqlite")
	v.SetDefault("dsn", "")
	v.SetDefault("session-name", "terve_session")
	v.SetDefault("session-secret", "")
	v.SetDefault("session-max-age", 2*time.Hour)
	v.SetDefault("google-client-id", "")
	v.SetDefault("google-client-secret", "")
	v.SetDefault("github-client-id", "")
	v.SetDefault("github-client-secret", "")
	v.SetDefault("telegram-token", "")
	v.SetDefault("notification-start-hour", 8)
	v.SetDefault("notification-end-hour", 20)
	v.SetDefault("openai-key", "")
	v.SetDefault("openai-base-url", "https://api.openai.com/v1")
	v.SetDefault("openai-model", "gpt-4o-mini")
	v.SetDefault("log-level", "info")
	v.SetDefault("exam-grace", time.Minute)
	v.SetDefault("rate-limit", 10.0)
	v.SetDefault("rate-burst", 20)
}

// NewViper returns a viper instance reading TERVE_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads environment variables from the given files. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return errors.Wrapf(err, "failed to load env file %s", path)
		}
	}
	return nil
}

// FromViper decodes and validates the configuration.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Mode != "prod"
}

// ListenAddr joins Addr and Port.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Addr, c.Port)
}

// TelegramEnabled reports whether reminders can be delivered.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != ""
}

// AIEnabled reports whether example sentences can be generated.
func (c *Config) AIEnabled() bool {
	return c.OpenAIKey != ""
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) Validate() error {
	if c.Mode != "dev" && c.Mode != "prod" {
		c.Mode = "dev"
	}

	switch c.Driver {
	case "sqlite", "postgres":
	default:
		return errors.Errorf("unsupported database driver %q", c.Driver)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("invalid port %d", c.Port)
	}

	if c.SessionSecret == "" {
		if !c.IsDev() {
			return errors.New("session secret is required in prod mode")
		}
		slog.Warn("using the development session secret")
		c.SessionSecret = devSessionSecret
	}
	if len(c.SessionSecret) < 32 {
		return errors.New("session secret must be at least 32 bytes")
	}
	if c.SessionMaxAge <= 0 {
		return errors.Errorf("invalid session max age %s", c.SessionMaxAge)
	}

	if c.NotificationStartHour < 0 || c.NotificationStartHour > 23 ||
		c.NotificationEndHour < 0 || c.NotificationEndHour > 23 ||
		c.NotificationStartHour > c.NotificationEndHour {
		return errors.Errorf("invalid notification hours %d-%d", c.NotificationStartHour, c.NotificationEndHour)
	}

	if c.ExamGrace < 0 {
		return errors.Errorf("invalid exam grace %s", c.ExamGrace)
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return errors.Errorf("invalid rate limit %v burst %d", c.RateLimit, c.RateBurst)
	}

	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.Driver == "sqlite" && c.DSN == "" {
		dataDir := strings.TrimRight(c.Data, "\\/")
		if err := os.MkdirAll(dataDir, 0770); err != nil {
			slog.Error("failed to create data directory", slog.String("data", dataDir), slog.String("error", err.Error()))
			return errors.Wrapf(err, "unable to create data folder %s", dataDir)
		}
		c.Data = dataDir
		c.DSN = filepath.Join(dataDir, fmt.Sprintf("terve_%s.db", c.Mode))
	}
	if c.DSN == "" {
		return errors.New("dsn is required for postgres")
	}

	return nil
}
