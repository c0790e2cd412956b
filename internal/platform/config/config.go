package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Valuation backend
	BackendBaseURL         string
	BackendTimeout         time.Duration
	HistoryEndpointEnabled bool
	HistoryCacheTTL        time.Duration

	// Session and settings persistence
	StoreDriver    string
	DatabaseURL    string
	SQLitePath     string
	MigrationsPath string

	// Session cookie
	SessionCookieName    string
	SessionTTL           time.Duration
	SessionSweepSchedule string

	FrontendBaseURL string
	PosthogAPIKey   string
	AuthRateLimit   string
	DisplayLocale   string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("BACKEND_BASE_URL", "http://localhost:8081/api/v1")
	v.SetDefault("BACKEND_TIMEOUT", "15s")
	v.SetDefault("HISTORY_ENDPOINT_ENABLED", false)
	v.SetDefault("HISTORY_CACHE_TTL", "1m")
	v.SetDefault("STORE_DRIVER", StoreMemory)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "data/bondval.db")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("SESSION_COOKIE_NAME", "auth-token")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_SWEEP_SCHEDULE", "@hourly")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("AUTH_RATE_LIMIT", "5-M")
	v.SetDefault("DISPLAY_LOCALE", "es-PE")

	// Environment variables override .env values, which override the defaults above.
	v.AutomaticEnv()

	cfg := &Config{
		Port:                   v.GetString("PORT"),
		IsProduction:           v.GetBool("IS_PRODUCTION"),
		BackendBaseURL:         strings.TrimRight(v.GetString("BACKEND_BASE_URL"), "/"),
		HistoryEndpointEnabled: v.GetBool("HISTORY_ENDPOINT_ENABLED"),
		StoreDriver:            strings.ToLower(v.GetString("STORE_DRIVER")),
		DatabaseURL:            v.GetString("PGSQL_URL"),
		SQLitePath:             v.GetString("SQLITE_PATH"),
		MigrationsPath:         v.GetString("MIGRATIONS_PATH"),
		SessionCookieName:      v.GetString("SESSION_COOKIE_NAME"),
		SessionSweepSchedule:   v.GetString("SESSION_SWEEP_SCHEDULE"),
		FrontendBaseURL:        v.GetString("FRONTEND_BASE_URL"),
		PosthogAPIKey:          v.GetString("POSTHOG_API_KEY"),
		AuthRateLimit:          v.GetString("AUTH_RATE_LIMIT"),
		DisplayLocale:          v.GetString("DISPLAY_LOCALE"),
	}

	var err error
	if cfg.BackendTimeout, err = parseDuration(v, "BACKEND_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = parseDuration(v, "SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.HistoryCacheTTL, err = parseDuration(v, "HISTORY_CACHE_TTL", time.Minute); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("PGSQL_URL is required when STORE_DRIVER=%s", StorePostgres)
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q, expected one of %s, %s, %s", c.StoreDriver, StoreMemory, StoreSQLite, StorePostgres)
	}
	if c.BackendBaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL must not be empty")
	}
	if c.SessionCookieName == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME must not be empty")
	}
	if c.PosthogAPIKey == "" {
		slog.Warn("POSTHOG_API_KEY not set. Analytics is disabled.")
	}
	return nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) (time.Duration, error) {
	raw := v.GetString(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}
