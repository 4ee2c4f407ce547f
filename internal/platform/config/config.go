package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     slog.Level

	DatabaseURL         string
	DBConnectTimeout    time.Duration
	MigrationsEnabled   bool
	RedisURL            string
	RedisTimeout        time.Duration
	RatesAPIURL         string
	RatesAPIKey         string
	UpstreamTimeout     time.Duration
	UpstreamRatePerSec  float64
	UpstreamBurst       int
	LimitsLocation      *time.Location
	HTTPRateLimit       string
	CORSAllowedOrigins  []string
	RichStatusCodes     bool
	SeedDefaultUser     bool
	ShutdownGracePeriod time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	// openexchangerates.api.url is read from OPENEXCHANGERATES_API_URL.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PGSQL_CONNECT_TIMEOUT", "5s")
	v.SetDefault("MIGRATIONS_ENABLED", true)
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("REDIS_TIMEOUT", "2s")
	v.SetDefault("openexchangerates.api.url", "https://openexchangerates.org/api/latest.json")
	v.SetDefault("openexchangerates.api.key", "")
	v.SetDefault("UPSTREAM_TIMEOUT", "5s")
	v.SetDefault("UPSTREAM_RATE_PER_SECOND", 5.0)
	v.SetDefault("UPSTREAM_BURST", 5)
	v.SetDefault("LIMITS_TIMEZONE", "Local")
	v.SetDefault("HTTP_RATE_LIMIT", "60-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RICH_STATUS_CODES", false)
	v.SetDefault("SEED_DEFAULT_USER", true)
	v.SetDefault("SHUTDOWN_GRACE_PERIOD", "10s")

	cfg := &Config{
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		DatabaseURL:        v.GetString("PGSQL_URL"),
		MigrationsEnabled:  v.GetBool("MIGRATIONS_ENABLED"),
		RedisURL:           v.GetString("REDIS_URL"),
		RatesAPIURL:        v.GetString("openexchangerates.api.url"),
		RatesAPIKey:        v.GetString("openexchangerates.api.key"),
		UpstreamRatePerSec: v.GetFloat64("UPSTREAM_RATE_PER_SECOND"),
		UpstreamBurst:      v.GetInt("UPSTREAM_BURST"),
		HTTPRateLimit:      v.GetString("HTTP_RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RichStatusCodes:    v.GetBool("RICH_STATUS_CODES"),
		SeedDefaultUser:    v.GetBool("SEED_DEFAULT_USER"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.RatesAPIKey == "" {
		log.Println("Warning: OPENEXCHANGERATES_API_KEY not set. Upstream requests will be rejected.")
	}

	var err error
	if cfg.LogLevel, err = parseLogLevel(v.GetString("LOG_LEVEL")); err != nil {
		return nil, err
	}
	if cfg.DBConnectTimeout, err = parseDuration(v, "PGSQL_CONNECT_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.RedisTimeout, err = parseDuration(v, "REDIS_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.UpstreamTimeout, err = parseDuration(v, "UPSTREAM_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.ShutdownGracePeriod, err = parseDuration(v, "SHUTDOWN_GRACE_PERIOD"); err != nil {
		return nil, err
	}
	if cfg.LimitsLocation, err = time.LoadLocation(v.GetString("LIMITS_TIMEZONE")); err != nil {
		return nil, fmt.Errorf("invalid LIMITS_TIMEZONE: %w", err)
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	return d, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
	}
	return level, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
