package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string `validate:"oneof=development production"`
	Port string `validate:"required"`

	// DatabaseURL is a postgres DSN or a sqlite file path. In production it
	// is left empty here and resolved from the secret store at startup.
	DatabaseURL    string
	DatabaseSecret string
	GCPProject     string

	GeoBaseURL string        `validate:"required,url"`
	GeoTimeout time.Duration `validate:"gt=0"`
	GeoIPPath  string

	RateLimit     int           `validate:"gt=0"`
	RateWindow    time.Duration `validate:"gt=0"`
	RateCacheSize int           `validate:"gt=0"`

	LogLevel  string `validate:"oneof=trace debug info warn error"`
	LogFormat string `validate:"oneof=json console"`
}

func Load() (*Config, error) {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Env:            envOrDefault("VISITLOG_ENV", EnvDevelopment),
		Port:           envOrDefault("VISITLOG_PORT", "8080"),
		DatabaseURL:    os.Getenv("VISITLOG_DATABASE_URL"),
		DatabaseSecret: envOrDefault("VISITLOG_DATABASE_SECRET", "visitlog-database-url"),
		GCPProject:     os.Getenv("VISITLOG_GCP_PROJECT"),
		GeoBaseURL:     envOrDefault("VISITLOG_GEO_URL", "https://ipapi.co"),
		GeoTimeout:     parseDuration("VISITLOG_GEO_TIMEOUT", 3*time.Second),
		GeoIPPath:      os.Getenv("VISITLOG_GEOIP_PATH"),
		RateLimit:      parseInt("VISITLOG_RATE_LIMIT", 100),
		RateWindow:     parseDuration("VISITLOG_RATE_WINDOW", 15*time.Minute),
		RateCacheSize:  parseInt("VISITLOG_RATE_CACHE_SIZE", 65536),
		LogLevel:       envOrDefault("VISITLOG_LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("VISITLOG_LOG_FORMAT", "json"),
	}

	if cfg.Env != EnvProduction && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "./visitlog.db"
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the database DSN must come from the secret
// store rather than local configuration.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
