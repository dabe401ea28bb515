package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all console settings, populated from environment variables.
type Config struct {
	// Data sources.
	DataDir      string `validate:"required"`
	StationsFile string `validate:"required"`

	// Remote API.
	APIBaseURL string        `validate:"required,url"`
	APITimeout time.Duration `validate:"gt=0"`
	FetchLimit int           `validate:"gt=0,lte=1000"`

	// Cache.
	CacheCapacity int `validate:"gt=0"`

	// Background refresh.
	RefreshEnabled  bool
	RefreshInterval time.Duration `validate:"gt=0"`

	// Debug HTTP server; empty disables it.
	DebugAddr string

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json"`

	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// Load reads configuration from environment variables, applying defaults
// where unset, and validates the result.
func Load() (*Config, error) {
	apiTimeout, err := parseDurationEnv("API_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	refreshInterval, err := parseDurationEnv("REFRESH_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	fetchLimit, err := parseIntEnv("FETCH_LIMIT", 10)
	if err != nil {
		return nil, err
	}
	cacheCapacity, err := parseIntEnv("CACHE_CAPACITY", 16)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:      envOrDefault("DATA_DIR", "data"),
		StationsFile: envOrDefault("STATIONS_FILE", "stations.json"),

		APIBaseURL: envOrDefault("API_BASE_URL",
			"https://data.toulouse-metropole.fr/api/explore/v2.1/catalog/datasets"),
		APITimeout: apiTimeout,
		FetchLimit: fetchLimit,

		CacheCapacity: cacheCapacity,

		RefreshEnabled:  os.Getenv("REFRESH_ENABLED") == "true",
		RefreshInterval: refreshInterval,

		DebugAddr: os.Getenv("DEBUG_ADDR"),

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "text"),

		ShutdownTimeout: shutdownTimeout,
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := envOrDefault(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return n, nil
}
