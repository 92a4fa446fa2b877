package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	DatabaseDriver string
	DatabaseURL    string

	// JWT
	JWTSecret          string
	JWTExpirationHours int

	// Storage
	StoragePath         string
	BackupIntervalHours int

	// Background Workers
	WorkerCount int

	// CORS
	AllowedOrigins []string

	// Sentry
	SentryDSN string

	// Rules and role PINs (TOML); empty means built-in defaults
	RulesFile string

	// Ledger events; no brokers means events are dropped
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		DatabaseDriver:      strings.ToLower(getEnv("DATABASE_DRIVER", "sqlite")),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		JWTExpirationHours:  getEnvAsInt("JWT_EXPIRATION_HOURS", 12),
		StoragePath:         getEnv("STORAGE_PATH", "./storage"),
		BackupIntervalHours: getEnvAsInt("BACKUP_INTERVAL_HOURS", 0),
		WorkerCount:         getEnvAsInt("WORKER_COUNT", 2),
		AllowedOrigins:      getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		SentryDSN:           getEnv("SENTRY_DSN", ""),
		RulesFile:           getEnv("RULES_FILE", ""),
		KafkaBrokers:        getEnvAsSlice("KAFKA_BROKERS", nil),
		KafkaTopic:          getEnv("KAFKA_TOPIC", "cabinet.ledger"),
	}

	switch cfg.DatabaseDriver {
	case "", "sqlite":
		cfg.DatabaseDriver = "sqlite"
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = "cabinet.db"
		}
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	if cfg.JWTSecret == "" && cfg.IsProduction() {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	// Set default JWT secret for development
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	if cfg.JWTExpirationHours <= 0 {
		cfg.JWTExpirationHours = 12
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// EventsEnabled reports whether ledger events should be published
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
