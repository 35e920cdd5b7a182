package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Load merges Baseline() with an optional .env file and environment overrides.
func Load() (*Config, error) {
	// Missing .env is the normal case; OS environment still applies.
	_ = godotenv.Load()

	cfg := Baseline()
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return cfg, nil
}

// applyEnvOverrides applies PORT, DATABASE_* and VSB_* environment variables.
func applyEnvOverrides(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if addr := os.Getenv("VSB_ADDR"); addr != "" {
		cfg.Addr = addr
	}

	cfg.StreamInterval = GetEnvDuration("VSB_STREAM_INTERVAL", cfg.StreamInterval)
	cfg.ReadTimeout = GetEnvDuration("VSB_READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = GetEnvDuration("VSB_WRITE_TIMEOUT", cfg.WriteTimeout)
	cfg.IdleTimeout = GetEnvDuration("VSB_IDLE_TIMEOUT", cfg.IdleTimeout)
	cfg.ShutdownTimeout = GetEnvDuration("VSB_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)

	cfg.DatabaseURL = GetEnvVar("DATABASE_URL", cfg.DatabaseURL)
	cfg.DatabaseName = GetEnvVar("DATABASE_NAME", cfg.DatabaseName)
	cfg.DatabaseTimeout = GetEnvDuration("VSB_DATABASE_TIMEOUT", cfg.DatabaseTimeout)

	cfg.LogLevel = GetEnvVar("VSB_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = GetEnvVar("VSB_LOG_FILE", cfg.LogFile)
	cfg.LogMaxSizeMB = GetEnvInt("VSB_LOG_MAX_SIZE_MB", cfg.LogMaxSizeMB)
	cfg.LogMaxBackups = GetEnvInt("VSB_LOG_MAX_BACKUPS", cfg.LogMaxBackups)

	cfg.AuditDir = GetEnvVar("VSB_AUDIT_DIR", cfg.AuditDir)
}

// GetEnvVar returns the value of an environment variable with a default.
func GetEnvVar(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvDuration returns the value of an environment variable as a duration with a default.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetEnvInt returns the value of an environment variable as an int with a default.
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
