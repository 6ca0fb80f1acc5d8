package config

import (
	"os"
	"strconv"

	"camcheck/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Uploads  UploadConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection settings. The database is
// optional: when URL is empty, validation run history is disabled and
// the rest of the application works unchanged.
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// UploadConfig holds upload handling settings
type UploadConfig struct {
	Dir        string
	MaxSizeMB  int64
	SessionTTL int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Uploads: UploadConfig{
			Dir:        getEnvOrDefault("UPLOAD_DIR", os.TempDir()),
			MaxSizeMB:  getEnvInt64OrDefault("MAX_UPLOAD_MB", 50),
			SessionTTL: getEnvIntOrDefault("SESSION_TTL_MINUTES", 60),
		},
	}
	config.Database.Enabled = config.Database.URL != ""

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Uploads.MaxSizeMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if config.Uploads.SessionTTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL_MINUTES must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
