package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ImportConfig holds settings for the CSV data import.
type ImportConfig struct {
	DataDir  string        // Directory containing the source CSV files
	OnStart  bool          // Run a full import during startup
	Enabled  bool          // Enable the scheduled resync job
	Schedule string        // Cron expression (e.g., "0 3 * * *" for nightly)
	Timeout  time.Duration // Timeout for a complete import cycle
}

type Config struct {
	// Server
	Port string
	Env  string // "development", "production"

	// Database
	DatabaseURL string

	// CORS
	AllowedOrigins []string

	// CSV ingestion
	Import ImportConfig
}

func Load() *Config {
	env := getEnv("ENV", "development")

	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  env,

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/credits?sslmode=disable"),

		// CORS
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),

		// CSV ingestion
		Import: ImportConfig{
			DataDir:  getEnv("DATA_DIR", "test_data"),
			OnStart:  getBoolEnv("IMPORT_ON_START", true),
			Enabled:  getBoolEnv("IMPORT_ENABLED", false),
			Schedule: getEnv("IMPORT_SCHEDULE", "0 3 * * *"), // Default: nightly at 03:00
			Timeout:  getDurationEnv("IMPORT_TIMEOUT", 5*time.Minute),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
