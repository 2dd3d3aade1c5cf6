// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends selectable through STORAGE_BACKEND.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Storage
	StorageBackend string
	StorePath      string
	SQLitePath     string

	// Assistant
	AssistBaseURL string
	AssistAPIKey  string
	AssistModel   string
	AssistTimeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 90)) * time.Second,

		StorageBackend: getEnv("STORAGE_BACKEND", BackendFile),
		StorePath:      getEnv("STORE_PATH", "./data/flights.json"),
		SQLitePath:     getEnv("SQLITE_PATH", "./data/flights.db"),

		AssistBaseURL: getEnv("ASSIST_BASE_URL", "https://api.openai.com/v1"),
		AssistAPIKey:  getEnv("ASSIST_API_KEY", ""),
		AssistModel:   getEnv("ASSIST_MODEL", "gpt-4o-mini"),
		AssistTimeout: time.Duration(getEnvAsInt("ASSIST_TIMEOUT", 60)) * time.Second,
	}

	if config.StorageBackend != BackendFile && config.StorageBackend != BackendSQLite {
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q: want %q or %q",
			config.StorageBackend, BackendFile, BackendSQLite)
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
