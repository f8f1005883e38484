package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API     APIConfig
	Budget  BudgetConfig
	Logging LoggingConfig
	Demo    bool
}

type APIConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond int
}

type BudgetConfig struct {
	FilePath string
}

type LoggingConfig struct {
	// FilePath receives slog output. The terminal belongs to the UI, so
	// an empty path discards logs instead of writing to stderr.
	FilePath string
	Level    string
}

// Load builds the configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		API: APIConfig{
			BaseURL:           getEnv("FINTRACK_API_URL", "http://localhost:8000"),
			Timeout:           getDurationEnv("FINTRACK_API_TIMEOUT", 15*time.Second),
			RequestsPerSecond: getIntEnv("FINTRACK_API_RPS", 10),
		},
		Budget: BudgetConfig{
			FilePath: getEnv("FINTRACK_BUDGET_FILE", defaultBudgetPath()),
		},
		Logging: LoggingConfig{
			FilePath: getEnv("FINTRACK_LOG_FILE", ""),
			Level:    getEnv("FINTRACK_LOG_LEVEL", "info"),
		},
		Demo: getBoolEnv("FINTRACK_DEMO", false),
	}
}

func defaultBudgetPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "budgets.json"
	}
	return filepath.Join(configDir, "fintrack", "budgets.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
