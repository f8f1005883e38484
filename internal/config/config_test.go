package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 10, cfg.API.RequestsPerSecond)
	assert.NotEmpty(t, cfg.Budget.FilePath)
	assert.Empty(t, cfg.Logging.FilePath)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Demo)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("FINTRACK_API_URL", "https://finance.example.com")
	t.Setenv("FINTRACK_API_TIMEOUT", "3s")
	t.Setenv("FINTRACK_API_RPS", "25")
	t.Setenv("FINTRACK_BUDGET_FILE", "/tmp/budgets.json")
	t.Setenv("FINTRACK_LOG_LEVEL", "debug")
	t.Setenv("FINTRACK_DEMO", "true")

	cfg := Load()

	assert.Equal(t, "https://finance.example.com", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 25, cfg.API.RequestsPerSecond)
	assert.Equal(t, "/tmp/budgets.json", cfg.Budget.FilePath)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Demo)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("FINTRACK_API_TIMEOUT", "not-a-duration")
	t.Setenv("FINTRACK_API_RPS", "many")
	t.Setenv("FINTRACK_DEMO", "sure")

	cfg := Load()

	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 10, cfg.API.RequestsPerSecond)
	assert.False(t, cfg.Demo)
}
