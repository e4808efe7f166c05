package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "5002", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "0.0.0.0:5002", cfg.Server.Addr())

	// Engine config
	assert.Equal(t, 4096, cfg.Engine.MaxFormulaLen)
	assert.Equal(t, 64, cfg.Engine.MaxParams)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	assert.Equal(t, []string{"*"}, cfg.CORS.Origins)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, "5002", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                   "9000",
		"HOST":                   "127.0.0.1",
		"ENGINE_MAX_FORMULA_LEN": "256",
		"ENGINE_MAX_PARAMS":      "8",
		"LOG_LEVEL":              "debug",
		"LOG_DEV":                "true",
		"RATE_LIMIT_RPS":         "500",
		"RATE_LIMIT_BURST":       "1000",
		"RATE_LIMIT_ENABLED":     "false",
		"CORS_ORIGINS":           "http://localhost:3000,https://lab.example.org",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)

	assert.Equal(t, 256, cfg.Engine.MaxFormulaLen)
	assert.Equal(t, 8, cfg.Engine.MaxParams)
	limits := cfg.Engine.Limits()
	assert.Equal(t, 256, limits.MaxFormulaLen)
	assert.Equal(t, 8, limits.MaxParams)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)

	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)

	assert.Equal(t, []string{"http://localhost:3000", "https://lab.example.org"}, cfg.CORS.Origins)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"non numeric limit", map[string]string{"ENGINE_MAX_PARAMS": "many"}},
		{"negative limit", map[string]string{"ENGINE_MAX_FORMULA_LEN": "-1"}},
		{"zero rate", map[string]string{"RATE_LIMIT_RPS": "0"}},
		{"bad bool", map[string]string{"LOG_DEV": "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)

			cfg := LoadOrDefault()
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.RateLimit.Enabled = false
	cfg.RateLimit.RequestsPerSecond = 0
	assert.NoError(t, cfg.Validate())

	cfg.Server.Port = " "
	assert.Error(t, cfg.Validate())
}
