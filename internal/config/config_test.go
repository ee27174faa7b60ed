package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults tests that all default values load correctly without any env vars.
func TestLoad_Defaults(t *testing.T) {
	// Clear all config-related env vars
	clearEnvVars(t)

	cfg, err := Load()
	require.NoError(t, err)

	// Server defaults
	assert.Equal(t, 8080, cfg.Server.Port, "default server port")
	assert.Equal(t, "10s", cfg.Server.ReadTimeout.String(), "default read timeout")
	assert.Equal(t, "30s", cfg.Server.WriteTimeout.String(), "default write timeout")

	// Search defaults
	assert.Equal(t, 5, cfg.Search.ResultLimit, "default result limit")
	assert.Equal(t, "10s", cfg.Search.GlobalTimeout.String(), "default search timeout")
	assert.Equal(t, "2s", cfg.Search.LookupTimeout.String(), "default address lookup timeout")

	// Provider defaults
	assert.Equal(t, "https://serpapi.com/search.json", cfg.Provider.BaseURL, "default provider base URL")
	assert.Equal(t, "8s", cfg.Provider.CallTimeout.String(), "default provider call timeout")

	// Reasoner defaults
	assert.Equal(t, "gemini-2.0-flash", cfg.Reasoner.Model, "default reasoner model")

	// History defaults
	assert.Empty(t, cfg.History.RedisAddr, "default redis address")
	assert.Equal(t, "720h0m0s", cfg.History.TTL.String(), "default history TTL")

	// Logging defaults
	assert.Equal(t, "info", cfg.Logging.Level, "default log level")
	assert.Equal(t, "json", cfg.Logging.Format, "default log format")

	// App defaults
	assert.Equal(t, "development", cfg.App.Env, "default app environment")
}

// TestLoad_EnvironmentOverrides tests that environment variables override defaults.
func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnvVars(t)

	// Set custom values
	setEnvVars(t, map[string]string{
		"SERVER_PORT":            "3000",
		"SERVER_READ_TIMEOUT":    "30s",
		"SERVER_WRITE_TIMEOUT":   "45s",
		"SEARCH_RESULT_LIMIT":    "10",
		"TIMEOUT_SEARCH":         "20s",
		"TIMEOUT_ADDRESS_LOOKUP": "3s",
		"SERPAPI_API_KEY":        "test-key",
		"SERPAPI_BASE_URL":       "https://example.com/search",
		"SERPAPI_CALL_TIMEOUT":   "4s",
		"GEMINI_API_KEY":         "gemini-key",
		"GEMINI_MODEL":           "gemini-1.5-pro",
		"REDIS_ADDR":             "localhost:6379",
		"REDIS_DB":               "2",
		"HISTORY_TTL":            "24h",
		"LOG_LEVEL":              "debug",
		"LOG_FORMAT":             "console",
		"APP_ENV":                "production",
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "30s", cfg.Server.ReadTimeout.String())
	assert.Equal(t, "45s", cfg.Server.WriteTimeout.String())
	assert.Equal(t, 10, cfg.Search.ResultLimit)
	assert.Equal(t, "20s", cfg.Search.GlobalTimeout.String())
	assert.Equal(t, "3s", cfg.Search.LookupTimeout.String())
	assert.Equal(t, "test-key", cfg.Provider.APIKey)
	assert.Equal(t, "https://example.com/search", cfg.Provider.BaseURL)
	assert.Equal(t, "4s", cfg.Provider.CallTimeout.String())
	assert.Equal(t, "gemini-key", cfg.Reasoner.APIKey)
	assert.Equal(t, "gemini-1.5-pro", cfg.Reasoner.Model)
	assert.Equal(t, "localhost:6379", cfg.History.RedisAddr)
	assert.Equal(t, 2, cfg.History.RedisDB)
	assert.Equal(t, "24h0m0s", cfg.History.TTL.String())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "production", cfg.App.Env)
}

// TestLoad_PartialOverrides tests that only overridden values change.
func TestLoad_PartialOverrides(t *testing.T) {
	clearEnvVars(t)

	// Only override port
	setEnvVars(t, map[string]string{
		"SERVER_PORT": "9000",
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port, "overridden port")
	assert.Equal(t, "10s", cfg.Server.ReadTimeout.String(), "default read timeout")
	assert.Equal(t, 5, cfg.Search.ResultLimit, "default result limit")
	assert.Equal(t, "info", cfg.Logging.Level, "default log level")
}

// TestLoad_Validation_PortRange tests port validation boundaries.
func TestLoad_Validation_PortRange(t *testing.T) {
	tests := []struct {
		name    string
		port    string
		wantErr bool
		errMsg  string
	}{
		{"valid port 1", "1", false, ""},
		{"valid port 80", "80", false, ""},
		{"valid port 8080", "8080", false, ""},
		{"valid port 65535", "65535", false, ""},
		{"invalid port 0", "0", true, "SERVER_PORT must be between 1 and 65535"},
		{"invalid port negative", "-1", true, "SERVER_PORT must be between 1 and 65535"},
		{"invalid port too high", "65536", true, "SERVER_PORT must be between 1 and 65535"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			setEnvVars(t, map[string]string{"SERVER_PORT": tt.port})

			cfg, err := Load()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, cfg)
			}
		})
	}
}

// TestLoad_Validation_PositiveTimeouts tests that timeouts must be positive.
func TestLoad_Validation_PositiveTimeouts(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
		errMsg string
	}{
		{"zero read timeout", "SERVER_READ_TIMEOUT", "0s", "SERVER_READ_TIMEOUT must be positive"},
		{"negative read timeout", "SERVER_READ_TIMEOUT", "-1s", "SERVER_READ_TIMEOUT must be positive"},
		{"zero write timeout", "SERVER_WRITE_TIMEOUT", "0s", "SERVER_WRITE_TIMEOUT must be positive"},
		{"negative write timeout", "SERVER_WRITE_TIMEOUT", "-1s", "SERVER_WRITE_TIMEOUT must be positive"},
		{"zero search timeout", "TIMEOUT_SEARCH", "0s", "TIMEOUT_SEARCH must be positive"},
		{"negative search timeout", "TIMEOUT_SEARCH", "-1s", "TIMEOUT_SEARCH must be positive"},
		{"zero lookup timeout", "TIMEOUT_ADDRESS_LOOKUP", "0s", "TIMEOUT_ADDRESS_LOOKUP must be positive"},
		{"negative lookup timeout", "TIMEOUT_ADDRESS_LOOKUP", "-1s", "TIMEOUT_ADDRESS_LOOKUP must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			setEnvVars(t, map[string]string{tt.envVar: tt.value})

			cfg, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Nil(t, cfg)
		})
	}
}

// TestLoad_Validation_LookupLessThanSearch tests that the per-record address
// lookup timeout must be less than the whole-search timeout.
func TestLoad_Validation_LookupLessThanSearch(t *testing.T) {
	clearEnvVars(t)

	// Set lookup equal to the search timeout
	setEnvVars(t, map[string]string{
		"TIMEOUT_SEARCH":         "5s",
		"TIMEOUT_ADDRESS_LOOKUP": "5s",
	})

	cfg, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TIMEOUT_ADDRESS_LOOKUP")
	assert.Contains(t, err.Error(), "should be less than")
	assert.Nil(t, cfg)

	// Set lookup greater than the search timeout
	setEnvVars(t, map[string]string{
		"TIMEOUT_SEARCH":         "5s",
		"TIMEOUT_ADDRESS_LOOKUP": "10s",
	})

	cfg, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TIMEOUT_ADDRESS_LOOKUP")
	assert.Contains(t, err.Error(), "should be less than")
	assert.Nil(t, cfg)
}

// TestLoad_Validation_ResultLimit tests result limit validation.
func TestLoad_Validation_ResultLimit(t *testing.T) {
	tests := []struct {
		name    string
		limit   string
		wantErr bool
	}{
		{"valid limit 1", "1", false},
		{"valid limit 5", "5", false},
		{"valid limit 25", "25", false},
		{"invalid limit 0", "0", true},
		{"invalid limit negative", "-3", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			setEnvVars(t, map[string]string{"SEARCH_RESULT_LIMIT": tt.limit})

			cfg, err := Load()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "SEARCH_RESULT_LIMIT must be at least 1")
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, cfg)
			}
		})
	}
}

// TestLoad_Validation_LogLevel tests log level validation.
func TestLoad_Validation_LogLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{"valid debug", "debug", false},
		{"valid info", "info", false},
		{"valid warn", "warn", false},
		{"valid error", "error", false},
		{"invalid trace", "trace", true},
		{"invalid fatal", "fatal", true},
		// Note: empty string uses default value "info" due to envDefault tag
		{"invalid random", "invalid", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			setEnvVars(t, map[string]string{"LOG_LEVEL": tt.level})

			cfg, err := Load()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL must be one of")
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, cfg)
			}
		})
	}
}

// TestLoad_Validation_LogFormat tests log format validation.
func TestLoad_Validation_LogFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"valid json", "json", false},
		{"valid console", "console", false},
		{"invalid text", "text", true},
		// Note: empty string uses default value "json" due to envDefault tag
		{"invalid random", "invalid", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			setEnvVars(t, map[string]string{"LOG_FORMAT": tt.format})

			cfg, err := Load()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_FORMAT must be one of")
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, cfg)
			}
		})
	}
}

// TestLoad_Validation_AppEnv tests app environment validation.
func TestLoad_Validation_AppEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		wantErr bool
	}{
		{"valid development", "development", false},
		{"valid staging", "staging", false},
		{"valid production", "production", false},
		{"invalid local", "local", true},
		// Note: empty string uses default value "development" due to envDefault tag
		{"invalid random", "invalid", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			setEnvVars(t, map[string]string{"APP_ENV": tt.env})

			cfg, err := Load()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "APP_ENV must be one of")
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, cfg)
			}
		})
	}
}

// TestLoad_DurationParsing tests that duration strings are parsed correctly.
func TestLoad_DurationParsing(t *testing.T) {
	clearEnvVars(t)

	setEnvVars(t, map[string]string{
		"SERVER_READ_TIMEOUT":    "1m30s",
		"SERVER_WRITE_TIMEOUT":   "2m",
		"TIMEOUT_SEARCH":         "500ms",
		"TIMEOUT_ADDRESS_LOOKUP": "100ms",
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "1m30s", cfg.Server.ReadTimeout.String())
	assert.Equal(t, "2m0s", cfg.Server.WriteTimeout.String())
	assert.Equal(t, "500ms", cfg.Search.GlobalTimeout.String())
	assert.Equal(t, "100ms", cfg.Search.LookupTimeout.String())
}

// TestMustLoad_Success tests MustLoad with valid config.
func TestMustLoad_Success(t *testing.T) {
	clearEnvVars(t)

	assert.NotPanics(t, func() {
		cfg := MustLoad()
		assert.NotNil(t, cfg)
	})
}

// TestMustLoad_Panic tests MustLoad panics on invalid config.
func TestMustLoad_Panic(t *testing.T) {
	clearEnvVars(t)
	setEnvVars(t, map[string]string{"SERVER_PORT": "0"})

	assert.Panics(t, func() {
		MustLoad()
	})
}

// TestConfig_IsDevelopment tests the IsDevelopment helper method.
func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		env      string
		expected bool
	}{
		{"development", true},
		{"staging", false},
		{"production", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			clearEnvVars(t)
			setEnvVars(t, map[string]string{"APP_ENV": tt.env})

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.IsDevelopment())
		})
	}
}

// TestConfig_IsProduction tests the IsProduction helper method.
func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		env      string
		expected bool
	}{
		{"development", false},
		{"staging", false},
		{"production", true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			clearEnvVars(t)
			setEnvVars(t, map[string]string{"APP_ENV": tt.env})

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.IsProduction())
		})
	}
}

// Helper functions

// clearEnvVars clears all config-related environment variables.
func clearEnvVars(t *testing.T) {
	t.Helper()
	envVars := []string{
		"SERVER_PORT",
		"SERVER_READ_TIMEOUT",
		"SERVER_WRITE_TIMEOUT",
		"SEARCH_RESULT_LIMIT",
		"TIMEOUT_SEARCH",
		"TIMEOUT_ADDRESS_LOOKUP",
		"SERPAPI_API_KEY",
		"SERPAPI_BASE_URL",
		"SERPAPI_CALL_TIMEOUT",
		"GEMINI_API_KEY",
		"GEMINI_MODEL",
		"REDIS_ADDR",
		"REDIS_DB",
		"HISTORY_TTL",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"APP_ENV",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

// setEnvVars sets multiple environment variables.
func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		os.Setenv(k, v)
	}
}
