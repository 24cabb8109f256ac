package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"PORT", "SHUTDOWN_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
	"FUNCTION_KEYS", "FUNCTION_KEYS_FILE", "MASTER_KEY", "MASTER_KEY_FILE",
	"RATE_LIMIT_PER_MINUTE", "METRICS_ENABLED",
}

func cleanConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	cleanConfigEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.Auth.FunctionKeys)
	assert.Equal(t, "dev-master-key-change-in-production", cfg.Auth.MasterKey)
	assert.True(t, cfg.Auth.UsesDefaultMasterKey())
	assert.Equal(t, int64(100), cfg.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Period)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	cleanConfigEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("FUNCTION_KEYS", "key-a, key-b,,")
	t.Setenv("MASTER_KEY", "master")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "25")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, []string{"key-a", "key-b"}, cfg.Auth.FunctionKeys)
	assert.Equal(t, "master", cfg.Auth.MasterKey)
	assert.False(t, cfg.Auth.UsesDefaultMasterKey())
	assert.Equal(t, int64(25), cfg.RateLimit.Limit)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	cleanConfigEnv(t)
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "high")
	t.Setenv("METRICS_ENABLED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int64(100), cfg.RateLimit.Limit)
	assert.True(t, cfg.Metrics.Enabled)
}

func validConfig() Config {
	return Config{
		Log:       LogConfig{Level: "info", Format: "json"},
		Auth:      AuthConfig{MasterKey: "master"},
		RateLimit: RateLimitConfig{Limit: 10, Period: time.Minute},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			mutate: func(_ *Config) {},
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
			errMsg:  `invalid LOG_LEVEL "loud"`,
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
			errMsg:  `invalid LOG_FORMAT "xml": must be json or text`,
		},
		{
			name:    "missing master key",
			mutate:  func(c *Config) { c.Auth.MasterKey = "" },
			wantErr: true,
			errMsg:  "MASTER_KEY is required",
		},
		{
			name:    "non-positive rate limit",
			mutate:  func(c *Config) { c.RateLimit.Limit = 0 },
			wantErr: true,
			errMsg:  "RATE_LIMIT_PER_MINUTE must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.errMsg, err.Error())
		})
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	cleanConfigEnv(t)
	t.Setenv("LOG_FORMAT", "xml")

	cfg, err := Load()
	assert.Nil(t, cfg)
	assert.EqualError(t, err, `invalid LOG_FORMAT "xml": must be json or text`)
}

func TestLogConfig_NewLogger(t *testing.T) {
	logger := LogConfig{Level: "warn", Format: "text"}.NewLogger()
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	logger = LogConfig{Level: "bogus", Format: "json"}.NewLogger()
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestAuthConfig_UsesDefaultMasterKey(t *testing.T) {
	assert.True(t, AuthConfig{MasterKey: DefaultMasterKey}.UsesDefaultMasterKey())
	assert.False(t, AuthConfig{MasterKey: "rotated-master"}.UsesDefaultMasterKey())
}
