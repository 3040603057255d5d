package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := *defaults()
	cfg.Security = SecurityConfig{APIKey: "test-key"}
	cfg.Fitbit.ClientID = "client-id"
	cfg.Fitbit.ClientSecret = "client-secret"
	cfg.Fitbit.RedirectURI = "http://localhost:8080/auth/fitbit/callback"
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid port - zero",
			modify:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "invalid port - too large",
			modify:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "missing database path",
			modify:  func(c *Config) { c.Database.Path = "" },
			wantErr: true,
		},
		{
			name:    "missing API key",
			modify:  func(c *Config) { c.Security.APIKey = "" },
			wantErr: true,
		},
		{
			name:    "missing Fitbit client secret",
			modify:  func(c *Config) { c.Fitbit.ClientSecret = "" },
			wantErr: true,
		},
		{
			name:    "missing redirect URI",
			modify:  func(c *Config) { c.Fitbit.RedirectURI = "" },
			wantErr: true,
		},
		{
			name:    "zero interval with sync enabled",
			modify:  func(c *Config) { c.Sync.IntervalMinutes = 0 },
			wantErr: true,
		},
		{
			name: "zero interval with sync disabled",
			modify: func(c *Config) {
				c.Sync.Enabled = false
				c.Sync.IntervalMinutes = 0
			},
			wantErr: false,
		},
		{
			name:    "unknown log format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	validJSON := `{
		"server": {
			"port": 9000
		},
		"database": {
			"path": "/path/to/db"
		},
		"security": {
			"api_key": "test-key"
		},
		"fitbit": {
			"client_id": "client-id",
			"client_secret": "client-secret",
			"redirect_uri": "https://example.com/auth/fitbit/callback"
		},
		"sync": {
			"interval_minutes": 30
		},
		"recommendations": {
			"genai_api_key": "genai-key",
			"model": "gemini-2.5-pro"
		}
	}`

	err := os.WriteFile(configPath, []byte(validJSON), 0644)
	require.NoError(t, err)

	config, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 9000, config.Server.Port)
	assert.Equal(t, "/path/to/db", config.Database.Path)
	assert.Equal(t, "test-key", config.Security.APIKey)
	assert.Equal(t, "client-id", config.Fitbit.ClientID)
	assert.Equal(t, 30*time.Second, config.Fitbit.Timeout())
	assert.True(t, config.Sync.Enabled)
	assert.Equal(t, 30*time.Minute, config.Sync.Interval())
	assert.Equal(t, 2*time.Minute, config.Sync.Timeout())
	assert.Equal(t, "gemini-2.5-pro", config.Recommendations.Model)
	assert.Equal(t, "json", config.Logging.Format)

	_, err = Load("/nonexistent/config.json")
	assert.ErrorIs(t, err, ErrConfigFileNotFound)

	invalidPath := filepath.Join(tmpDir, "invalid.json")
	err = os.WriteFile(invalidPath, []byte("invalid json"), 0644)
	require.NoError(t, err)

	_, err = Load(invalidPath)
	assert.Error(t, err)

	incompletePath := filepath.Join(tmpDir, "incomplete.json")
	err = os.WriteFile(incompletePath, []byte(`{"security": {"api_key": "k"}}`), 0644)
	require.NoError(t, err)

	_, err = Load(incompletePath)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RESTWELL_HOST", "127.0.0.1")
	t.Setenv("RESTWELL_PORT", "9090")
	t.Setenv("RESTWELL_DB_PATH", "/custom/db/path")
	t.Setenv("RESTWELL_API_KEY", "env-api-key")
	t.Setenv("RESTWELL_FITBIT_CLIENT_ID", "env-client-id")
	t.Setenv("RESTWELL_FITBIT_CLIENT_SECRET", "env-client-secret")
	t.Setenv("RESTWELL_FITBIT_REDIRECT_URI", "https://example.com/cb")
	t.Setenv("RESTWELL_SYNC_ENABLED", "false")
	t.Setenv("RESTWELL_LOG_FORMAT", "text")

	config, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", config.Server.Host)
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "/custom/db/path", config.Database.Path)
	assert.Equal(t, "env-api-key", config.Security.APIKey)
	assert.Equal(t, "env-client-id", config.Fitbit.ClientID)
	assert.Equal(t, "env-client-secret", config.Fitbit.ClientSecret)
	assert.Equal(t, "https://example.com/cb", config.Fitbit.RedirectURI)
	assert.False(t, config.Sync.Enabled)
	assert.Equal(t, 60, config.Sync.IntervalMinutes)
	assert.Equal(t, "text", config.Logging.Format)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadFromEnv_MissingRequired(t *testing.T) {
	t.Setenv("RESTWELL_API_KEY", "env-api-key")
	t.Setenv("RESTWELL_FITBIT_CLIENT_ID", "")
	t.Setenv("RESTWELL_FITBIT_CLIENT_SECRET", "")

	_, err := LoadFromEnv()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadBotConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bot.json")

	botJSON := `{
		"server": {"port": 8081},
		"telegram": {
			"token": "bot-token",
			"allowed_users": [111, 222],
			"webhook_url": "https://example.com/telegram/webhook"
		},
		"restwell": {
			"base_url": "http://localhost:8080",
			"api_key": "api-key"
		}
	}`
	require.NoError(t, os.WriteFile(configPath, []byte(botJSON), 0644))

	cfg, err := LoadBotConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "http://localhost:8080", cfg.Restwell.BaseURL)
	assert.Equal(t, 60, cfg.Restwell.TimeoutSeconds)
	assert.True(t, cfg.IsUserAllowed(222))
	assert.False(t, cfg.IsUserAllowed(333))

	_, err = LoadBotConfig(filepath.Join(tmpDir, "missing.json"))
	assert.ErrorIs(t, err, ErrConfigFileNotFound)
}

func TestBotConfig_Validate(t *testing.T) {
	valid := func() *BotConfig {
		cfg := botDefaults()
		cfg.Telegram = TelegramBotConfig{Token: "t", AllowedUsers: []int64{1}, WebhookURL: "https://example.com/telegram/webhook"}
		cfg.Restwell.APIKey = "k"
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		modify func(*BotConfig)
	}{
		{"port out of range", func(c *BotConfig) { c.Server.Port = 0 }},
		{"missing token", func(c *BotConfig) { c.Telegram.Token = "" }},
		{"no allowed users", func(c *BotConfig) { c.Telegram.AllowedUsers = nil }},
		{"plain http webhook", func(c *BotConfig) { c.Telegram.WebhookURL = "http://example.com/telegram/webhook" }},
		{"missing webhook", func(c *BotConfig) { c.Telegram.WebhookURL = "" }},
		{"relative api url", func(c *BotConfig) { c.Restwell.BaseURL = "localhost:8080" }},
		{"missing api key", func(c *BotConfig) { c.Restwell.APIKey = "" }},
		{"zero timeout", func(c *BotConfig) { c.Restwell.TimeoutSeconds = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadBotConfigFromEnv(t *testing.T) {
	t.Setenv("RESTWELL_BOT_TOKEN", "bot-token")
	t.Setenv("RESTWELL_BOT_ALLOWED_USERS", "111, 222")
	t.Setenv("RESTWELL_BOT_WEBHOOK_URL", "https://example.com/telegram/webhook")
	t.Setenv("RESTWELL_API_KEY", "api-key")
	t.Setenv("RESTWELL_BOT_PORT", "9091")

	cfg, err := LoadBotConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 9091, cfg.Server.Port)
	assert.Equal(t, []int64{111, 222}, cfg.Telegram.AllowedUsers)
	assert.Equal(t, "http://localhost:8080", cfg.Restwell.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.Restwell.Timeout())

	t.Setenv("RESTWELL_BOT_ALLOWED_USERS", "111,alice")
	_, err = LoadBotConfigFromEnv()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
