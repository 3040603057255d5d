package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// BotConfig is the configuration of the Telegram front end
type BotConfig struct {
	Server   BotServerConfig   `json:"server"`
	Telegram TelegramBotConfig `json:"telegram"`
	Restwell RestwellAPIConfig `json:"restwell"`
}

// BotServerConfig is where the webhook listener binds
type BotServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// TelegramBotConfig holds the bot token, the household members allowed to talk to it
// and the public webhook Telegram delivers updates to
type TelegramBotConfig struct {
	Token         string  `json:"token"`
	AllowedUsers  []int64 `json:"allowed_users"`
	WebhookURL    string  `json:"webhook_url"`
	WebhookSecret string  `json:"webhook_secret"`
}

// RestwellAPIConfig points the bot at the restwell REST API
type RestwellAPIConfig struct {
	BaseURL        string `json:"base_url"`
	APIKey         string `json:"api_key"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// Timeout returns the REST client timeout. Generating recommendations is the slowest call.
func (c RestwellAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func botDefaults() *BotConfig {
	return &BotConfig{
		Server:   BotServerConfig{Host: "0.0.0.0", Port: 8081},
		Restwell: RestwellAPIConfig{BaseURL: "http://localhost:8080", TimeoutSeconds: 60},
	}
}

// LoadBotConfig reads a JSON bot configuration on top of the defaults
func LoadBotConfig(path string) (*BotConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read bot config: %w", err)
	}

	cfg := botDefaults()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse bot config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadBotConfigFromEnv builds the bot configuration from RESTWELL_BOT_* variables.
// RESTWELL_BOT_ALLOWED_USERS is a comma-separated list of Telegram user ids.
func LoadBotConfigFromEnv() (*BotConfig, error) {
	d := botDefaults()

	allowed, err := parseUserIDs(os.Getenv("RESTWELL_BOT_ALLOWED_USERS"))
	if err != nil {
		return nil, err
	}

	cfg := &BotConfig{
		Server: BotServerConfig{
			Host: getEnv("RESTWELL_BOT_HOST", d.Server.Host),
			Port: getEnvInt("RESTWELL_BOT_PORT", d.Server.Port),
		},
		Telegram: TelegramBotConfig{
			Token:         getEnv("RESTWELL_BOT_TOKEN", ""),
			AllowedUsers:  allowed,
			WebhookURL:    getEnv("RESTWELL_BOT_WEBHOOK_URL", ""),
			WebhookSecret: getEnv("RESTWELL_BOT_WEBHOOK_SECRET", ""),
		},
		Restwell: RestwellAPIConfig{
			BaseURL:        getEnv("RESTWELL_BOT_API_URL", d.Restwell.BaseURL),
			APIKey:         getEnv("RESTWELL_API_KEY", ""),
			TimeoutSeconds: getEnvInt("RESTWELL_BOT_API_TIMEOUT_SECONDS", d.Restwell.TimeoutSeconds),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseUserIDs(value string) ([]int64, error) {
	var ids []int64
	for _, field := range strings.Split(value, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: allowed user id %q is not a number", ErrInvalidConfig, field)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Validate rejects a bot configuration that cannot serve the household
func (c *BotConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port must be between 1 and 65535", ErrInvalidConfig)
	}

	if c.Telegram.Token == "" {
		return fmt.Errorf("%w: telegram.token is required", ErrInvalidConfig)
	}
	if len(c.Telegram.AllowedUsers) == 0 {
		return fmt.Errorf("%w: telegram.allowed_users must list at least one household member", ErrInvalidConfig)
	}
	// Telegram only delivers webhooks over https
	if u, err := url.Parse(c.Telegram.WebhookURL); err != nil || u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%w: telegram.webhook_url must be an https URL", ErrInvalidConfig)
	}

	if u, err := url.Parse(c.Restwell.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: restwell.base_url must be an http(s) URL", ErrInvalidConfig)
	}
	if c.Restwell.APIKey == "" {
		return fmt.Errorf("%w: restwell.api_key is required", ErrInvalidConfig)
	}
	if c.Restwell.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: restwell.timeout_seconds must be positive", ErrInvalidConfig)
	}

	return nil
}

// IsUserAllowed reports whether a Telegram user belongs to the household
func (c *BotConfig) IsUserAllowed(userID int64) bool {
	return slices.Contains(c.Telegram.AllowedUsers, userID)
}
