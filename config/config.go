package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// Config represents the application configuration
type Config struct {
	Server          ServerConfig          `json:"server"`
	Database        DatabaseConfig        `json:"database"`
	Security        SecurityConfig        `json:"security"`
	Fitbit          FitbitConfig          `json:"fitbit"`
	Sync            SyncConfig            `json:"sync"`
	Recommendations RecommendationsConfig `json:"recommendations"`
	Logging         LoggingConfig         `json:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `json:"path"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	APIKey string `json:"api_key"`
}

// FitbitConfig contains Fitbit OAuth application settings.
// Empty endpoint fields fall back to the public Fitbit URLs.
type FitbitConfig struct {
	ClientID       string `json:"client_id"`
	ClientSecret   string `json:"client_secret"`
	RedirectURI    string `json:"redirect_uri"`
	AuthURI        string `json:"auth_uri"`
	TokenURI       string `json:"token_uri"`
	APIBaseURL     string `json:"api_base_url"`
	Scope          string `json:"scope"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SyncConfig contains background sync settings
type SyncConfig struct {
	Enabled         bool `json:"enabled"`
	IntervalMinutes int  `json:"interval_minutes"`
	TimeoutSeconds  int  `json:"timeout_seconds"`
}

// RecommendationsConfig contains generator settings.
// Without an API key all recommendations come from the sample catalogues.
type RecommendationsConfig struct {
	GenAIAPIKey string `json:"genai_api_key"`
	Model       string `json:"model"`
}

// LoggingConfig contains log output settings
type LoggingConfig struct {
	Format string `json:"format"` // "json" or "text"
	Level  string `json:"level"`
}

// Interval returns the background sync interval
func (c SyncConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

// Timeout returns the per-sync timeout
func (c SyncConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Timeout returns the Fitbit HTTP client timeout
func (c FitbitConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// defaults returns the configuration used for absent fields
func defaults() *Config {
	return &Config{
		Server:   ServerConfig{Host: "0.0.0.0", Port: 8080},
		Database: DatabaseConfig{Path: "./restwell.db"},
		Fitbit:   FitbitConfig{TimeoutSeconds: 30},
		Sync:     SyncConfig{Enabled: true, IntervalMinutes: 60, TimeoutSeconds: 120},
		Logging:  LoggingConfig{Format: "json", Level: "info"},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: invalid server port", ErrInvalidConfig)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("%w: database path is required", ErrInvalidConfig)
	}

	if c.Security.APIKey == "" {
		return fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}

	if c.Fitbit.ClientID == "" || c.Fitbit.ClientSecret == "" {
		return fmt.Errorf("%w: Fitbit client credentials are required", ErrInvalidConfig)
	}

	if c.Fitbit.RedirectURI == "" {
		return fmt.Errorf("%w: Fitbit redirect URI is required", ErrInvalidConfig)
	}

	if c.Sync.Enabled && c.Sync.IntervalMinutes <= 0 {
		return fmt.Errorf("%w: sync interval must be positive", ErrInvalidConfig)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("%w: logging format must be json or text", ErrInvalidConfig)
	}

	return nil
}

// Load loads configuration from a JSON file on top of the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigFileNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := defaults()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFromEnv loads configuration from environment variables
// This is useful for containerized deployments
func LoadFromEnv() (*Config, error) {
	d := defaults()
	config := &Config{
		Server: ServerConfig{
			Host: getEnv("RESTWELL_HOST", d.Server.Host),
			Port: getEnvInt("RESTWELL_PORT", d.Server.Port),
		},
		Database: DatabaseConfig{
			Path: getEnv("RESTWELL_DB_PATH", d.Database.Path),
		},
		Security: SecurityConfig{
			APIKey: getEnv("RESTWELL_API_KEY", ""),
		},
		Fitbit: FitbitConfig{
			ClientID:       getEnv("RESTWELL_FITBIT_CLIENT_ID", ""),
			ClientSecret:   getEnv("RESTWELL_FITBIT_CLIENT_SECRET", ""),
			RedirectURI:    getEnv("RESTWELL_FITBIT_REDIRECT_URI", ""),
			AuthURI:        getEnv("RESTWELL_FITBIT_AUTH_URI", ""),
			TokenURI:       getEnv("RESTWELL_FITBIT_TOKEN_URI", ""),
			APIBaseURL:     getEnv("RESTWELL_FITBIT_API_BASE_URL", ""),
			Scope:          getEnv("RESTWELL_FITBIT_SCOPE", ""),
			TimeoutSeconds: getEnvInt("RESTWELL_FITBIT_TIMEOUT_SECONDS", d.Fitbit.TimeoutSeconds),
		},
		Sync: SyncConfig{
			Enabled:         getEnvBool("RESTWELL_SYNC_ENABLED", d.Sync.Enabled),
			IntervalMinutes: getEnvInt("RESTWELL_SYNC_INTERVAL_MINUTES", d.Sync.IntervalMinutes),
			TimeoutSeconds:  getEnvInt("RESTWELL_SYNC_TIMEOUT_SECONDS", d.Sync.TimeoutSeconds),
		},
		Recommendations: RecommendationsConfig{
			GenAIAPIKey: getEnv("RESTWELL_GENAI_API_KEY", ""),
			Model:       getEnv("RESTWELL_GENAI_MODEL", ""),
		},
		Logging: LoggingConfig{
			Format: getEnv("RESTWELL_LOG_FORMAT", d.Logging.Format),
			Level:  getEnv("RESTWELL_LOG_LEVEL", d.Logging.Level),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		fmt.Sscanf(value, "%d", &intVal)
		return intVal
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}
