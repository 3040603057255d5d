package fitbit

import "time"

const (
	DefaultAuthURI    = "https://www.fitbit.com/oauth2/authorize"
	DefaultTokenURI   = "https://api.fitbit.com/oauth2/token"
	DefaultAPIBaseURL = "https://api.fitbit.com"
	DefaultScope      = "sleep heartrate activity profile"

	defaultTimeout = 30 * time.Second
)

// Config contains Fitbit OAuth application settings
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthURI      string
	TokenURI     string
	APIBaseURL   string
	Scope        string
	Timeout      time.Duration
}

// WithDefaults returns a copy of the config with empty endpoints filled in
func (c Config) WithDefaults() Config {
	if c.AuthURI == "" {
		c.AuthURI = DefaultAuthURI
	}
	if c.TokenURI == "" {
		c.TokenURI = DefaultTokenURI
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.Scope == "" {
		c.Scope = DefaultScope
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// DataScope describes one OAuth scope shown to the user before connecting
type DataScope struct {
	Scope       string `json:"scope"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RequestedData lists the scopes requested by DefaultScope
var RequestedData = []DataScope{
	{Scope: "sleep", Name: "Sleep Data", Description: "Access to your sleep patterns and duration"},
	{Scope: "heartrate", Name: "Heart Rate", Description: "Access to your heart rate data"},
	{Scope: "activity", Name: "Activity Data", Description: "Access to your steps and calories burned"},
	{Scope: "profile", Name: "Basic Profile", Description: "Access to your basic profile information"},
}
