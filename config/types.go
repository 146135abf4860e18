package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Twitch  TwitchConfig  `mapstructure:"twitch"`
	Helix   HelixConfig   `mapstructure:"helix"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TwitchConfig holds the application credentials. Either AccessToken or
// ClientID with ClientSecret must be set.
type TwitchConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	// AccessToken is a user access token. It takes precedence over the
	// client credentials flow.
	AccessToken string   `mapstructure:"access_token"`
	Scopes      []string `mapstructure:"scopes"`
}

// HelixConfig holds the API client settings
type HelixConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	// BatchLimit is the number of requests run at once by batch commands.
	BatchLimit int `mapstructure:"batch_limit"`
}

// FilterConfig holds named filter expressions usable with --filter
type FilterConfig struct {
	CacheSize int               `mapstructure:"cache_size"`
	Presets   map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// HasUserToken reports whether a user access token is configured
func (t TwitchConfig) HasUserToken() bool {
	return t.AccessToken != ""
}
