package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables overriding config keys,
// e.g. HELIX_LOGGING_LEVEL for logging.level.
const EnvPrefix = "HELIX"

// Load loads the configuration from file, .env and environment. A missing
// config file is not an error when configPath is empty.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "twitch-api2"))
		}

		v.AddConfigPath("/etc/twitch-api2/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("helix.base_url", "https://api.twitch.tv/helix/")
	v.SetDefault("helix.timeout", "30s")
	v.SetDefault("helix.user_agent", "twitch-api2-go")
	v.SetDefault("helix.batch_limit", 4)

	v.SetDefault("filter.cache_size", 32)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// bindEnv maps HELIX_* variables onto config keys. The credentials also
// answer to the names used by the Twitch CLI tooling.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("twitch.access_token", EnvPrefix+"_TWITCH_ACCESS_TOKEN", "TWITCH_TOKEN")
	_ = v.BindEnv("twitch.client_id", EnvPrefix+"_TWITCH_CLIENT_ID", "TWITCH_CLIENT_ID")
	_ = v.BindEnv("twitch.client_secret", EnvPrefix+"_TWITCH_CLIENT_SECRET", "TWITCH_CLIENT_SECRET")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if !cfg.Twitch.HasUserToken() {
		if cfg.Twitch.ClientID == "" || cfg.Twitch.ClientSecret == "" {
			return fmt.Errorf("twitch.access_token or both twitch.client_id and twitch.client_secret are required")
		}
	}

	u, err := url.Parse(cfg.Helix.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid helix.base_url: %q", cfg.Helix.BaseURL)
	}

	if cfg.Helix.Timeout <= 0 {
		return fmt.Errorf("helix.timeout must be positive")
	}

	if cfg.Helix.BatchLimit < 1 {
		return fmt.Errorf("helix.batch_limit must be at least 1")
	}

	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter preset %q is empty", name)
		}
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
