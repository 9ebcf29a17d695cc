package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Scan   ScanConfig   `mapstructure:"scan"`
	Churn  ChurnConfig  `mapstructure:"churn"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

type ScanConfig struct {
	// Ignore lines layered on top of .repolensignore.
	Ignore []string `mapstructure:"ignore"`
}

type ChurnConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	WindowDays int  `mapstructure:"window_days"`
}

type ServerConfig struct {
	Addr    string `mapstructure:"addr"`
	Metrics bool   `mapstructure:"metrics"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the built-in configuration used when no file is present.
func Default() *Config {
	return &Config{
		Churn:  ChurnConfig{Enabled: true, WindowDays: 90},
		Server: ServerConfig{Addr: ":8080", Metrics: true},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Validate checks configuration for issues and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	if c.Churn.WindowDays < 0 {
		warnings = append(warnings, fmt.Sprintf("churn window_days %d is negative", c.Churn.WindowDays))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		warnings = append(warnings, fmt.Sprintf("log format %q is not text or json", c.Log.Format))
	}

	return warnings
}

// Load reads configuration from an optional .repolens.yaml and the
// environment (REPOLENS_ prefix, dots replaced by underscores). A missing
// file is not an error; environment and defaults still apply.
func Load(path string) (*Config, []string, error) {
	v := viper.New()
	v.SetEnvPrefix("REPOLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("churn.enabled", def.Churn.Enabled)
	v.SetDefault("churn.window_days", def.Churn.WindowDays)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("server.metrics", def.Server.Metrics)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("reading config: %w", err)
		}
	} else {
		v.SetConfigName(".repolens")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, cfg.Validate(), nil
}
