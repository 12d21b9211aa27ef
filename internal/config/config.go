// Package config provides Viper-based configuration for narrative
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete narrative configuration
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Deck    DeckConfig    `mapstructure:"deck"`
	Server  ServerConfig  `mapstructure:"server"`
	Export  ExportConfig  `mapstructure:"export"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DataConfig selects where datasets are read from. BaseURL wins over Dir;
// with neither set the embedded datasets are used.
type DataConfig struct {
	Dir     string        `mapstructure:"dir"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DeckConfig points at an optional YAML deck replacing the built-in slides
type DeckConfig struct {
	File string `mapstructure:"file"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// ExportConfig contains image export settings
type ExportConfig struct {
	Concurrency int `mapstructure:"concurrency"`
	JPEGQuality int `mapstructure:"jpeg_quality"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".narrative")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/narrative")
	}

	v.SetEnvPrefix("NARRATIVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.dir", "")
	v.SetDefault("data.base_url", "")
	v.SetDefault("data.timeout", 10*time.Second)

	v.SetDefault("deck.file", "")

	v.SetDefault("server.address", ":8080")

	v.SetDefault("export.concurrency", 3)
	v.SetDefault("export.jpeg_quality", 90)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func validate(cfg *Config) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"console": true, "json": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s (must be console or json)", cfg.Logging.Format)
	}

	if cfg.Data.Timeout <= 0 {
		return fmt.Errorf("invalid data timeout: %s", cfg.Data.Timeout)
	}

	if cfg.Export.Concurrency < 1 {
		return fmt.Errorf("invalid export concurrency: %d (must be at least 1)", cfg.Export.Concurrency)
	}

	if cfg.Export.JPEGQuality < 1 || cfg.Export.JPEGQuality > 100 {
		return fmt.Errorf("invalid jpeg quality: %d (must be 1-100)", cfg.Export.JPEGQuality)
	}

	return nil
}
