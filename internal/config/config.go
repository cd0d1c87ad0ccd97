// Package config loads application configuration from file, environment
// and defaults, in that priority order.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	IMDb     IMDbConfig     `mapstructure:"imdb"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// IMDbConfig tunes the IMDb provider.
type IMDbConfig struct {
	// Timeout in seconds for a single HTTP attempt.
	Timeout int `mapstructure:"timeout"`

	// Concurrency caps simultaneous IMDb requests.
	Concurrency int `mapstructure:"concurrency"`

	// WindowRequests per WindowSeconds is the anti-block budget.
	WindowRequests int `mapstructure:"window_requests"`
	WindowSeconds  int `mapstructure:"window_seconds"`

	// Language and Country are the default request tags.
	Language string `mapstructure:"language"`
	Country  string `mapstructure:"country"`

	// Adult includes adult titles in discovery.
	Adult bool `mapstructure:"adult"`

	// Filter is the default post-filter level: none, lenient or strict.
	Filter string `mapstructure:"filter"`

	// Companies optionally overrides the embedded company table with a
	// YAML file of the same shape.
	Companies string `mapstructure:"companies"`
}

// DatabaseConfig holds cache database configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		IMDb: IMDbConfig{
			Timeout:        15,
			Concurrency:    10,
			WindowRequests: 250,
			WindowSeconds:  60,
			Language:       "en",
			Country:        "us",
			Filter:         "lenient",
		},
		Database: DatabaseConfig{
			Path: "./data/reeldex.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from file and environment variables.
// Priority: environment variables > config file > defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.reeldex")
	}

	v.SetEnvPrefix("REELDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults + env vars
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("imdb.timeout", def.IMDb.Timeout)
	v.SetDefault("imdb.concurrency", def.IMDb.Concurrency)
	v.SetDefault("imdb.window_requests", def.IMDb.WindowRequests)
	v.SetDefault("imdb.window_seconds", def.IMDb.WindowSeconds)
	v.SetDefault("imdb.language", def.IMDb.Language)
	v.SetDefault("imdb.country", def.IMDb.Country)
	v.SetDefault("imdb.adult", false)
	v.SetDefault("imdb.filter", def.IMDb.Filter)
	v.SetDefault("imdb.companies", "")

	v.SetDefault("database.path", def.Database.Path)

	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.path", "")
}
