// Package common provides shared utilities for portdash
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for portdash
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Data        DataConfig    `toml:"data"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`

	// EventRateLimit caps POST /events per second across all clients.
	// Zero disables the limiter.
	EventRateLimit float64 `toml:"event_rate_limit"`
	EventBurst     int     `toml:"event_burst"`
}

// DataConfig points at the seed collections loaded at startup.
type DataConfig struct {
	Users    string `toml:"users"`     // .json, .yaml or .yml
	Stocks   string `toml:"stocks"`    // .json, .yaml or .yml
	LogosDir string `toml:"logos_dir"` // served under /logos/
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"` // "console" or "json"
	FilePath   string `toml:"file_path"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			EventRateLimit: 20,
			EventBurst:     40,
		},
		Data: DataConfig{
			Users:    "data/users.json",
			Stocks:   "data/stocks.json",
			LogosDir: "data/logos",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Later files override earlier ones
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("PORTDASH_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("PORTDASH_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("PORTDASH_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("PORTDASH_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("PORTDASH_USERS_PATH"); path != "" {
		config.Data.Users = path
	}
	if path := os.Getenv("PORTDASH_STOCKS_PATH"); path != "" {
		config.Data.Stocks = path
	}
	if dir := os.Getenv("PORTDASH_LOGOS_DIR"); dir != "" {
		config.Data.LogosDir = dir
	}
}

// ResolvePaths makes relative data and log paths absolute against baseDir.
func (c *Config) ResolvePaths(baseDir string) {
	resolve := func(p *string) {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(baseDir, *p)
		}
	}
	resolve(&c.Data.Users)
	resolve(&c.Data.Stocks)
	resolve(&c.Data.LogosDir)
	resolve(&c.Logging.FilePath)
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
