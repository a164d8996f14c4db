// Package app wires configuration, logging, the seed data, the page and the
// dashboard coordinator into one App shared by the serve and render commands.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/portdash/internal/common"
	"github.com/bobmcallan/portdash/internal/interfaces"
	"github.com/bobmcallan/portdash/internal/services/dashboard"
	"github.com/bobmcallan/portdash/internal/storage"
	"github.com/bobmcallan/portdash/internal/view"
)

// App holds all initialized services.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Store       interfaces.DataStore
	Dashboard   interfaces.DashboardService
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// ResolveConfigPath picks the config file: the given path, PORTDASH_CONFIG,
// portdash.toml next to the binary, then config/portdash.toml.
func ResolveConfigPath(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if env := os.Getenv("PORTDASH_CONFIG"); env != "" {
		return env
	}
	candidate := filepath.Join(getBinaryDir(), "portdash.toml")
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return "config/portdash.toml"
}

// NewApp loads configuration and builds the App.
// configPath may be empty, in which case ResolveConfigPath decides.
func NewApp(configPath string) (*App, error) {
	common.LoadVersionFromFile()

	configPath = ResolveConfigPath(configPath)
	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Relative data and log paths are relative to the config file.
	if _, err := os.Stat(configPath); err == nil {
		config.ResolvePaths(filepath.Dir(configPath))
	}

	logger := common.NewLoggerFromConfig(config.Logging)
	return NewAppFromConfig(config, logger)
}

// NewAppFromConfig builds the App from an already loaded config.
func NewAppFromConfig(config *common.Config, logger *common.Logger) (*App, error) {
	startupStart := time.Now()

	store, err := storage.Load(logger, config.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed data: %w", err)
	}

	page, err := view.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to build page: %w", err)
	}

	svc, err := dashboard.NewService(store, page, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dashboard: %w", err)
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return &App{
		Config:      config,
		Logger:      logger,
		Store:       store,
		Dashboard:   svc,
		StartupTime: startupStart,
	}, nil
}
