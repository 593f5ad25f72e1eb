package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/tealscan/internal/common"
	"github.com/bobmcallan/tealscan/internal/interfaces"
	"github.com/bobmcallan/tealscan/internal/services/portfolio"
)

// App holds the loaded configuration, logger, and scan service.
// It is the shared core used by both cmd/tealscan-server and cmd/tealscan.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	ScanService interfaces.ScanService
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

// ResolveConfigPath picks the config file: the given path, TEALSCAN_CONFIG,
// tealscan.toml next to the binary, then config/tealscan.toml.
func ResolveConfigPath(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if env := os.Getenv("TEALSCAN_CONFIG"); env != "" {
		return env
	}
	configPath = filepath.Join(getBinaryDir(), "tealscan.toml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configPath = "config/tealscan.toml" // fallback for development
	}
	return configPath
}

// LoadConfig loads .env, version metadata, and the resolved config file.
func LoadConfig(configPath string) (*common.Config, error) {
	if err := common.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	config, err := common.LoadConfig(ResolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return config, nil
}

// NewApp loads configuration and initializes the scan service.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := common.NewLogger(config.Logging.Level)

	return newApp(config, logger, startupStart), nil
}

// NewAppWithConfig builds an App from an already loaded configuration.
func NewAppWithConfig(config *common.Config, logger *common.Logger) *App {
	return newApp(config, logger, time.Now())
}

func newApp(config *common.Config, logger *common.Logger, start time.Time) *App {
	a := &App{
		Config:      config,
		Logger:      logger,
		ScanService: portfolio.NewService(config, logger),
		StartupTime: start,
	}

	logger.Debug().Dur("startup", time.Since(start)).Msg("App initialized")

	return a
}
