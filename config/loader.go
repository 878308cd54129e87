package config

import (
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "sicindex.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/sicindex"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"

	// EnvDataDir overrides data.dir when set
	EnvDataDir = "SICINDEX_DATA_DIR"
	// EnvLogLevel overrides logging.level when set
	EnvLogLevel = "SICINDEX_LOG_LEVEL"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/sicindex/config.yaml)
// 3. Project config (sicindex.yaml in current or parent directories)
// 4. Environment variables (SICINDEX_DATA_DIR, SICINDEX_LOG_LEVEL)
func (l *Loader) Load() (*Config, error) {
	// Start with defaults
	config := DefaultConfig()

	// Load user config
	userConfigPath := l.userConfigPath()
	if userConfig, err := LoadFromFile(userConfigPath); err == nil {
		l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
		config.Merge(userConfig)
	} else if !os.IsNotExist(err) {
		l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
	}

	// Load project config
	projectConfigPath := l.findProjectConfig()
	if projectConfigPath != "" {
		if projectConfig, err := LoadFromFile(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			config.Merge(projectConfig)
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	return l.finish(config)
}

// LoadPath loads an explicit config file over the defaults, skipping
// the user and project config search.
func (l *Loader) LoadPath(path string) (*Config, error) {
	fileConfig, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	config.Merge(fileConfig)
	return l.finish(config)
}

// finish applies environment overrides and validates the final config.
func (l *Loader) finish(config *Config) (*Config, error) {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		config.Data.Dir = dir
		l.logger.Debug("Data dir overridden from environment", slog.String("dir", dir))
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		config.Logging.Level = level
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for sicindex.yaml in current and parent directories
func (l *Loader) findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return ""
}
