// Package config loads the taskflow config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hollis/taskflow/internal/db"
	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable application settings
type Config struct {
	DataDir     string `yaml:"data_dir"`
	DBPath      string `yaml:"db_path"`
	Theme       string `yaml:"theme"`
	WindowYears int    `yaml:"window_years"` // recurrence expansion horizon
}

// Default returns the configuration used when no config file exists
func Default() Config {
	dataDir := db.DefaultDataDir()
	return Config{
		DataDir:     dataDir,
		DBPath:      filepath.Join(dataDir, "taskflow.db"),
		Theme:       "default",
		WindowYears: 1,
	}
}

// Path returns the config file location: the TASKFLOW_CONFIG
// environment variable if set, otherwise the user config directory
func Path() (string, error) {
	if custom := os.Getenv("TASKFLOW_CONFIG"); custom != "" {
		return custom, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return "", fmt.Errorf("failed to determine home directory: %w", homeErr)
		}
		return filepath.Join(home, ".taskflow", "config.yaml"), nil
	}
	return filepath.Join(configDir, "taskflow", "config.yaml"), nil
}

// Load reads the config file, falling back to Default when the file
// does not exist. A file that exists but fails to parse is an error.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return loadFrom(path)
}

func loadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("failed to read config file (%s): %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file (%s): %w", path, err)
	}
	if cfg.WindowYears <= 0 {
		cfg.WindowYears = 1
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "taskflow.db")
	}
	return cfg, nil
}
