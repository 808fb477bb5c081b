package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDir returns the path to the shakmat configuration directory,
// ~/.shakmat/.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".shakmat"), nil
}

// configFilePath returns the full path to the configuration file.
func configFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
