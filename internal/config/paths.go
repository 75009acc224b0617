package config

import (
	"os"
	"path/filepath"
)

// GetHome returns DYNFORM_HOME or ~/.dynform default
func GetHome() string {
	home := os.Getenv("DYNFORM_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".dynform"
		}
		return filepath.Join(homeDir, ".dynform")
	}
	return ExpandPath(home)
}

// GetSettingsPath returns $DYNFORM_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetHome(), "settings.json")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
