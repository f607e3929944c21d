package configs

import (
	"os"
	"path/filepath"
)

const (
	// ProjectConfigName is the settings file looked up at the repository root.
	ProjectConfigName = ".projscan.toml"

	userConfigDirName  = "projscan"
	userConfigFileName = "config.toml"
)

// UserConfigPath returns the location of the per-user settings file, or ""
// when no config directory can be determined.
func UserConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return ""
		}
		configDir = dir
	}
	return filepath.Join(configDir, userConfigDirName, userConfigFileName)
}

// ProjectConfigPath returns the location of the settings file for root.
func ProjectConfigPath(root string) string {
	return filepath.Join(root, ProjectConfigName)
}
