package consts

import "path/filepath"

// Constants for configuration paths and defaults
const (
	DefaultDirName      = ".decree"
	StateFileName       = "state.yaml"
	DefaultConfigFile   = "decree.yaml"
	DefaultTemplatesDir = "templates"
	DefaultUnitDir      = "/etc/systemd/system"
)

// GetDecreeDir returns the root directory name for Decree data
func GetDecreeDir() string {
	return DefaultDirName
}

// GetStateFilePath returns the default path to the state file
func GetStateFilePath() string {
	return filepath.Join(GetDecreeDir(), StateFileName)
}
