package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for savelink
	EnvConfigDir = "SAVELINK_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for savelink
	EnvStateDir = "SAVELINK_STATE_DIR"
)

// Fixed names inside the application directories
const (
	// AppDirName is the directory name used under the XDG base directories
	AppDirName = "savelink"

	// ConfigFileName is the user configuration file inside ConfigDir
	ConfigFileName = "config.toml"

	// StateFileName holds the persisted backup record inside StateDir
	StateFileName = "backup.toml"

	// LogFileName is the name of the log file inside StateDir
	LogFileName = "savelink.log"

	// DefaultBackupDirName is created in the home directory to hold backups
	DefaultBackupDirName = "StardewValleyCrossSaves_Backups"
)

// ConfigDir returns the directory holding the user configuration
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the directory for state and log files
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return ExpandHome(dir)
	}
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// ConfigFilePath returns the default user configuration file
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// StateFilePath returns the file the backup record is persisted to
func StateFilePath() string {
	return filepath.Join(StateDir(), StateFileName)
}

// LogFilePath returns the path to the log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// DefaultBackupRoot returns the well-known folder backups are written to
func DefaultBackupRoot() string {
	return filepath.Join(ExpandHome("~"), DefaultBackupDirName)
}
