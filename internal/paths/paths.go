// Package paths resolves the configuration and save-data directories.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the directory created under the platform config/data roots.
const appDirName = "chests"

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".chests"
	DefaultDataDirName   = ".chests-save"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "CHESTS_CONFIG_DIR"
	EnvDataDir   = "CHESTS_DATA_DIR"
)

// ConfigFileName is the configuration file inside the config directory.
const ConfigFileName = "config.yaml"

// platformDir holds platform lookups that tests may override.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// xdgDir returns $env/chests, or ~/<fallback...>/chests when env is unset.
func xdgDir(env string, fallback ...string) (string, error) {
	if v := os.Getenv(env); v != "" {
		return filepath.Join(v, appDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, fallback...)
	return filepath.Join(append(parts, appDirName)...), nil
}

// userDir returns <os.UserConfigDir>/chests, used on macOS and Windows for
// both config and data.
func userDir() (string, error) {
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

// DefaultConfigDir returns the platform-specific configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/chests (fallback ~/.config/chests)
// macOS:   ~/Library/Application Support/chests
// Windows: %APPDATA%/chests
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	return userDir()
}

// DefaultDataDir returns the platform-specific data directory.
//
// Linux:   $XDG_DATA_HOME/chests (fallback ~/.local/share/chests)
// macOS:   ~/Library/Application Support/chests
// Windows: %APPDATA%/chests
func DefaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_DATA_HOME", ".local", "share")
	}
	return userDir()
}

// ResolveConfigDir returns the configuration directory:
// flag > CHESTS_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the save-data directory:
// flag > config data_dir > CHESTS_DATA_DIR > $(CWD)/.chests-save.
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, v := range []string{flag, configValue, os.Getenv(EnvDataDir)} {
		if v != "" {
			return filepath.Abs(v)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
