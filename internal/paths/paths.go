// Package paths resolves configuration, database, and project directory
// locations for the vibe CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the directory name used under platform config/data roots.
const appDirName = "vibedocs"

// DefaultDBFileName is the SQLite file created inside the data directory.
const DefaultDBFileName = "vibedocs.db"

// Environment variable names for location overrides.
const (
	EnvConfigDir = "VIBEDOCS_CONFIG_DIR"
	EnvDBPath    = "VIBEDOCS_DB"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/vibedocs (fallback ~/.config/vibedocs)
// macOS:   ~/Library/Application Support/vibedocs
// Windows: %APPDATA%/vibedocs
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appDirName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/vibedocs (fallback ~/.local/share/vibedocs)
// macOS:   ~/Library/Application Support/vibedocs
// Windows: %APPDATA%/vibedocs
func DefaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", appDirName), nil
	}
	// macOS and Windows: same as config dir.
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > VIBEDOCS_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDBPath returns the SQLite database file following the precedence
// chain: flag > config.yaml db_path > VIBEDOCS_DB env > DefaultDataDir()/vibedocs.db.
func ResolveDBPath(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDBPath); env != "" {
		return filepath.Abs(env)
	}
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultDBFileName), nil
}

// ResolveProjectsDir returns the directory new projects are created under:
// the configured value when set, otherwise the current working directory.
func ResolveProjectsDir(configYAMLValue string) (string, error) {
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	return os.Getwd()
}
