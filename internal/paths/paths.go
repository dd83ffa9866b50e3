// Package paths resolves configuration and data directory locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative data directory name used when no override is active.
const (
	DefaultDataDirName = ".kagproj-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "KAGPROJ_CONFIG_DIR"
	EnvDataDir   = "KAGPROJ_DATA_DIR"
)

// appDirName is the per-user directory created under the platform config root.
const appDirName = "kagproj"

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/kagproj (fallback ~/.config/kagproj)
// macOS:   ~/Library/Application Support/kagproj
// Windows: %APPDATA%/kagproj
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appDirName), nil
	}
	// macOS and Windows use os.UserConfigDir, which returns
	// ~/Library/Application Support on macOS and %APPDATA% on Windows.
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > KAGPROJ_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the registry data directory following the
// precedence chain: flag > config.yaml value > KAGPROJ_DATA_DIR env >
// $(CWD)/.kagproj-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ResolveProjectsDir returns the base directory under which new project
// trees are scaffolded: config.yaml value when set, otherwise the
// current working directory.
func ResolveProjectsDir(configYAMLValue string) (string, error) {
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	return os.Getwd()
}
