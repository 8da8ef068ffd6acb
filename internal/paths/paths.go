// Package paths resolves the configuration directory and the schema file
// location.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// File names inside the configuration directory.
const (
	ConfigFileName = "config.yaml"
	SchemaFileName = "schema.yaml"
)

// Environment variable names for location overrides.
const (
	EnvConfigDir = "HGRAPH_CONFIG_DIR"
	EnvSchema    = "HGRAPH_SCHEMA"
)

const appName = "hgraph"

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
// Linux:   $XDG_CONFIG_HOME/hgraph (fallback ~/.config/hgraph)
// macOS:   ~/Library/Application Support/hgraph
// Windows: %APPDATA%/hgraph
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > HGRAPH_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveSchema returns the schema document path following the precedence
// chain: flag > configValue > HGRAPH_SCHEMA env > configDir/schema.yaml.
// A relative configValue is taken relative to configDir, since that is where
// config.yaml lives; a relative flag or env value is taken relative to the
// working directory.
func ResolveSchema(flag, configValue, configDir string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		if filepath.IsAbs(configValue) {
			return configValue, nil
		}
		return filepath.Abs(filepath.Join(configDir, configValue))
	}
	if env := os.Getenv(EnvSchema); env != "" {
		return filepath.Abs(env)
	}
	return filepath.Join(configDir, SchemaFileName), nil
}

// ConfigFile returns the path of config.yaml inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}
