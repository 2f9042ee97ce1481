// Package xdg provides helpers to resolve XDG Base Directory paths for cougardb.
// It implements the XDG Base Directory specification for determining where the
// CLI looks for its configuration file on Unix-like systems.
//
// The package handles fallback to traditional locations when XDG environment
// variables are not set and ensures private permissions for the directory.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under XDG base directories.
const AppName = "cougardb"

// ConfigDir returns the XDG config directory for cougardb.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/cougardb when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}

// ConfigFile returns the default config file path inside ConfigDir.
func ConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
