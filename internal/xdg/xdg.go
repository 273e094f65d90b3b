// Package xdg provides helpers to resolve XDG Base Directory paths for scpi.
// It determines the locations for the configuration file and for state data
// such as the interactive command history, falling back to the traditional
// dotfile locations when the XDG environment variables are not set.
package xdg

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the XDG config directory for scpi.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/scpi when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, "scpi")
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}

// StateDir returns the XDG state directory for scpi, used for the command
// history file. The directory is created with private permissions (0700)
// if missing. It falls back to ~/.local/state/scpi when XDG_STATE_HOME is
// unset.
func StateDir() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(base, "scpi")
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
