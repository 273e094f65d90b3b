// Package config loads and stores CLI configuration in the XDG config dir.
// Settings here are session-scope defaults; command-line flags always win.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"scpi/cli/internal/xdg"
)

// Defaults applied when no config file exists.
const (
	DefaultPort           = 9001
	DefaultTimeoutSeconds = 5
	DefaultHistoryLimit   = 500
)

// Config holds CLI settings.
type Config struct {
	// Port is the TCP port used when none is given on the command line.
	Port int `json:"port"`
	// TimeoutSeconds is how long to wait for a query response.
	TimeoutSeconds int `json:"timeout_seconds"`
	// HistoryLimit caps the persisted interactive history.
	HistoryLimit int `json:"history_limit"`
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing file returns defaults.
func Load() (Config, error) {
	c := Config{
		Port:           DefaultPort,
		TimeoutSeconds: DefaultTimeoutSeconds,
		HistoryLimit:   DefaultHistoryLimit,
	}
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, err
	}
	if c.Port <= 0 {
		c.Port = DefaultPort
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = DefaultHistoryLimit
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
