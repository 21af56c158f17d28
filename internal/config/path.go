// Package config loads and validates the engine's runtime configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DefaultDatabasePath returns the default SQLite database location.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "paisaflow.db"
	}
	return filepath.Join(home, ".local", "share", "paisaflow", "paisaflow.db")
}
