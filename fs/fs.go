// Package fs implements snapdiff collaborators on the local filesystem.
package fs

import (
	"os"
	"path/filepath"
)

// DefaultConfigPath returns the default configuration file for snapdiff.
// Uses XDG_CONFIG_HOME if set, otherwise falls back to ~/.config/snapdiff.
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "snapdiff", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "snapdiff", "config.yaml")
}
