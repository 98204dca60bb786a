package pipeline

import (
	"os"
	"path/filepath"
)

// DataDir returns the platform-appropriate data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "brgy")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "brgy")
}

// DefaultDBPath returns the default registry database path. BRGY_DB
// overrides it.
func DefaultDBPath() string {
	if env := os.Getenv("BRGY_DB"); env != "" {
		return env
	}
	return filepath.Join(DataDir(), "registry.db")
}
