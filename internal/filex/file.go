// Package filex contains small filesystem helpers for locating and creating
// the client's local state directory.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (and any missing parents) and returns it.
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// DefaultStateDir resolves the per-user directory that holds the client
// database, creating it if necessary. It follows the OS convention via
// os.UserConfigDir (e.g. ~/.config/sisimpur on Linux).
func DefaultStateDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return EnsureDir(filepath.Join(base, "sisimpur"))
}
