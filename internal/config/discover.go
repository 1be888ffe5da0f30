// internal/config/discover.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Discover when no config file exists in the search path.
var ErrNotFound = errors.New("config not found")

// EnvPath names the environment variable that pins the config file.
const EnvPath = "ROULETTE_CONFIG"

// NotFoundError lists the locations Discover checked. It matches ErrNotFound.
type NotFoundError struct {
	Checked []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s, checked: %s", ErrNotFound, strings.Join(e.Checked, ", "))
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./config.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "roulette", "config.toml")
}

// SearchPaths returns the files Discover tries when ROULETTE_CONFIG is unset:
// ./config.toml, then the XDG path, then /etc/roulette/config.toml.
func SearchPaths() []string {
	return []string{
		"./config.toml",
		DefaultPath(),
		"/etc/roulette/config.toml",
	}
}

// Discover finds the config file. ROULETTE_CONFIG wins when set and must
// point at an existing file; otherwise the first regular file in SearchPaths
// is used. A directory named config.toml is skipped.
func Discover() (string, error) {
	if envPath := os.Getenv(EnvPath); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvPath, envPath, err)
		}
		return envPath, nil
	}

	paths := SearchPaths()
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, nil
		}
	}

	return "", &NotFoundError{Checked: paths}
}
