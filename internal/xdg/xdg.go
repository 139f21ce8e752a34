// Package xdg resolves XDG Base Directory paths for sqlconsole, falling back
// to the traditional locations when the XDG variables are unset.
package xdg

import (
	"os"
	"path/filepath"
)

// App is the directory name used under each XDG base.
const App = "sqlconsole"

// ConfigHome returns the sqlconsole config directory without creating it.
// It falls back to ~/.config/sqlconsole when XDG_CONFIG_HOME is unset.
func ConfigHome() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, App), nil
}

// ConfigDir returns the sqlconsole config directory, creating it with private
// permissions (0700) if missing.
func ConfigDir() (string, error) {
	dir, err := ConfigHome()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
