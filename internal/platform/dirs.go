package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoDataDir is returned when no per-user data directory can be determined.
var ErrNoDataDir = errors.New("cannot determine user data directory")

// ApplicationsSubdir is the directory below the data dir holding launchers.
const ApplicationsSubdir = "applications"

// appName names the per-application state directory.
const appName = "deskforge"

// DataDir returns the per-user data directory for the platform:
// $XDG_DATA_HOME or ~/.local/share on Linux, ~/Library/Application Support
// on macOS and %APPDATA% on Windows.
func (p *Platform) DataDir() (string, error) {
	switch p.OS {
	case OSWindows:
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		return "", ErrNoDataDir
	case OSDarwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrNoDataDir, err)
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	}

	if dir := os.Getenv("XDG_DATA_HOME"); filepath.IsAbs(dir) {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoDataDir, err)
	}

	return filepath.Join(home, ".local", "share"), nil
}

// StateDir returns the directory for deskforge's own state files
// ($XDG_STATE_HOME/deskforge or ~/.local/state/deskforge on Linux, the data
// directory elsewhere).
func (p *Platform) StateDir() (string, error) {
	if p.OS == OSLinux {
		if dir := os.Getenv("XDG_STATE_HOME"); filepath.IsAbs(dir) {
			return filepath.Join(dir, appName), nil
		}

		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrNoDataDir, err)
		}
		return filepath.Join(home, ".local", "state", appName), nil
	}

	data, err := p.DataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(data, appName), nil
}

// ApplicationsDir resolves the launcher directory and creates it if needed.
// A non-empty override replaces <data dir>/applications.
func (p *Platform) ApplicationsDir(override string) (string, error) {
	dir := override
	if dir == "" {
		data, err := p.DataDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(data, ApplicationsSubdir)
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("creating applications directory: %w", err)
	}

	slog.Debug("resolved applications directory", slog.String("path", dir))

	return dir, nil
}

// SearchPath returns the directories of the PATH environment variable.
func SearchPath() []string {
	var dirs []string
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if strings.TrimSpace(dir) != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
