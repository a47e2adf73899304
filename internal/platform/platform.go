// Package platform provides OS detection and per-user directory resolution.
package platform

import (
	"log/slog"
	"os"
	"os/user"
	"runtime"
	"strings"
)

// Supported operating system identifiers.
const (
	// OSLinux represents Linux and other freedesktop systems
	OSLinux = "linux"
	// OSDarwin represents macOS
	OSDarwin = "darwin"
	// OSWindows represents Windows operating systems
	OSWindows = "windows"
)

// Platform holds detected platform information including the operating system,
// hostname, current user and whether a graphical session is available.
type Platform struct {
	OS         string
	Hostname   string
	User       string
	HasDisplay bool
}

// Detect detects the current platform characteristics.
func Detect() *Platform {
	p := &Platform{
		OS:       detectOS(),
		Hostname: detectHostname(),
		User:     detectUser(),
	}

	p.HasDisplay = detectDisplay(p.OS)

	return p
}

func detectOS() string {
	switch runtime.GOOS {
	case OSWindows:
		return OSWindows
	case OSDarwin:
		return OSDarwin
	}

	// Also check OS environment variable (for cross-platform scripts)
	osEnv := os.Getenv("OS")
	if strings.Contains(strings.ToLower(osEnv), "windows") {
		return OSWindows
	}

	return OSLinux
}

func detectHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		slog.Debug("unable to detect hostname",
			slog.String("error", err.Error()),
			slog.String("fallback", "empty"))
		return ""
	}

	return hostname
}

func detectUser() string {
	u, err := user.Current()
	if err != nil {
		slog.Debug("unable to detect current user",
			slog.String("error", err.Error()),
			slog.String("fallback", "empty"))
		return ""
	}

	return u.Username
}

// detectDisplay checks whether a display server is available.
// On Linux, it checks for DISPLAY (X11) or WAYLAND_DISPLAY (Wayland).
// On Windows and macOS, it always returns true.
func detectDisplay(osType string) bool {
	if osType != OSLinux {
		return true
	}

	if os.Getenv("DISPLAY") != "" {
		return true
	}

	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return true
	}

	return false
}

// WithOS returns a copy of the Platform with the OS field overridden.
func (p *Platform) WithOS(osType string) *Platform {
	newP := *p
	newP.OS = osType

	return &newP
}
