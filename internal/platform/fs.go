package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// windowsExecExts are the extensions Windows treats as directly runnable.
var windowsExecExts = []string{".exe", ".bat", ".cmd", ".com"}

// FS answers existence and executability questions against the real filesystem.
type FS struct{}

// Exists reports whether path exists.
func (FS) Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// IsExecutable reports whether path is a regular file the platform would run.
func (FS) IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	if runtime.GOOS == OSWindows {
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range windowsExecExts {
			if ext == e {
				return true
			}
		}
		return false
	}

	return info.Mode().Perm()&0o111 != 0
}
