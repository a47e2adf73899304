// Package testutil provides cross-platform test helpers.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// CreateMockBinary creates a fake executable named name in dir that exits 0.
// On Unix: creates a shell script. On Windows: creates a .bat file.
// Returns the full path to the created binary.
func CreateMockBinary(t *testing.T, dir, name string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		path := filepath.Join(dir, name+".bat")
		writeFile(t, path, "@echo off\r\nexit /b 0\r\n", 0o755)
		return path
	}

	path := filepath.Join(dir, name)
	writeFile(t, path, "#!/bin/sh\nexit 0\n", 0o755)
	return path
}

// CreatePlainFile creates a regular, non-executable file named name in dir.
// Returns the full path to the created file.
func CreatePlainFile(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	writeFile(t, path, "not a program\n", 0o644)
	return path
}

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), perm); err != nil { //nolint:gosec // test helper: mock binary must be executable
		t.Fatalf("failed to create %s: %v", path, err)
	}
}

// PrependPath returns the current PATH with dir prepended, using the
// OS-appropriate path list separator.
func PrependPath(t *testing.T, dir string) string {
	t.Helper()

	return dir + string(os.PathListSeparator) + os.Getenv("PATH")
}
