package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Note: Tests that modify HOME/USERPROFILE environment variables cannot run in
// parallel because os.Setenv affects the entire process.

// setTestHome overrides the home directory for tests on all platforms.
// On Unix, os.UserHomeDir() reads HOME; on Windows it reads USERPROFILE.
func setTestHome(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("HOME", dir)

	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", dir)
	}
}

func writeAppConfig(t *testing.T, home, content string) {
	t.Helper()

	dir := filepath.Join(home, appConfigDir)
	if err := os.MkdirAll(dir, 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, appConfigFile), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestSaveAppConfig(t *testing.T) {
	tmpDir := t.TempDir()
	setTestHome(t, tmpDir)

	cfg := DefaultAppConfig()
	cfg.ExecPrefix = "prime-run"

	if err := SaveAppConfig(cfg); err != nil {
		t.Fatalf("SaveAppConfig() error = %v", err)
	}

	configPath := filepath.Join(tmpDir, appConfigDir, appConfigFile)
	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatal("Config file was not created")
	}

	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("Config permissions = %o, want 600", info.Mode().Perm())
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // test file path is controlled
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "# deskforge app configuration") {
		t.Error("Config file should have header comment")
	}

	for _, want := range []string{"exec_prefix: prime-run", "- png", "history_limit: 20"} {
		if !strings.Contains(content, want) {
			t.Errorf("Config file should contain %q, got: %s", want, content)
		}
	}
}

func TestLoadAppConfig(t *testing.T) {
	tmpDir := t.TempDir()
	setTestHome(t, tmpDir)

	writeAppConfig(t, tmpDir, `applications_dir: /srv/apps
exec_prefix: " env GDK_BACKEND=x11 "
icon_extensions: [".PNG", xpm]
no_color: true
history_limit: 5
`)

	cfg, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig() error = %v", err)
	}

	if cfg.ApplicationsDir != "/srv/apps" {
		t.Errorf("ApplicationsDir = %q, want %q", cfg.ApplicationsDir, "/srv/apps")
	}
	if cfg.ExecPrefix != "env GDK_BACKEND=x11" {
		t.Errorf("ExecPrefix = %q", cfg.ExecPrefix)
	}
	if len(cfg.IconExtensions) != 2 || cfg.IconExtensions[0] != "png" || cfg.IconExtensions[1] != "xpm" {
		t.Errorf("IconExtensions = %v, want [png xpm]", cfg.IconExtensions)
	}
	if !cfg.NoColor {
		t.Error("NoColor = false, want true")
	}
	if cfg.HistoryLimit != 5 {
		t.Errorf("HistoryLimit = %d, want 5", cfg.HistoryLimit)
	}
}

func TestLoadAppConfigWithTilde(t *testing.T) {
	tmpDir := t.TempDir()
	setTestHome(t, tmpDir)

	writeAppConfig(t, tmpDir, "applications_dir: ~/launchers\n")

	cfg, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig() error = %v", err)
	}

	want := filepath.Join(tmpDir, "launchers")
	if cfg.ApplicationsDir != want {
		t.Errorf("ApplicationsDir = %q, want %q", cfg.ApplicationsDir, want)
	}
}

func TestLoadAppConfigNotFound(t *testing.T) {
	setTestHome(t, t.TempDir())

	cfg, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig() error = %v", err)
	}

	if cfg.HistoryLimit != DefaultHistoryLimit {
		t.Errorf("HistoryLimit = %d, want %d", cfg.HistoryLimit, DefaultHistoryLimit)
	}
	if strings.Join(cfg.IconExtensions, ",") != "png,svg,jpg" {
		t.Errorf("IconExtensions = %v", cfg.IconExtensions)
	}
}

func TestLoadAppConfigInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	setTestHome(t, tmpDir)

	writeAppConfig(t, tmpDir, "invalid: yaml: content: [")

	_, err := LoadAppConfig()
	if err == nil {
		t.Fatal("LoadAppConfig() should error for invalid YAML")
	}

	if !strings.Contains(err.Error(), "parsing app config") {
		t.Errorf("Error should mention parsing, got: %v", err)
	}
}

func TestLoadAppConfigInvalidValues(t *testing.T) {
	tmpDir := t.TempDir()
	setTestHome(t, tmpDir)

	writeAppConfig(t, tmpDir, `applications_dir: relative/apps
icon_extensions: ["png", ""]
history_limit: -3
`)

	_, err := LoadAppConfig()
	if err == nil {
		t.Fatal("LoadAppConfig() should reject invalid values")
	}

	var ve *ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("error should be ValidationErrors, got %T", err)
	}
	if len(ve.Errors) != 3 {
		t.Errorf("got %d validation errors, want 3: %v", len(ve.Errors), ve)
	}
	if !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, ErrRelativePath) {
		t.Error("error should wrap both ErrInvalidConfig and ErrRelativePath")
	}
}

func TestAppConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	setTestHome(t, tmpDir)

	got := AppConfigPath()
	want := filepath.Join(tmpDir, appConfigDir, appConfigFile)
	if got != want {
		t.Errorf("AppConfigPath() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	tmpDir := t.TempDir()
	setTestHome(t, tmpDir)
	t.Setenv("DESKFORGE_TEST_DIR", "/opt/x")

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"~", tmpDir},
		{"~/apps", filepath.Join(tmpDir, "apps")},
		{"$DESKFORGE_TEST_DIR/apps", "/opt/x/apps"},
		{"/abs/path", "/abs/path"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ExpandPath(tt.input); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
