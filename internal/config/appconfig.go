// Package config provides the application configuration for deskforge.
package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user configuration stored in ~/.config/deskforge/
type AppConfig struct {
	// ApplicationsDir overrides the directory launchers are written to
	ApplicationsDir string `yaml:"applications_dir,omitempty"`
	// ExecPrefix is composed into the Exec line of newly created launchers
	ExecPrefix string `yaml:"exec_prefix,omitempty"`
	// IconExtensions lists the icon file extensions accepted as valid
	IconExtensions []string `yaml:"icon_extensions"`
	// NoColor disables colored output in the form
	NoColor bool `yaml:"no_color"`
	// HistoryLimit is the number of history events kept and shown
	HistoryLimit int `yaml:"history_limit"`
}

const (
	appConfigDir  = ".config/deskforge"
	appConfigFile = "config.yaml"

	// DefaultHistoryLimit is used when history_limit is unset.
	DefaultHistoryLimit = 20
)

// DefaultIconExtensions are the icon types accepted without configuration.
var DefaultIconExtensions = []string{"png", "svg", "jpg"}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		IconExtensions: append([]string(nil), DefaultIconExtensions...),
		HistoryLimit:   DefaultHistoryLimit,
	}
}

// LoadAppConfig loads the app configuration from ~/.config/deskforge/config.yaml.
// A missing file yields the defaults.
func LoadAppConfig() (*AppConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}

	return LoadAppConfigFile(filepath.Join(home, appConfigDir, appConfigFile))
}

// LoadAppConfigFile loads the app configuration from configPath.
func LoadAppConfigFile(configPath string) (*AppConfig, error) {
	data, err := os.ReadFile(configPath) //nolint:gosec // path is from user home dir, intentional
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("app config not found, using defaults", slog.String("path", configPath))
			return DefaultAppConfig(), nil
		}

		return nil, fmt.Errorf("reading app config: %w", err)
	}

	cfg := DefaultAppConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing app config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	cfg.normalize()

	slog.Debug("loaded app config",
		slog.String("path", configPath),
		slog.String("applications_dir", cfg.ApplicationsDir),
		slog.Int("history_limit", cfg.HistoryLimit))

	return cfg, nil
}

// normalize expands paths and fills zero values with defaults.
func (a *AppConfig) normalize() {
	a.ApplicationsDir = ExpandPath(a.ApplicationsDir)
	a.ExecPrefix = strings.TrimSpace(a.ExecPrefix)

	if len(a.IconExtensions) == 0 {
		a.IconExtensions = append([]string(nil), DefaultIconExtensions...)
	}
	for i, ext := range a.IconExtensions {
		a.IconExtensions[i] = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	}

	if a.HistoryLimit == 0 {
		a.HistoryLimit = DefaultHistoryLimit
	}
}

// Validate checks the configuration for values that cannot be used.
func (a *AppConfig) Validate() error {
	errs := &ValidationErrors{}

	if a.HistoryLimit < 0 {
		errs.Add(NewFieldError("history_limit", fmt.Sprint(a.HistoryLimit), ErrInvalidConfig))
	}

	for _, ext := range a.IconExtensions {
		trimmed := strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if trimmed == "" || strings.ContainsAny(trimmed, `/\ `) {
			errs.Add(NewFieldError("icon_extensions", ext, ErrInvalidConfig))
		}
	}

	if a.ApplicationsDir != "" && !strings.HasPrefix(a.ApplicationsDir, "~") && !filepath.IsAbs(a.ApplicationsDir) {
		errs.Add(NewFieldError("applications_dir", a.ApplicationsDir, ErrRelativePath))
	}

	if errs.HasErrors() {
		return errs
	}

	return nil
}

// SaveAppConfig saves the app configuration to ~/.config/deskforge/config.yaml
func SaveAppConfig(cfg *AppConfig) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home directory: %w", err)
	}

	configDir := filepath.Join(home, appConfigDir)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(configDir, appConfigFile)

	data, err := marshalYAML(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	content := fmt.Sprintf("# deskforge app configuration\n# Leave applications_dir empty to use the platform data directory\n\n%s", string(data))

	// Use 0600 permissions to restrict access to owner only
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// AppConfigPath returns the path where the app config is stored.
// Returns an empty string if the home directory cannot be determined.
func AppConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, appConfigDir, appConfigFile)
}

// ExpandPath expands ~ and environment variables in a single path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// marshalYAML encodes a value to YAML with 2-space indentation.
func marshalYAML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
