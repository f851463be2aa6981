package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment variables that override the saved settings.
const (
	EnvSiteURL      = "RASPORED_SITE_URL"
	EnvTimetable    = "RASPORED_TIMETABLE"
	EnvPreference   = "RASPORED_PREFERENCE"
	EnvRegistry     = "RASPORED_REGISTRY"
	EnvShiftMarker  = "RASPORED_SHIFT_MARKER"
	EnvClassTeacher = "RASPORED_CLASS_TEACHER"
	EnvReconcile    = "RASPORED_RECONCILE"
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	SiteURL       string `json:"site_url,omitempty" validate:"omitempty,url"`
	TimetableName string `json:"timetable_name,omitempty"`
	Preference    string `json:"preference,omitempty" validate:"omitempty,oneof=new old"`
	RegistryPath  string `json:"registry_path,omitempty"`
	ShiftMarker   string `json:"shift_marker,omitempty"`
	ClassTeacher  string `json:"class_teacher,omitempty"`
	SavedClass    string `json:"saved_class,omitempty"`
	Reconcile     *bool  `json:"reconcile,omitempty"`
	AccentColor   string `json:"accent_color,omitempty" validate:"omitempty,hexcolor|numeric"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// getConfigPath returns the absolute path to ~/.rasporedctl.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".rasporedctl.json"), nil
}

// Load reads the application configuration from disk.
// Returns an empty struct if the file does not exist.
func Load() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &AppConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Save validates the configuration and writes it back to disk.
func Save(cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnv reads the given dotenv files (".env" when none are given) into the
// process environment and then applies the RASPORED_* variables on top of cfg.
// Missing dotenv files are ignored. Variables already set in the environment
// win over dotenv values.
func (cfg *AppConfig) LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	override := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	override(EnvSiteURL, &cfg.SiteURL)
	override(EnvTimetable, &cfg.TimetableName)
	override(EnvPreference, &cfg.Preference)
	override(EnvRegistry, &cfg.RegistryPath)
	override(EnvShiftMarker, &cfg.ShiftMarker)
	override(EnvClassTeacher, &cfg.ClassTeacher)

	if v, ok := os.LookupEnv(EnvReconcile); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvReconcile, v, err)
		}
		cfg.Reconcile = &b
	}

	return nil
}

// Validate checks the field formats.
func (cfg *AppConfig) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %q check (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ReconcileEnabled reports whether the reconciliation pass should run. It is on
// unless explicitly disabled.
func (cfg *AppConfig) ReconcileEnabled() bool {
	return cfg.Reconcile == nil || *cfg.Reconcile
}
