package extract

import (
	"os"
	"path/filepath"
	"testing"

	"rasporedctl/pkg/config"
	"rasporedctl/pkg/scraper"
)

func TestSetupDefaults(t *testing.T) {
	p, opts, err := Setup(&config.AppConfig{TimetableName: "GIM-EK"}, nil)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if opts.SiteURL != scraper.DefaultSiteURL {
		t.Errorf("expected default site, got %q", opts.SiteURL)
	}
	if opts.Preference != scraper.PreferNew {
		t.Errorf("expected new timetable preference, got %q", opts.Preference)
	}
	if !p.Builder.Reconcile {
		t.Errorf("expected reconciliation on by default")
	}
	if !p.Builder.Registry.Contains("HG") {
		t.Errorf("expected the embedded registry")
	}
}

func TestSetupFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	yaml := "rooms:\n  min: 1\n  max: 10\ncodes:\n  XY:\n    teacher: Ana Anić\n    subject: Fizika\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write registry: %v", err)
	}

	off := false
	cfg := &config.AppConfig{
		SiteURL:       "https://example.com/raspored/",
		TimetableName: "STR",
		Preference:    "old",
		RegistryPath:  path,
		ShiftMarker:   "A-SMJENA",
		ClassTeacher:  "Ana Anić",
		Reconcile:     &off,
	}
	p, opts, err := Setup(cfg, nil)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	want := Options{
		SiteURL:       "https://example.com/raspored/",
		TimetableName: "STR",
		Preference:    scraper.PreferOld,
		ShiftMarker:   "A-SMJENA",
		ClassTeacher:  "Ana Anić",
	}
	if opts != want {
		t.Errorf("unexpected options: %+v", opts)
	}
	if p.Builder.Reconcile {
		t.Errorf("expected reconciliation disabled")
	}
	if !p.Builder.Registry.Contains("XY") || p.Builder.Registry.Contains("HG") {
		t.Errorf("expected the registry loaded from %s", path)
	}
}

func TestSetupErrors(t *testing.T) {
	if _, _, err := Setup(&config.AppConfig{Preference: "newest"}, nil); err == nil {
		t.Errorf("expected a validation error")
	}
	if _, _, err := Setup(&config.AppConfig{RegistryPath: filepath.Join(t.TempDir(), "none.yaml")}, nil); err == nil {
		t.Errorf("expected an error for a missing registry file")
	}
}
