package extract

import (
	"fmt"

	"rasporedctl/pkg/config"
	"rasporedctl/pkg/registry"
	"rasporedctl/pkg/scraper"
	"rasporedctl/pkg/timetable"

	"go.uber.org/zap"
)

// Setup builds a pipeline and its options from the user's settings. Empty
// settings fall back to the school site, the embedded registry and the newer
// timetable.
func Setup(cfg *config.AppConfig, logger *zap.Logger) (*Pipeline, Options, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, Options{}, err
	}

	reg := registry.Default()
	if cfg.RegistryPath != "" {
		var err error
		reg, err = registry.Load(cfg.RegistryPath)
		if err != nil {
			return nil, Options{}, fmt.Errorf("failed to load registry: %w", err)
		}
	}

	builder := timetable.NewBuilder(reg, logger)
	builder.Reconcile = cfg.ReconcileEnabled()

	opts := Options{
		SiteURL:       cfg.SiteURL,
		TimetableName: cfg.TimetableName,
		Preference:    scraper.Preference(cfg.Preference),
		ShiftMarker:   cfg.ShiftMarker,
		ClassTeacher:  cfg.ClassTeacher,
	}
	if opts.SiteURL == "" {
		opts.SiteURL = scraper.DefaultSiteURL
	}
	if opts.Preference == "" {
		opts.Preference = scraper.PreferNew
	}

	return New(scraper.NewClient(logger), builder, logger), opts, nil
}
