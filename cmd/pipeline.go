package cmd

import (
	"context"
	"errors"
	"fmt"

	"rasporedctl/pkg/config"
	"rasporedctl/pkg/extract"
	"rasporedctl/pkg/output"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var errNothingExtracted = errors.New("no timetable could be extracted, run with --verbose for details")

// addLinkFlags registers the flags that pick the timetable link on the school page.
func addLinkFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("name", "n", "", "Timetable name to look for on the school page (e.g. GIM-EK)")
	cmd.Flags().String("site", "", "School page listing the timetables")
	cmd.Flags().String("prefer", "", "Which of two listed timetables to use: new or old")
}

// addSourceFlags registers the flags that choose and shape the extraction.
func addSourceFlags(cmd *cobra.Command) {
	addLinkFlags(cmd)
	cmd.Flags().StringP("url", "u", "", "Timetable PDF address, skips the school page")
	cmd.Flags().String("registry", "", "Teacher registry YAML file")
	cmd.Flags().String("shift-marker", "", "Text in the PDF address that marks the morning shift")
	cmd.Flags().String("class-teacher", "", "Class teacher written into the metadata")
	cmd.Flags().Bool("no-reconcile", false, "Skip joining single-letter codes split across periods")
	cmd.Flags().Bool("no-cache", false, "Always download and parse the PDF")
	cmd.Flags().Int("workers", 1, "Number of class rows built concurrently")
}

// loadSettings merges the saved config, the environment and the flags, in
// increasing priority.
func loadSettings(cmd *cobra.Command) (*config.AppConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.LoadEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	set := func(flag string, dst *string) {
		if flags.Changed(flag) {
			*dst, _ = flags.GetString(flag)
		}
	}
	set("name", &cfg.TimetableName)
	set("site", &cfg.SiteURL)
	set("prefer", &cfg.Preference)
	set("registry", &cfg.RegistryPath)
	set("shift-marker", &cfg.ShiftMarker)
	set("class-teacher", &cfg.ClassTeacher)

	if noReconcile, _ := flags.GetBool("no-reconcile"); noReconcile {
		off := false
		cfg.Reconcile = &off
	}

	return cfg, nil
}

// runExtraction performs one extraction with the merged settings. class, when
// set, keeps only the matching classes. quiet skips the spinner so stdout stays
// clean. A nil document is reported as errNothingExtracted.
func runExtraction(cmd *cobra.Command, cfg *config.AppConfig, class string, quiet bool) (*output.Document, error) {
	pipeline, opts, err := extract.Setup(cfg, logger)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	opts.DocumentURL, _ = flags.GetString("url")
	opts.Class = class
	pipeline.Client.NoCache, _ = flags.GetBool("no-cache")
	pipeline.Builder.Workers, _ = flags.GetInt("workers")

	if opts.DocumentURL == "" && opts.TimetableName == "" {
		return nil, fmt.Errorf("no timetable name given, use --name or set one with `rasporedctl config`")
	}

	var doc *output.Document
	run := func() {
		doc, err = pipeline.Run(context.Background(), opts)
	}

	if quiet {
		run()
	} else {
		_ = spinner.New().
			Title("Reading timetable...").
			Action(run).
			Run()
	}

	if err != nil {
		return nil, fmt.Errorf("failed to extract timetable: %w", err)
	}
	if doc == nil {
		return nil, errNothingExtracted
	}
	return doc, nil
}
