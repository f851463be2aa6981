package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"rasporedctl/pkg/config"
	"rasporedctl/pkg/exporter"
	"rasporedctl/pkg/extract"
	"rasporedctl/pkg/output"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"go.uber.org/zap"
)

// RunScheduleTUI extracts the configured timetable, lets the user pick a class
// and then shows it, exports it to ICS or saves the JSON, depending on action.
func RunScheduleTUI(action string, logger *zap.Logger) error {
	fmt.Println(accentStyle.Render("Welcome to the rasporedctl timetable reader!"))

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.LoadEnv(); err != nil {
		return err
	}

	if cfg.TimetableName == "" {
		nameForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Which timetable should be read?").
					Description("The name printed in the link on the school page.").
					Placeholder("e.g. GIM-EK").
					Value(&cfg.TimetableName).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("timetable name cannot be empty")
						}
						return nil
					}),
			),
		).WithTheme(GetTheme())

		if err := nameForm.Run(); err != nil {
			return err
		}
	}

	pipeline, opts, err := extract.Setup(cfg, logger)
	if err != nil {
		return err
	}

	var doc *output.Document

	_ = spinner.New().
		Title(fmt.Sprintf("Reading the %s timetable...", opts.TimetableName)).
		Action(func() {
			doc, err = pipeline.Run(context.Background(), opts)
		}).
		Run()

	if err != nil {
		return fmt.Errorf("failed to extract timetable: %w", err)
	}
	if doc == nil {
		fmt.Println(errorStyle.Render("No timetable table was found in the document!"))
		return nil
	}

	if action == "json" {
		return saveJSON(*doc)
	}

	var classOptions []huh.Option[string]
	for _, name := range doc.Timetable.Names() {
		opt := huh.NewOption(name, name)
		if name == cfg.SavedClass {
			opt = opt.Selected(true)
		}
		classOptions = append(classOptions, opt)
	}

	var selectedClass string

	classForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select your class").
				Description("Start typing to filter.").
				Options(classOptions...).
				Value(&selectedClass).
				Filtering(true).
				Height(12),
		),
	).WithTheme(GetTheme())

	if err := classForm.Run(); err != nil {
		return err
	}

	class, ok := doc.Timetable.Class(selectedClass)
	if !ok {
		fmt.Println(errorStyle.Render("No class selected!"))
		return nil
	}

	if action == "show" {
		fmt.Println(RenderClass(class, doc.Metadata))
		return nil
	}

	outputFile := strings.ReplaceAll(class.Name, ".", "") + ".ics"

	fileForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output file name").
				Value(&outputFile).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("file name cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(GetTheme())

	if err := fileForm.Run(); err != nil {
		return err
	}

	if !strings.HasSuffix(outputFile, ".ics") {
		outputFile += ".ics"
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := exporter.GenerateICS(class, doc.Metadata, file); err != nil {
		return fmt.Errorf("failed to generate ICS: %w", err)
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\nSuccess! Exported the %s week of %s to %s", doc.Metadata.Date, class.Name, outputFile)))

	return nil
}

func saveJSON(doc output.Document) error {
	outputFile := "raspored.json"

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output file name").
				Value(&outputFile).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("file name cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	if err := output.WriteFile(outputFile, doc); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\nSuccess! Saved %d classes to %s", len(doc.Timetable.Classes), outputFile)))
	return nil
}
