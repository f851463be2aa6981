package tui

import (
	"fmt"
	"strings"

	"rasporedctl/pkg/config"
	"rasporedctl/pkg/registry"
	"rasporedctl/pkg/scraper"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Timetable Source", "source"),
						huh.NewOption("Set Saved Class", "class"),
						huh.NewOption("Set Teacher Registry File", "registry"),
						huh.NewOption("Toggle Reconciliation Pass", "reconcile"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		if action == "back" {
			return nil
		}

		if action == "theme" {
			err = runSetThemeTUI(cfg)
		} else if action == "source" {
			err = runSetSourceTUI(cfg)
		} else if action == "class" {
			err = runSetClassTUI(cfg)
		} else if action == "registry" {
			err = runSetRegistryTUI(cfg)
		} else if action == "reconcile" {
			err = runToggleReconcileTUI(cfg)
		} else if action == "view" {
			printConfig(cfg)
		}

		if err != nil {
			return err
		}
	}
}

func orUnset(s string) string {
	if s == "" {
		return "Not set"
	}
	return s
}

func printConfig(cfg *config.AppConfig) {
	fmt.Println(accentStyle.Render("\n--- Current Configuration (~/.rasporedctl.json) ---"))
	site := cfg.SiteURL
	if site == "" {
		site = scraper.DefaultSiteURL + " (default)"
	}
	fmt.Printf("School Page: %s\n", site)
	fmt.Printf("Timetable: %s\n", orUnset(cfg.TimetableName))
	fmt.Printf("Preference: %s\n", orUnset(cfg.Preference))
	fmt.Printf("Saved Class: %s\n", orUnset(cfg.SavedClass))
	fmt.Printf("Class Teacher: %s\n", orUnset(cfg.ClassTeacher))
	fmt.Printf("Shift Marker: %s\n", orUnset(cfg.ShiftMarker))
	fmt.Printf("Registry: %s\n", orUnset(cfg.RegistryPath))
	fmt.Printf("Reconcile: %t\n", cfg.ReconcileEnabled())
	fmt.Printf("Accent Color: %s\n", cfg.AccentColor)
	fmt.Println()
}

func runSetSourceTUI(cfg *config.AppConfig) error {
	site := cfg.SiteURL
	if site == "" {
		site = scraper.DefaultSiteURL
	}
	name := cfg.TimetableName
	preference := cfg.Preference
	if preference == "" {
		preference = string(scraper.PreferNew)
	}
	shiftMarker := cfg.ShiftMarker

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("School page listing the timetables").
				Value(&site),
			huh.NewInput().
				Title("Timetable name").
				Description("Text found in the timetable link, e.g. GIM-EK or STR.").
				Value(&name),
			huh.NewSelect[string]().
				Title("When two timetables are listed, use").
				Options(
					huh.NewOption("The newer one", string(scraper.PreferNew)),
					huh.NewOption("The older one", string(scraper.PreferOld)),
				).
				Value(&preference),
			huh.NewInput().
				Title("Morning shift marker").
				Description("Text in the document address that marks the morning shift.").
				Placeholder("JUTRO").
				Value(&shiftMarker),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.SiteURL = strings.TrimSpace(site)
	if cfg.SiteURL == scraper.DefaultSiteURL {
		cfg.SiteURL = ""
	}
	cfg.TimetableName = strings.TrimSpace(name)
	cfg.Preference = preference
	cfg.ShiftMarker = strings.TrimSpace(shiftMarker)

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Timetable source saved: %s (%s)\n", orUnset(cfg.TimetableName), cfg.Preference)))
	return nil
}

func runSetClassTUI(cfg *config.AppConfig) error {
	class := cfg.SavedClass
	teacher := cfg.ClassTeacher

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your class").
				Description("Preselected when picking a class and used by `show` and `export`.").
				Placeholder("e.g. 1.PMG").
				Value(&class),
			huh.NewInput().
				Title("Class teacher").
				Description("Written into the metadata of every extracted timetable.").
				Value(&teacher),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.SavedClass = strings.TrimSpace(class)
	cfg.ClassTeacher = strings.TrimSpace(teacher)
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Saved class: %s\n", orUnset(cfg.SavedClass))))
	return nil
}

func runSetRegistryTUI(cfg *config.AppConfig) error {
	path := cfg.RegistryPath

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Teacher registry YAML file").
				Description("Leave empty to use the built-in registry.").
				Value(&path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := registry.Load(strings.TrimSpace(s))
					return err
				}),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.RegistryPath = strings.TrimSpace(path)
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Registry: %s\n", orUnset(cfg.RegistryPath))))
	return nil
}

func runToggleReconcileTUI(cfg *config.AppConfig) error {
	enabled := cfg.ReconcileEnabled()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Join single-letter codes missed by split detection?").
				Description("For example H and G in neighbouring periods become HG.").
				Value(&enabled),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Reconcile = &enabled
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Reconciliation pass: %t\n", enabled)))
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color for rasporedctl").
				Description("Select a curated Charm style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Classic Purple", colorBlock("99")), "99"),
					huh.NewOption(fmt.Sprintf("%s Sakura Pink", colorBlock("205")), "205"),
					huh.NewOption(fmt.Sprintf("%s Ocean Blue", colorBlock("86")), "86"),
					huh.NewOption(fmt.Sprintf("%s Matrix Green", colorBlock("42")), "42"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(func(str string) error {
						if len(str) != 7 || !strings.HasPrefix(str, "#") {
							return fmt.Errorf("must be a valid 6-character hex code starting with #")
						}
						return nil
					}),
			),
		).WithTheme(GetTheme())

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.AccentColor = hexInput
	} else {
		cfg.AccentColor = input
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ Beautiful! The theme color is now saved.\n"))
	return nil
}
