package cmd

import (
	"fmt"

	"rasporedctl/pkg/config"
	"rasporedctl/pkg/registry"
	"rasporedctl/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage rasporedctl configuration",
	Long:  "View or edit your local configuration settings (like the timetable name and your class).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		changed := false
		set := func(flag string, dst *string) {
			if flags.Changed(flag) {
				*dst, _ = flags.GetString(flag)
				changed = true
			}
		}
		set("set-timetable", &cfg.TimetableName)
		set("set-site", &cfg.SiteURL)
		set("set-preference", &cfg.Preference)
		set("set-class", &cfg.SavedClass)
		set("set-class-teacher", &cfg.ClassTeacher)
		set("set-shift-marker", &cfg.ShiftMarker)
		set("set-registry", &cfg.RegistryPath)

		// If no flags are given, launch the interactive TUI flow
		if !changed {
			return tui.RunConfigTUI()
		}

		if cfg.RegistryPath != "" {
			if _, err := registry.Load(cfg.RegistryPath); err != nil {
				return err
			}
		}

		if err := config.Save(cfg); err != nil {
			return err
		}

		fmt.Println("✅ Configuration saved")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().String("set-timetable", "", "Set the timetable name to look for (e.g. GIM-EK)")
	configCmd.Flags().String("set-site", "", "Set the school page listing the timetables")
	configCmd.Flags().String("set-preference", "", "Set which of two listed timetables to use: new or old")
	configCmd.Flags().String("set-class", "", "Set your class (e.g. 1.PMG)")
	configCmd.Flags().String("set-class-teacher", "", "Set the class teacher written into the metadata")
	configCmd.Flags().String("set-shift-marker", "", "Set the text that marks morning timetables")
	configCmd.Flags().String("set-registry", "", "Set the teacher registry YAML file")
}
