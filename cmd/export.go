package cmd

import (
	"fmt"
	"os"
	"strings"

	"rasporedctl/pkg/exporter"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Directly export a class timetable to an ICS file",
	Long:  `Export the week of a specific class to an ICS file without using the interactive TUI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		className, _ := cmd.Flags().GetString("class")
		if className == "" {
			className = cfg.SavedClass
		}
		if className == "" {
			return fmt.Errorf("no class given, use --class or save one with `rasporedctl config`")
		}
		outputPath, _ := cmd.Flags().GetString("output")

		doc, err := runExtraction(cmd, cfg, className, false)
		if err != nil {
			return err
		}

		class, ok := doc.Timetable.Class(className)
		if !ok {
			if len(doc.Timetable.Classes) > 1 {
				return fmt.Errorf("class %q is ambiguous, matches %s", className, strings.Join(doc.Timetable.Names(), ", "))
			}
			class = &doc.Timetable.Classes[0]
		}

		if outputPath == "" {
			outputPath = strings.ReplaceAll(class.Name, ".", "") + ".ics"
		}

		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if err := exporter.GenerateICS(class, doc.Metadata, file); err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Printf("Successfully exported the %s week of %s to %s\n", doc.Metadata.Date, class.Name, outputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	addSourceFlags(exportCmd)
	exportCmd.Flags().StringP("class", "c", "", "Class to export (default saved class)")
	exportCmd.Flags().StringP("output", "o", "", "Output file path (default <class>.ics)")
}
