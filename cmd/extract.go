package cmd

import (
	"fmt"
	"os"

	"rasporedctl/pkg/output"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the timetable PDF into JSON",
	Long: `Find the timetable on the school page, read its lesson grid and write
every class's week as JSON, with double periods and teacher names resolved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		class, _ := cmd.Flags().GetString("class")
		outputPath, _ := cmd.Flags().GetString("output")

		doc, err := runExtraction(cmd, cfg, class, outputPath == "")
		if err != nil {
			return err
		}

		if outputPath == "" {
			return output.Write(os.Stdout, *doc)
		}
		if err := output.WriteFile(outputPath, *doc); err != nil {
			return err
		}

		fmt.Printf("Successfully extracted %d classes to %s\n", len(doc.Timetable.Classes), outputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	addSourceFlags(extractCmd)
	extractCmd.Flags().StringP("class", "c", "", "Only keep classes whose name contains this text")
	extractCmd.Flags().StringP("output", "o", "", "Output file path (default stdout)")
}
