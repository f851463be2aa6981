package cmd

import (
	"fmt"

	"rasporedctl/pkg/tui"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a class timetable in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		class, _ := cmd.Flags().GetString("class")
		if class == "" {
			class = cfg.SavedClass
		}

		doc, err := runExtraction(cmd, cfg, class, false)
		if err != nil {
			return err
		}

		tui.GetTheme()
		for i := range doc.Timetable.Classes {
			fmt.Println(tui.RenderClass(&doc.Timetable.Classes[i], doc.Metadata))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	addSourceFlags(showCmd)
	showCmd.Flags().StringP("class", "c", "", "Only show classes whose name contains this text (default saved class)")
}
