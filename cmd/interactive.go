package cmd

import (
	"rasporedctl/pkg/tui"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to read the timetable, pick a class and show or export it interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.RunTUI(logger)
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
