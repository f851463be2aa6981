package cmd

import (
	"context"
	"fmt"

	"rasporedctl/pkg/scraper"

	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Print the address of the current timetable PDF",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if cfg.TimetableName == "" {
			return fmt.Errorf("no timetable name given, use --name or set one with `rasporedctl config`")
		}

		site := cfg.SiteURL
		if site == "" {
			site = scraper.DefaultSiteURL
		}
		pref := scraper.Preference(cfg.Preference)
		if pref == "" {
			pref = scraper.PreferNew
		}

		link, err := scraper.NewClient(logger).FindTimetableLink(context.Background(), site, cfg.TimetableName, pref)
		if err != nil {
			return err
		}

		fmt.Println(link)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)

	addLinkFlags(linkCmd)
}
