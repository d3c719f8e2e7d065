package commands

import (
	"github.com/spf13/cobra"

	"news_moves/internal/app"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch the source page and print the extracted article without submitting it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, lg, err := loadConfig()
		if err != nil {
			return err
		}

		provider, err := app.New(cmd.Context(), cfg, lg)
		if err != nil {
			return err
		}
		defer provider.Close(cmd.Context())

		article, err := provider.Service.Scrape(cmd.Context())
		if err != nil {
			return err
		}

		renderArticle(cmd.OutOrStdout(), article)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}
