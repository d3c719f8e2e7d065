package commands

import (
	"errors"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"news_moves/internal/app"
	"news_moves/internal/domain"
)

var historyLimit int64

var errNoJournal = errors.New("history needs MONGO_URI, DB_NAME and COLLECTION_NAME to be set")

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the most recent journaled cycle results.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, lg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Mongo.URI == "" {
			return errNoJournal
		}

		provider, err := app.New(cmd.Context(), cfg, lg)
		if err != nil {
			return err
		}
		defer provider.Close(cmd.Context())

		results, err := provider.Journal.Recent(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		renderHistory(cmd.OutOrStdout(), results)
		return nil
	},
}

func renderHistory(w io.Writer, results []domain.CycleResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Started", "Status", "Title", "Duration", "Error"})
	for _, r := range results {
		var title string
		if r.Article != nil {
			title = r.Article.Title
		}
		t.AppendRow(table.Row{r.StartedAt.Format("2006-01-02 15:04:05"), r.Status, title, r.Duration.String(), r.Error})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 3, WidthMax: 60}, {Number: 5, WidthMax: 60}})
	t.Render()
}

func init() {
	historyCmd.Flags().Int64Var(&historyLimit, "limit", 20, "number of results to show")
	rootCmd.AddCommand(historyCmd)
}
