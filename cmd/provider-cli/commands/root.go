package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"news_moves/internal/config"
	"news_moves/internal/domain"
	"news_moves/internal/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "provider-cli",
	Short:        "provider-cli scrapes the news source and submits articles to the NewsMoves contract.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to YAML config file")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	config.LoadEnvFile()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cfg.Logging.Level, cfg.Logging.Format), nil
}

func renderArticle(w io.Writer, article domain.Article) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"URL", article.URL})
	t.AppendRow(table.Row{"Title", article.Title})
	t.AppendRow(table.Row{"Content", article.Content})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, WidthMax: 100}})
	t.Render()
}

func renderResult(w io.Writer, result domain.CycleResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Status", "Title", "Timestamp", "Duration", "Error"})

	var title string
	var ts int64
	if result.Submission != nil {
		title = result.Submission.Title
		ts = result.Submission.Timestamp
	}
	t.AppendRow(table.Row{result.Status, title, ts, result.Duration.String(), result.Error})
	t.Render()

	if result.Output != "" {
		fmt.Fprintln(w, result.Output)
	}
}
