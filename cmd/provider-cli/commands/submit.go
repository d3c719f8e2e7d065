package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"news_moves/internal/app"
	"news_moves/internal/domain"
)

var (
	submitTitle     string
	submitContent   string
	submitTimestamp int64
	submitPrint     bool
)

var errEmptyArticle = errors.New("--title and --content are required")

func submissionFromFlags(signer string) (domain.Submission, error) {
	article := domain.Article{Title: submitTitle, Content: submitContent}
	if !article.Complete() {
		return domain.Submission{}, errEmptyArticle
	}

	at := time.Now()
	if submitTimestamp > 0 {
		at = time.Unix(submitTimestamp, 0)
	}
	return domain.NewSubmission(article, at, signer), nil
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a given title and content to the contract.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		sub, err := submissionFromFlags(cfg.Move.Signer)
		if err != nil {
			return err
		}

		submitter := app.NewSubmitter(cfg)
		if submitPrint {
			fmt.Fprintln(cmd.OutOrStdout(), submitter.CommandLine(sub))
			return nil
		}

		out, err := submitter.Submit(cmd.Context(), sub)
		if out != "" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
		}
		return err
	},
}

func init() {
	submitCmd.Flags().StringVar(&submitTitle, "title", "", "article title")
	submitCmd.Flags().StringVar(&submitContent, "content", "", "article content")
	submitCmd.Flags().Int64Var(&submitTimestamp, "timestamp", 0, "unix timestamp (defaults to now)")
	submitCmd.Flags().BoolVar(&submitPrint, "print", false, "print the command line instead of running it")
	rootCmd.AddCommand(submitCmd)
}
