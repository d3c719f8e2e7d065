package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"news_moves/internal/app"
)

var runDryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single fetch, extract and submit cycle.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, lg, err := loadConfig()
		if err != nil {
			return err
		}
		if runDryRun {
			cfg.Move.DryRun = true
		}

		provider, err := app.New(cmd.Context(), cfg, lg)
		if err != nil {
			return err
		}
		defer provider.Close(cmd.Context())

		result := provider.Service.RunCycle(cmd.Context())
		renderResult(cmd.OutOrStdout(), result)

		if !result.Submitted() {
			return fmt.Errorf("cycle finished with status %s", result.Status)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "print the move command instead of executing it")
	rootCmd.AddCommand(runCmd)
}
