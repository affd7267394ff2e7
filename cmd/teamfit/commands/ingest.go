package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/fbref-teamfit/internal/app"
	"github.com/riskibarqy/fbref-teamfit/internal/usecase"
)

var ingestDryRun *bool

func init() {
	ingestDryRun = ingestCmd.Flags().Bool("dry-run", false, "Keep ingested rows in memory instead of writing to DB_URL.")
	rootCmd.AddCommand(ingestCmd)
}

var ingestCmd = &cobra.Command{
	Use:   "ingest [--dry-run]",
	Short: "Fetches, normalizes and persists the configured competitions.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		rt, err := openRuntime(app.Options{DryRun: *ingestDryRun, Progress: out})
		if err != nil {
			return err
		}
		defer closeRuntime(rt)

		ctx := cmd.Context()
		if err := rt.Schema.EnsureTables(ctx); err != nil {
			return err
		}

		results, err := rt.Ingestion.RunAll(ctx, active.cfg.Competitions)
		printIngested(out, results)
		if err != nil {
			return fmt.Errorf("ingest: %w", err)
		}
		return nil
	},
}

func printIngested(w io.Writer, results []usecase.IngestionResult) {
	for _, result := range results {
		fmt.Fprintf(w, "Ingested %d player-season rows for %s %s\n",
			result.PlayerRows, result.Competition.League, result.Competition.Season)
	}
}
