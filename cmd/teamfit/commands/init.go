package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/fbref-teamfit/internal/app"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Creates the tables and reseeds the feature order.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := openRuntime(app.Options{})
		if err != nil {
			return err
		}
		defer closeRuntime(rt)

		features, err := rt.Schema.Initialize(cmd.Context())
		if err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized schema and seeded %d features into feature_order\n", len(features))
		return nil
	},
}
