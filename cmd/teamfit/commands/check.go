package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/fbref-teamfit/internal/app"
	"github.com/riskibarqy/fbref-teamfit/internal/usecase"
)

var checkLimit *int

func init() {
	checkLimit = checkCmd.Flags().Int("limit", 5, "Rows shown for the top player and team tables.")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [--limit <n>]",
	Short: "Prints row counts and the highest-minute rows of the store.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := openRuntime(app.Options{})
		if err != nil {
			return err
		}
		defer closeRuntime(rt)

		report, err := rt.Report.Build(cmd.Context(), *checkLimit)
		if err != nil {
			return fmt.Errorf("build report: %w", err)
		}
		renderReport(cmd.OutOrStdout(), report)
		return nil
	},
}

func renderReport(w io.Writer, report usecase.Report) {
	counts := newTable(w)
	counts.SetTitle("Row counts")
	counts.AppendHeader(table.Row{"Table", "Rows"})
	counts.AppendRows([]table.Row{
		{"teams", report.Teams},
		{"players", report.Players},
		{"player_season_stats", report.PlayerStats},
		{"team_season_stats", report.TeamStats},
	})
	counts.Render()

	players := newTable(w)
	players.SetTitle("Top player seasons by minutes")
	players.AppendHeader(table.Row{"Player", "Team", "League", "Season", "Min", "PrgP/90", "PrgC/90", "TklInt/90", "Press/90", "Aerial %"})
	for _, stat := range report.TopPlayerStats {
		players.AppendRow(table.Row{
			stat.PlayerID,
			stat.TeamID,
			stat.League,
			stat.Season,
			stat.Minutes,
			formatRate(stat.ProgressivePassesPer90),
			formatRate(stat.ProgressiveCarriesPer90),
			formatRate(stat.TacklesInterceptionsPer90),
			formatRate(stat.PressuresPer90),
			formatOptional(stat.AerialsWonPct),
		})
	}
	players.Render()

	teams := newTable(w)
	teams.SetTitle("Top team seasons by minutes")
	teams.AppendHeader(table.Row{"Team", "League", "Season", "Min", "PrgP/90", "PrgC/90", "PressAtt3rd/90", "Aerial %"})
	for _, stat := range report.TopTeamStats {
		teams.AppendRow(table.Row{
			stat.TeamID,
			stat.League,
			stat.Season,
			stat.Minutes,
			formatOptional(stat.ProgressivePassesPer90),
			formatOptional(stat.ProgressiveCarriesPer90),
			formatOptional(stat.PressuresAtt3rdPer90),
			formatOptional(stat.AerialsWinPct),
		})
	}
	teams.Render()

	order := newTable(w)
	order.SetTitle("Feature order")
	order.AppendHeader(table.Row{"Ord", "Feature"})
	for _, feature := range report.FeatureOrder {
		order.AppendRow(table.Row{feature.Ord, feature.Name})
	}
	order.Render()
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return "NULL"
	}
	return formatRate(*v)
}
