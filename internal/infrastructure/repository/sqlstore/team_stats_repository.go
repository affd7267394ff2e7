package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/teamstats"
	qb "github.com/riskibarqy/fbref-teamfit/internal/platform/querybuilder"
)

type TeamStatsRepository struct {
	db *sqlx.DB
}

func NewTeamStatsRepository(db *sqlx.DB) *TeamStatsRepository {
	return &TeamStatsRepository{db: db}
}

type teamAggregateRow struct {
	TeamID                  string   `db:"team_id"`
	League                  string   `db:"league"`
	Season                  string   `db:"season"`
	Minutes                 int64    `db:"minutes"`
	ProgressivePassesPer90  *float64 `db:"progressive_passes_per90"`
	ProgressiveCarriesPer90 *float64 `db:"progressive_carries_per90"`
	PressuresAtt3rdPer90    *float64 `db:"pressures_att3rd_per90"`
	AerialsWinPct           *float64 `db:"aerials_win_pct"`
}

func weightedMean(column, alias string) string {
	return fmt.Sprintf("SUM(%s * minutes) / NULLIF(SUM(minutes), 0) AS %s", column, alias)
}

func (r *TeamStatsRepository) EnsureSchema(ctx context.Context) error {
	return ensureTable(ctx, r.db, teamStatsTable, teamStatTableModel{})
}

// AggregateFromPlayerStats computes minutes-weighted means over the stored
// player rows. Pressures in the attacking third are not published per player,
// so the overall pressures rate stands in for them.
func (r *TeamStatsRepository) AggregateFromPlayerStats(ctx context.Context, league, season string) ([]teamstats.SeasonStat, error) {
	query, args, err := qb.Select(
		"team_id",
		"league",
		"season",
		"COALESCE(SUM(minutes), 0) AS minutes",
		weightedMean("progressive_passes_per90", "progressive_passes_per90"),
		weightedMean("progressive_carries_per90", "progressive_carries_per90"),
		weightedMean("pressures_per90", "pressures_att3rd_per90"),
		weightedMean("aerials_won_pct", "aerials_win_pct"),
	).From(playerStatsTable).
		Where(partition(league, season)...).
		GroupBy("team_id", "league", "season").
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build aggregate team stats query: %w", err)
	}

	var rows []teamAggregateRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("aggregate team stats league=%s season=%s: %w", league, season, err)
	}

	out := make([]teamstats.SeasonStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamstats.SeasonStat{
			TeamID:                  row.TeamID,
			League:                  row.League,
			Season:                  row.Season,
			Minutes:                 int(row.Minutes),
			ProgressivePassesPer90:  row.ProgressivePassesPer90,
			ProgressiveCarriesPer90: row.ProgressiveCarriesPer90,
			PressuresAtt3rdPer90:    row.PressuresAtt3rdPer90,
			AerialsWinPct:           row.AerialsWinPct,
		})
	}
	return out, nil
}

func (r *TeamStatsRepository) Append(ctx context.Context, stats []teamstats.SeasonStat) error {
	if len(stats) == 0 {
		return nil
	}
	return withTx(ctx, r.db, "append team stats", func(tx *sqlx.Tx) error {
		return insertRows(ctx, tx, teamStatsTable, teamStatModels(stats))
	})
}

func (r *TeamStatsRepository) ReplacePartition(ctx context.Context, league, season string, stats []teamstats.SeasonStat) error {
	return withTx(ctx, r.db, "replace team stats", func(tx *sqlx.Tx) error {
		if err := deleteRows(ctx, tx, teamStatsTable, partition(league, season)...); err != nil {
			return err
		}
		if len(stats) == 0 {
			return nil
		}
		return insertRows(ctx, tx, teamStatsTable, teamStatModels(stats))
	})
}

func (r *TeamStatsRepository) TopByMinutes(ctx context.Context, limit int) ([]teamstats.SeasonStat, error) {
	rows, err := selectModels[teamStatTableModel](ctx, r.db, teamStatsTable, func(b *qb.SelectBuilder) *qb.SelectBuilder {
		return b.OrderBy("minutes DESC", "team_id").Limit(limit)
	})
	if err != nil {
		return nil, err
	}

	out := make([]teamstats.SeasonStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamStatsRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, teamStatsTable)
}

func teamStatModels(stats []teamstats.SeasonStat) []teamStatTableModel {
	rows := make([]teamStatTableModel, 0, len(stats))
	for _, item := range stats {
		rows = append(rows, teamStatToModel(item))
	}
	return rows
}
