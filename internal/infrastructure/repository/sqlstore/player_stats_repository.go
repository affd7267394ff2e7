package sqlstore

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/playerstats"
	qb "github.com/riskibarqy/fbref-teamfit/internal/platform/querybuilder"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) EnsureSchema(ctx context.Context) error {
	return ensureTable(ctx, r.db, playerStatsTable, playerStatTableModel{})
}

func (r *PlayerStatsRepository) Append(ctx context.Context, stats []playerstats.SeasonStat) error {
	if len(stats) == 0 {
		return nil
	}
	return withTx(ctx, r.db, "append player stats", func(tx *sqlx.Tx) error {
		return insertRows(ctx, tx, playerStatsTable, playerStatModels(stats))
	})
}

func (r *PlayerStatsRepository) ReplacePartition(ctx context.Context, league, season string, stats []playerstats.SeasonStat) error {
	return withTx(ctx, r.db, "replace player stats", func(tx *sqlx.Tx) error {
		if err := deleteRows(ctx, tx, playerStatsTable, partition(league, season)...); err != nil {
			return err
		}
		if len(stats) == 0 {
			return nil
		}
		return insertRows(ctx, tx, playerStatsTable, playerStatModels(stats))
	})
}

func (r *PlayerStatsRepository) ListByPartition(ctx context.Context, league, season string) ([]playerstats.SeasonStat, error) {
	rows, err := selectModels[playerStatTableModel](ctx, r.db, playerStatsTable, func(b *qb.SelectBuilder) *qb.SelectBuilder {
		return b.Where(partition(league, season)...).OrderBy("team_id", "player_id")
	})
	if err != nil {
		return nil, err
	}
	return playerStatsFromModels(rows), nil
}

func (r *PlayerStatsRepository) TopByMinutes(ctx context.Context, limit int) ([]playerstats.SeasonStat, error) {
	rows, err := selectModels[playerStatTableModel](ctx, r.db, playerStatsTable, func(b *qb.SelectBuilder) *qb.SelectBuilder {
		return b.OrderBy("minutes DESC", "player_id").Limit(limit)
	})
	if err != nil {
		return nil, err
	}
	return playerStatsFromModels(rows), nil
}

func (r *PlayerStatsRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, playerStatsTable)
}

func playerStatModels(stats []playerstats.SeasonStat) []playerStatTableModel {
	rows := make([]playerStatTableModel, 0, len(stats))
	for _, item := range stats {
		rows = append(rows, playerStatToModel(item))
	}
	return rows
}

func playerStatsFromModels(rows []playerStatTableModel) []playerstats.SeasonStat {
	out := make([]playerstats.SeasonStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
